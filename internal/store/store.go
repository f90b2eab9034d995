package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trail-status-backend/internal/crypt"
	"trail-status-backend/internal/model"
)

// ErrNoToken is returned when no OAuth credential has been stored yet.
var ErrNoToken = errors.New("store: no strava token found")

// TroyStatus is the durable trail state consumed by the poller.
type TroyStatus struct {
	IsOnTrail          bool
	BeaconURL          *string
	TrailStatusUpdated *time.Time
}

// TokenData is a decrypted OAuth credential.
type TokenData struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64 // epoch seconds
}

// Expired reports whether the token's expiry is at or before now.
func (t TokenData) Expired(now time.Time) bool {
	return t.ExpiresAt < now.Unix()
}

// Store defines the interface for all database operations.
type Store interface {
	GetTroyStatus(ctx context.Context) (TroyStatus, error)
	SetOnTrail(ctx context.Context, onTrail bool) error
	SetBeaconURL(ctx context.Context, beaconURL *string) error
	GetToken(ctx context.Context) (TokenData, error)
	SetToken(ctx context.Context, token TokenData) error
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM. Token columns are
// encrypted before they hit the database.
type gormStore struct {
	db     *gorm.DB
	cipher *crypt.Cipher
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, cipher *crypt.Cipher) Store {
	return &gormStore{db: db, cipher: cipher}
}

// DB exposes the underlying gorm handle for handlers and the worker pool.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// GetTroyStatus reads the single status row. A missing row decodes to the
// zero status (not on trail, no beacon url) rather than an error, matching
// the fresh-database case.
func (s *gormStore) GetTroyStatus(ctx context.Context) (TroyStatus, error) {
	var row model.TroyStatus
	err := s.db.WithContext(ctx).First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TroyStatus{}, nil
	}
	if err != nil {
		return TroyStatus{}, fmt.Errorf("failed to read troy status: %w", err)
	}
	return TroyStatus{
		IsOnTrail:          row.IsOnTrail,
		BeaconURL:          row.BeaconURL,
		TrailStatusUpdated: row.TrailStatusUpdated,
	}, nil
}

// SetOnTrail upserts the on-trail flag and stamps the update time. The
// beacon url column is left untouched.
func (s *gormStore) SetOnTrail(ctx context.Context, onTrail bool) error {
	now := time.Now().UTC()
	row := model.TroyStatus{ID: 1, IsOnTrail: onTrail, TrailStatusUpdated: &now}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_on_trail", "trail_status_updated"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert troy status: %w", err)
	}
	return nil
}

// SetBeaconURL upserts only the beacon url column; nil clears it.
func (s *gormStore) SetBeaconURL(ctx context.Context, beaconURL *string) error {
	row := model.TroyStatus{ID: 1, BeaconURL: beaconURL}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"beacon_url"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert beacon url: %w", err)
	}
	return nil
}

// GetToken reads and decrypts the stored OAuth credential.
func (s *gormStore) GetToken(ctx context.Context) (TokenData, error) {
	var row model.StravaAuth
	err := s.db.WithContext(ctx).First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TokenData{}, ErrNoToken
	}
	if err != nil {
		return TokenData{}, fmt.Errorf("failed to read strava auth: %w", err)
	}

	accessToken, err := s.cipher.Open(row.AccessToken)
	if err != nil {
		return TokenData{}, fmt.Errorf("failed to decrypt access token: %w", err)
	}
	refreshToken, err := s.cipher.Open(row.RefreshToken)
	if err != nil {
		return TokenData{}, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	return TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    row.ExpiresAt,
	}, nil
}

// SetToken encrypts and upserts the OAuth credential, replacing the whole row.
func (s *gormStore) SetToken(ctx context.Context, token TokenData) error {
	accessToken, err := s.cipher.Seal(token.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}
	refreshToken, err := s.cipher.Seal(token.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	row := model.StravaAuth{
		ID:           1,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    token.ExpiresAt,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "expires_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert strava auth: %w", err)
	}
	return nil
}
