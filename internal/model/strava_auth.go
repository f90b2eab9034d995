package model

// StravaAuth holds the single OAuth credential row (id = 1). The access and
// refresh tokens are stored as ciphertext and only decrypted by the store
// layer. The row is replaced wholesale on every refresh.
type StravaAuth struct {
	ID           int64  `gorm:"primaryKey;check:id = 1"`
	AccessToken  []byte `gorm:"not null"`
	RefreshToken []byte `gorm:"not null"`
	ExpiresAt    int64  `gorm:"not null"` // epoch seconds
}
