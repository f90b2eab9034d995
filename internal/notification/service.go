package notification

import (
	"context"
	"fmt"
	"log"

	"trail-status-backend/internal/strava"
	"trail-status-backend/internal/units"
)

// EmbedSender sends one rich embed to the outbound channel.
type EmbedSender interface {
	SendEmbed(ctx context.Context, embed Embed) error
}

// ActivityFetcher supplies activity detail for enriching end-of-ride
// notifications.
type ActivityFetcher interface {
	GetActivity(ctx context.Context, id int64) (strava.Activity, error)
}

// Service implements the poller's Notifier: Discord embeds plus a web push
// fan-out through the worker pool. Sends are best-effort; failures are
// logged and dropped, never retried.
type Service struct {
	discord    EmbedSender
	activities ActivityFetcher
	pool       *WorkerPool
}

// NewService creates a notification service. pool may be nil when web push
// is not configured.
func NewService(discord EmbedSender, activities ActivityFetcher, pool *WorkerPool) *Service {
	return &Service{
		discord:    discord,
		activities: activities,
		pool:       pool,
	}
}

// NotifyStart announces that the athlete is on the trails.
func (s *Service) NotifyStart(ctx context.Context, beaconURL string) {
	s.send(ctx, Embed{
		Title:       "Troy is on the trails!",
		Description: beaconURL,
	}, "Troy is on the trails!")
}

// NotifyEnd announces the end of a ride, enriched with activity detail when
// an activity id is available. Enrichment failure degrades to the bare
// announcement.
func (s *Service) NotifyEnd(ctx context.Context, activityID *int64) {
	embed := Embed{Title: "Troy is no longer on the trails!"}

	if activityID != nil {
		activity, err := s.activities.GetActivity(ctx, *activityID)
		if err != nil {
			log.Printf("Failed to get activity %d for notification: %v", *activityID, err)
		} else {
			if activity.Name != "" {
				embed.Description = activity.Name
			}
			embed.Fields = []EmbedField{
				{Name: "Distance", Value: fmt.Sprintf("%vmi", units.MetersToMiles(activity.Distance)), Inline: true},
				{Name: "Elevation Gain", Value: fmt.Sprintf("%vft", units.MetersToFeet(activity.TotalElevationGain)), Inline: true},
				{Name: "Average Speed", Value: fmt.Sprintf("%vmph", units.MpsToMph(activity.AverageSpeed)), Inline: true},
				{Name: "Top Speed", Value: fmt.Sprintf("%vmph", units.MpsToMph(activity.MaxSpeed)), Inline: true},
			}
		}
	}

	s.send(ctx, embed, "Troy is no longer on the trails!")
}

// NotifyDiscard announces a discarded activity.
func (s *Service) NotifyDiscard(ctx context.Context) {
	s.send(ctx, Embed{
		Title: "Troy has discarded the Strava activity",
	}, "Troy has discarded the Strava activity")
}

func (s *Service) send(ctx context.Context, embed Embed, pushMessage string) {
	if err := s.discord.SendEmbed(ctx, embed); err != nil {
		log.Printf("Failed to send discord notification: %v", err)
	}
	if s.pool != nil {
		s.pool.Dispatch(pushMessage)
	}
}
