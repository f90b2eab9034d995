package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// EmbedField is one inline stat in a Discord embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Embed is a Discord rich embed.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// discordMessage is the webhook payload.
type discordMessage struct {
	Content   string  `json:"content,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

// DiscordSender posts embeds to a Discord webhook.
type DiscordSender struct {
	webhookURL string
	username   string
	avatarURL  string
	client     *http.Client
}

// NewDiscordSender creates a sender for the given webhook url. An empty url
// yields a sender whose sends are no-ops, so a deployment without Discord
// configured still runs.
func NewDiscordSender(webhookURL, username, avatarURL string) *DiscordSender {
	return &DiscordSender{
		webhookURL: webhookURL,
		username:   username,
		avatarURL:  avatarURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// SendEmbed posts a single embed to the webhook.
func (d *DiscordSender) SendEmbed(ctx context.Context, embed Embed) error {
	return d.send(ctx, discordMessage{
		Username:  d.username,
		AvatarURL: d.avatarURL,
		Embeds:    []Embed{embed},
	})
}

func (d *DiscordSender) send(ctx context.Context, msg discordMessage) error {
	if d.webhookURL == "" {
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal discord message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("discord webhook returned status %d: %s", resp.StatusCode, body)
	}
	return nil
}
