// Package webhook posts finished workout sessions to a user-configured URL
// as a plain-text report wrapped in a small JSON envelope. Delivery is
// fire-and-forget from the engine's point of view: the result only goes
// back to the caller and never touches local state.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// payload is the wire envelope. The receiving end mostly wants the text;
// the summary fields let simple automations route on numbers.
type payload struct {
	Timestamp   time.Time `json:"timestamp"`
	SessionID   string    `json:"sessionId"`
	SessionDate time.Time `json:"sessionDate"`
	TotalSets   int       `json:"totalSets"`
	VolumeKg    float64   `json:"volumeKg"`
	Text        string    `json:"text"`
}

// Sender delivers workout reports over HTTP.
type Sender struct {
	url        string
	httpClient *http.Client
	now        func() time.Time
}

// NewSender creates a sender for the given webhook URL.
func NewSender(rawURL string) *Sender {
	return &Sender{
		url: rawURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}
}

// ValidURL reports whether s is an http or https URL.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Send builds the report for the session and POSTs it. The returned error
// describes delivery failure only; local state is never affected.
func (s *Sender) Send(ctx context.Context, data ReportData) error {
	if !ValidURL(s.url) {
		return fmt.Errorf("webhook URL is not configured")
	}

	sentAt := s.now()
	volume := 0.0
	for _, set := range data.Session.Sets {
		volume += set.VolumeKg()
	}
	body, err := json.Marshal(payload{
		Timestamp:   sentAt,
		SessionID:   data.Session.ID,
		SessionDate: data.Session.Date,
		TotalSets:   len(data.Session.Sets),
		VolumeKg:    volume,
		Text:        BuildReport(data, sentAt),
	})
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
