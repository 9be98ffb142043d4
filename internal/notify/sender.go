// Package notify delivers transactional email through the configured
// provider. Delivery and the entity writes it follows are not transactional;
// callers decide whether a failed send is fatal.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/config"
)

// Sender delivers a single message to a recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// HTTPSender posts messages to an HTTP email provider. A missing API key
// turns it into a logged no-op so local development works without an account.
type HTTPSender struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPSender builds a sender from mail configuration.
func NewHTTPSender(cfg config.MailConfig, logger *zap.Logger) *HTTPSender {
	return &HTTPSender{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		from:   cfg.From,
		client: &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// Send delivers one message. The context bounds the call together with the
// client timeout.
func (s *HTTPSender) Send(ctx context.Context, to, subject, body string) error {
	if s.apiKey == "" || s.apiURL == "" {
		s.logger.Debug("mail provider not configured; dropping message",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	payload, err := json.Marshal(sendRequest{From: s.from, To: to, Subject: subject, Body: body})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail send failed: status %d", resp.StatusCode)
	}
	return nil
}
