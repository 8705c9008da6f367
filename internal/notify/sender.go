package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ======================================================
// LOG
// ======================================================

// LogSender only records the message. Used in development and tests.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log.Named("notify")}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info("notification",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
		zap.String("reference", msg.Reference),
	)
	return nil
}

// ======================================================
// BREVO
// ======================================================

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

type BrevoSender struct {
	apiKey      string
	senderEmail string
	senderName  string
	endpoint    string
	client      *http.Client
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func NewBrevoSender(apiKey, senderEmail, senderName string) (*BrevoSender, error) {
	if apiKey == "" || senderEmail == "" {
		return nil, fmt.Errorf("brevo: api key and sender email are required")
	}
	return &BrevoSender{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		endpoint:    brevoEndpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *BrevoSender) Send(ctx context.Context, msg Message) error {
	at := strings.Index(msg.ToEmail, "@")
	if at <= 0 {
		return fmt.Errorf("brevo: invalid recipient %q", msg.ToEmail)
	}

	name := strings.TrimSpace(msg.ToName)
	if name == "" {
		name = msg.ToEmail[:at]
	}

	body, err := json.Marshal(brevoPayload{
		Sender:      map[string]string{"name": s.senderName, "email": s.senderEmail},
		To:          []map[string]string{{"email": msg.ToEmail, "name": name}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("brevo: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("brevo: build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}
