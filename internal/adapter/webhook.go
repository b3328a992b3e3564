package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-record-keeper/internal/config"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/go-resty/resty/v2"
)

type webhookNotifier struct {
	client *resty.Client

	logger *logger.Logger
}

// NewWebhookNotifier constructs an HTTP implementation of [AlertNotifier]
// that POSTs each alert as a JSON document to the configured webhook URL.
//
// When cfg.AlertWebhookURL is empty, a no-op notifier is returned: alert
// calls succeed without producing any traffic. Returns an error if the
// configured URL cannot be parsed.
func NewWebhookNotifier(cfg config.Adapter, log *logger.Logger) (AlertNotifier, error) {
	if strings.TrimSpace(cfg.AlertWebhookURL) == "" {
		return &nopNotifier{}, nil
	}

	baseURL, err := normalizeBaseURL(cfg.AlertWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid alert webhook url: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &webhookNotifier{client: cli, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Notify implements [AlertNotifier]. It POSTs the alert and treats any
// non-2xx response as a delivery failure.
func (n *webhookNotifier) Notify(ctx context.Context, alert Alert) error {
	if alert.OccurredAt.IsZero() {
		alert.OccurredAt = time.Now()
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(alert).
		Post("")
	if err != nil {
		return fmt.Errorf("alert webhook request: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("alert webhook http %d: %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))
	}

	return nil
}

// nopNotifier discards all alerts. Used when no webhook URL is configured.
type nopNotifier struct{}

func (n *nopNotifier) Notify(context.Context, Alert) error { return nil }
