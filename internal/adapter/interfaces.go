// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound transport abstractions.
//
// The primary abstraction is [AlertNotifier], which decouples the service
// layer from the delivery mechanism for internal operational alerts (state
// inconsistencies, decryption integrity faults). The package ships an
// HTTP webhook implementation ([NewWebhookNotifier]) and a no-op fallback
// used when no webhook endpoint is configured.
package adapter

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/alert_notifier_mock.go -package=mock

// Alert describes one internal operational event worth human attention.
// Alerts never carry record content or user secrets.
type Alert struct {
	// Kind is a stable machine-readable category,
	// e.g. "group_unresolvable" or "decrypt_integrity_fault".
	Kind string `json:"kind"`

	// Message is a short human-readable description of the event.
	Message string `json:"message"`

	// RecordID identifies the affected record, when applicable.
	RecordID int64 `json:"record_id,omitempty"`

	// GroupID identifies the affected group, when applicable.
	GroupID int64 `json:"group_id,omitempty"`

	// OccurredAt is the server time the event was observed.
	OccurredAt time.Time `json:"occurred_at"`
}

// AlertNotifier delivers internal alerts to an operations channel.
// Implementations must be safe for concurrent use and must never block the
// request path on delivery failures: a failed delivery is logged and dropped.
type AlertNotifier interface {
	// Notify delivers one alert. Returns an error if delivery fails; callers
	// treat the error as diagnostic and never propagate it to end users.
	Notify(ctx context.Context, alert Alert) error
}
