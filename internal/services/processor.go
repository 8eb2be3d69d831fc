package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"appstore-notifications/internal/models"
	"appstore-notifications/pkg/logging"

	"github.com/google/uuid"
)

// ErrStorageWrite marks the only fatal processing failure: the append-only
// notification log could not be written. Callers map it to a 5xx so the
// sender retries.
var ErrStorageWrite = errors.New("notification log write failed")

// NotificationLog is the durable append-only record of every notification.
type NotificationLog interface {
	AppendNotification(n *models.Notification) error
}

// SubscriptionStore holds the latest snapshot per user.
type SubscriptionStore interface {
	UpsertSubscription(sub *models.UserSubscription) error
}

// Relay delivers a best-effort summary of a processed notification
// downstream. Implementations must never fail their caller.
type Relay interface {
	Relay(notificationID string, record *models.Notification)
}

// Processor runs the notification pipeline: durable log write first, then
// best-effort snapshot derivation and webhook relay. Only the log write can
// fail the call; everything after it is an isolated failure domain.
type Processor struct {
	log   NotificationLog
	subs  SubscriptionStore
	relay Relay

	inflight sync.WaitGroup
}

// NewProcessor creates a processor. relay may be nil when no webhook is
// configured.
func NewProcessor(log NotificationLog, subs SubscriptionStore, relay Relay) *Processor {
	return &Processor{
		log:   log,
		subs:  subs,
		relay: relay,
	}
}

// Process handles one normalized notification. It returns an error wrapping
// ErrStorageWrite iff the log append failed; snapshot and relay failures are
// logged and absorbed.
func (p *Processor) Process(record *models.Notification) error {
	record.NotificationID = uuid.New().String()

	if err := p.log.AppendNotification(record); err != nil {
		logging.Errorf("Failed to append notification %s to log: %v", record.NotificationID, err)
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	if record.UserID != "" {
		if err := p.subs.UpsertSubscription(buildSnapshot(record)); err != nil {
			// Non-fatal: the notification is durably logged and the snapshot
			// can be reconciled later. Failing here would make the sender
			// retry a notification it already delivered.
			logging.Errorf("Enrichment failure: subscription upsert for user %s (notification %s): %v",
				record.UserID, record.NotificationID, err)
		}
	}

	if p.relay != nil {
		// Dispatched after the log write so the log-then-relay ordering
		// holds. The WaitGroup lets shutdown drain in-flight deliveries.
		p.inflight.Add(1)
		go func() {
			defer p.inflight.Done()
			p.relay.Relay(record.NotificationID, record)
		}()
	}

	return nil
}

// Wait blocks until all in-flight relay deliveries have finished.
func (p *Processor) Wait() {
	p.inflight.Wait()
}

// buildSnapshot derives the replacement subscription snapshot from a record.
func buildSnapshot(record *models.Notification) *models.UserSubscription {
	return &models.UserSubscription{
		UserID:                record.UserID,
		ProductID:             record.ProductID,
		TransactionID:         record.TransactionID,
		OriginalTransactionID: record.OriginalTransactionID,
		SubscriptionStatus:    ResolveStatus(record.NotificationType),
		ExpiresDate:           record.ExpiresDate,
		AutoRenewStatus:       autoRenewEnabled(record.AutoRenewStatus),
		LastUpdated:           time.Now().UTC(),
	}
}

// autoRenewEnabled interprets the raw auto_renew_status value. An
// unspecified field defaults to on, even for cancellation and refund
// notifications; the upstream system has always behaved this way and
// consumers may depend on it, so it is preserved as-is.
func autoRenewEnabled(raw string) bool {
	switch raw {
	case "0", "false":
		return false
	default:
		return true
	}
}
