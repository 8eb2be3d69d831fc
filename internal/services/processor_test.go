package services

import (
	"errors"
	"sync"
	"testing"

	"appstore-notifications/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationLog struct {
	mu       sync.Mutex
	appended []*models.Notification
	err      error
}

func (f *fakeNotificationLog) AppendNotification(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, n)
	return nil
}

type fakeSubscriptionStore struct {
	mu        sync.Mutex
	snapshots []*models.UserSubscription
	err       error
}

func (f *fakeSubscriptionStore) UpsertSubscription(sub *models.UserSubscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.snapshots = append(f.snapshots, sub)
	return nil
}

func (f *fakeSubscriptionStore) latest() *models.UserSubscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.snapshots) == 0 {
		return nil
	}
	return f.snapshots[len(f.snapshots)-1]
}

type fakeRelay struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeRelay) Relay(notificationID string, record *models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notificationID)
}

func TestProcessHappyPath(t *testing.T) {
	log := &fakeNotificationLog{}
	subs := &fakeSubscriptionStore{}
	relay := &fakeRelay{}
	p := NewProcessor(log, subs, relay)

	record := &models.Notification{
		NotificationType: "RENEWAL",
		UserID:           "U1",
		ProductID:        "P1",
		TransactionID:    "T1",
		ExpiresDate:      "1700000000000",
	}

	require.NoError(t, p.Process(record))
	p.Wait()

	require.Len(t, log.appended, 1)
	assert.NotEmpty(t, record.NotificationID)

	snap := subs.latest()
	require.NotNil(t, snap)
	assert.Equal(t, "U1", snap.UserID)
	assert.Equal(t, StatusActive, snap.SubscriptionStatus)
	assert.Equal(t, "P1", snap.ProductID)
	assert.Equal(t, "1700000000000", snap.ExpiresDate)
	assert.False(t, snap.LastUpdated.IsZero())

	require.Len(t, relay.calls, 1)
	assert.Equal(t, record.NotificationID, relay.calls[0])
}

func TestProcessWithoutUserIDSkipsSnapshot(t *testing.T) {
	log := &fakeNotificationLog{}
	subs := &fakeSubscriptionStore{}
	p := NewProcessor(log, subs, nil)

	require.NoError(t, p.Process(&models.Notification{NotificationType: "RENEWAL"}))

	assert.Len(t, log.appended, 1)
	assert.Empty(t, subs.snapshots)
}

func TestProcessLogWriteFailureIsFatal(t *testing.T) {
	log := &fakeNotificationLog{err: errors.New("disk full")}
	subs := &fakeSubscriptionStore{}
	relay := &fakeRelay{}
	p := NewProcessor(log, subs, relay)

	err := p.Process(&models.Notification{NotificationType: "RENEWAL", UserID: "U1"})
	p.Wait()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.Empty(t, subs.snapshots)
	assert.Empty(t, relay.calls)
}

func TestProcessSubscriptionFailureIsIsolated(t *testing.T) {
	log := &fakeNotificationLog{}
	subs := &fakeSubscriptionStore{err: errors.New("table locked")}
	p := NewProcessor(log, subs, nil)

	err := p.Process(&models.Notification{NotificationType: "RENEWAL", UserID: "U1"})

	assert.NoError(t, err)
	assert.Len(t, log.appended, 1)
}

func TestProcessTwiceKeepsLatestSnapshot(t *testing.T) {
	log := &fakeNotificationLog{}
	subs := &fakeSubscriptionStore{}
	p := NewProcessor(log, subs, nil)

	require.NoError(t, p.Process(&models.Notification{NotificationType: "RENEWAL", UserID: "U1"}))
	require.NoError(t, p.Process(&models.Notification{NotificationType: "CANCEL", UserID: "U1"}))

	// Two log rows, and the snapshot reflects the most recent record.
	assert.Len(t, log.appended, 2)
	require.Len(t, subs.snapshots, 2)
	assert.Equal(t, StatusCancelled, subs.latest().SubscriptionStatus)

	// Each append got its own opaque id.
	assert.NotEqual(t, log.appended[0].NotificationID, log.appended[1].NotificationID)
}

func TestAutoRenewDefault(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", true}, // unspecified defaults to on, even for CANCEL/REFUND
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, autoRenewEnabled(tt.raw), "raw=%q", tt.raw)
	}
}
