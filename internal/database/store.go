package database

import (
	"context"
	"encoding/json"
	"time"

	"appstore-notifications/internal/models"
	"appstore-notifications/pkg/logging"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// subscriptionCacheTTL bounds how stale a cached snapshot may be.
const subscriptionCacheTTL = 60 * time.Second

// Store exposes the narrow persistence operations the processing pipeline
// needs. It is passed into the services explicitly so tests can substitute
// fakes per interface.
type Store struct {
	db    *gorm.DB
	cache *redis.Client
}

// NewStore wraps an already open gorm connection. Used by tests; production
// code goes through Open.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate runs the schema migration on a store created via NewStore.
func (s *Store) AutoMigrate() error {
	return autoMigrate(s.db)
}

// AppendNotification appends one notification to the durable log
func (s *Store) AppendNotification(n *models.Notification) error {
	return s.db.Create(n).Error
}

// UpsertSubscription fully replaces the subscription snapshot for the
// record's user id, creating it on first sight. The database serializes
// concurrent writers for the same user; last committed write wins.
func (s *Store) UpsertSubscription(sub *models.UserSubscription) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_id",
			"transaction_id",
			"original_transaction_id",
			"subscription_status",
			"expires_date",
			"auto_renew_status",
			"last_updated",
			"updated_at",
		}),
	}).Create(sub).Error
	if err != nil {
		return err
	}

	s.invalidateSubscriptionCache(sub.UserID)
	return nil
}

// GetSubscription returns the snapshot for a user, or gorm.ErrRecordNotFound
func (s *Store) GetSubscription(userID string) (*models.UserSubscription, error) {
	if cached := s.cachedSubscription(userID); cached != nil {
		return cached, nil
	}

	var sub models.UserSubscription
	if err := s.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}

	s.cacheSubscription(&sub)
	return &sub, nil
}

// AppendWebhookLog records one relay attempt that reached the remote
func (s *Store) AppendWebhookLog(entry *models.WebhookLog) error {
	return s.db.Create(entry).Error
}

// CountNotifications returns the total number of logged notifications
func (s *Store) CountNotifications() (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).Count(&count).Error
	return count, err
}

// CountNotificationsByType returns per-type notification counts
func (s *Store) CountNotificationsByType() (map[string]int64, error) {
	type typeCount struct {
		NotificationType string
		Count            int64
	}

	var rows []typeCount
	err := s.db.Model(&models.Notification{}).
		Select("notification_type, COUNT(*) as count").
		Group("notification_type").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.NotificationType] = row.Count
	}
	return counts, nil
}

// CountActiveSubscriptions returns the number of users whose snapshot is active
func (s *Store) CountActiveSubscriptions() (int64, error) {
	var count int64
	err := s.db.Model(&models.UserSubscription{}).
		Where("subscription_status = ?", "active").
		Count(&count).Error
	return count, err
}

// Cache helpers. The cache is best effort: any Redis failure falls back to
// the database and is logged at debug level only.

func subscriptionCacheKey(userID string) string {
	return "subscription:" + userID
}

func (s *Store) cachedSubscription(userID string) *models.UserSubscription {
	if s.cache == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	payload, err := s.cache.Get(ctx, subscriptionCacheKey(userID)).Result()
	if err != nil {
		return nil
	}

	var sub models.UserSubscription
	if err := json.Unmarshal([]byte(payload), &sub); err != nil {
		logging.Debugf("Discarding unreadable cached subscription for %s: %v", userID, err)
		return nil
	}
	return &sub
}

func (s *Store) cacheSubscription(sub *models.UserSubscription) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.cache.Set(ctx, subscriptionCacheKey(sub.UserID), payload, subscriptionCacheTTL).Err(); err != nil {
		logging.Debugf("Failed to cache subscription for %s: %v", sub.UserID, err)
	}
}

func (s *Store) invalidateSubscriptionCache(userID string) {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.cache.Del(ctx, subscriptionCacheKey(userID)).Err(); err != nil {
		logging.Debugf("Failed to invalidate cached subscription for %s: %v", userID, err)
	}
}
