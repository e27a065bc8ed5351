// Package activity records per-user activity entries and notifications in
// the relational store. Each operation is a single statement; nothing is
// retried, so a client retry after a timeout can duplicate an insert.
package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"accounthub/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ActivityInput is the caller-supplied part of an activity entry.
type ActivityInput struct {
	Type        string
	Description string
	Metadata    map[string]any
}

// NotificationInput is the caller-supplied part of a notification.
type NotificationInput struct {
	Type    string
	Title   string
	Message string
	Link    string
}

// Publisher receives notifications after they are stored.
type Publisher interface {
	PublishNotificationCreated(ctx context.Context, n models.Notification) error
}

type Service struct {
	db        *gorm.DB
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{db: db, logger: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// timestamp is truncated to microseconds, the precision Postgres stores.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func requireUser(userID string) (string, error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return "", fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return id, nil
}

// LogActivity stores one entry and returns it with its generated id and timestamp.
func (s *Service) LogActivity(ctx context.Context, userID string, in ActivityInput) (models.Activity, error) {
	uid, err := requireUser(userID)
	if err != nil {
		return models.Activity{}, err
	}
	if strings.TrimSpace(in.Type) == "" {
		return models.Activity{}, fmt.Errorf("%w: activity type required", ErrInvalidInput)
	}
	entry := models.Activity{
		ID:          uuid.NewString(),
		CreatedAt:   s.timestamp(),
		UserID:      uid,
		Type:        in.Type,
		Description: in.Description,
	}
	if len(in.Metadata) > 0 {
		entry.Metadata = in.Metadata
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return models.Activity{}, wrapStore("insert activity", err)
	}
	return entry, nil
}

// GetRecentActivity returns up to limit entries for the user, newest first.
func (s *Service) GetRecentActivity(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	uid, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	var items []models.Activity
	err = s.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("created_at desc").
		Limit(clampLimit(limit)).
		Find(&items).Error
	if err != nil {
		return nil, wrapStore("query activity", err)
	}
	return items, nil
}

// CreateNotification stores an unread notification for the user.
func (s *Service) CreateNotification(ctx context.Context, userID string, in NotificationInput) (models.Notification, error) {
	uid, err := requireUser(userID)
	if err != nil {
		return models.Notification{}, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Message) == "" {
		return models.Notification{}, fmt.Errorf("%w: title and message required", ErrInvalidInput)
	}
	kind := in.Type
	if kind == "" {
		kind = "info"
	}
	n := models.Notification{
		ID:        uuid.NewString(),
		CreatedAt: s.timestamp(),
		UserID:    uid,
		Type:      kind,
		Title:     in.Title,
		Message:   in.Message,
		Link:      in.Link,
		Read:      false,
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return models.Notification{}, wrapStore("insert notification", err)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishNotificationCreated(ctx, n); err != nil {
			s.logger.Warn("notification event not published", "notification_id", n.ID, "error", err)
		}
	}
	return n, nil
}

// MarkAsRead flags one notification as read. Marking an already read
// notification succeeds; an unknown id yields ErrNotFound.
func (s *Service) MarkAsRead(ctx context.Context, notificationID string) error {
	id := strings.TrimSpace(notificationID)
	if id == "" {
		return fmt.Errorf("%w: notification id required", ErrInvalidInput)
	}
	res := s.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return wrapStore("update notification", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetNotification loads one notification by id.
func (s *Service) GetNotification(ctx context.Context, notificationID string) (models.Notification, error) {
	var n models.Notification
	err := s.db.WithContext(ctx).Where("id = ?", notificationID).Take(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Notification{}, ErrNotFound
		}
		return models.Notification{}, wrapStore("load notification", err)
	}
	return n, nil
}

// GetUnreadCount counts the user's unread notifications. Query failures are
// returned, never reported as zero.
func (s *Service) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	uid, err := requireUser(userID)
	if err != nil {
		return 0, err
	}
	var n int64
	err = s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", uid, false).
		Count(&n).Error
	if err != nil {
		return 0, wrapStore("count unread", err)
	}
	return n, nil
}

// ListNotifications returns the user's notifications newest first.
func (s *Service) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	uid, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Where("user_id = ?", uid)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var items []models.Notification
	if err := q.Order("created_at desc").Limit(clampLimit(limit)).Find(&items).Error; err != nil {
		return nil, wrapStore("query notifications", err)
	}
	return items, nil
}
