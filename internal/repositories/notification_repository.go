package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hirelink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	FindNotificationByID(id string) (*models.Notification, error)
	// FindRecipientNotifications returns the recipient's notifications
	// newest first. limit <= 0 disables paging.
	FindRecipientNotifications(recipientID string, kind models.RecipientKind, limit, offset int) ([]models.Notification, error)
	MarkAsRead(notificationID string) error
	MarkAllAsRead(recipientID string, kind models.RecipientKind) (int64, error)
	DeleteNotification(id string) error
	GetUnreadCount(recipientID string, kind models.RecipientKind) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) CreateNotification(notification *models.Notification) error {
	if err := r.validateNotification(notification); err != nil {
		return err
	}

	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindRecipientNotifications(recipientID string, kind models.RecipientKind, limit, offset int) ([]models.Notification, error) {
	query := r.db.
		Where("recipient_id = ? AND recipient_kind = ?", recipientID, kind).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var notifications []models.Notification
	err := query.Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID string) error {
	result := r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead is a bulk conditional update, so calling it repeatedly
// is idempotent.
func (r *NotificationRepositoryImpl) MarkAllAsRead(recipientID string, kind models.RecipientKind) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ? AND is_read = ?", recipientID, kind, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) DeleteNotification(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) GetUnreadCount(recipientID string, kind models.RecipientKind) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ? AND is_read = ?", recipientID, kind, false).
		Count(&count).Error
	return count, err
}

// DeleteOlderThan implements the retention policy; postgres has no native
// TTL so a worker drives this sweep.
func (r *NotificationRepositoryImpl) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) validateNotification(notification *models.Notification) error {
	if notification.RecipientID == "" {
		return errors.New("recipient ID is required")
	}

	if !models.ValidRecipientKind(notification.RecipientKind) {
		return fmt.Errorf("invalid recipient kind: %s", notification.RecipientKind)
	}

	if notification.Title == "" {
		return errors.New("notification title is required")
	}

	if notification.Message == "" {
		return errors.New("notification message is required")
	}

	if !models.ValidNotificationType(notification.Type) {
		return fmt.Errorf("invalid notification type: %s", notification.Type)
	}

	if len(notification.Data) > 0 {
		if !json.Valid(notification.Data) {
			return ErrInvalidNotificationData
		}
	}

	return nil
}
