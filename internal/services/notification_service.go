package services

import (
	"encoding/json"
	"fmt"
	"time"

	"hirelink_backend/internal/logger"
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/repositories"
	"hirelink_backend/internal/services/dto"
	"hirelink_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type NotificationService interface {
	// CreateNotification persists a notification and, as a side effect,
	// broadcasts it on the realtime layer. Callers never push the socket
	// event themselves.
	CreateNotification(req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)

	// ListForUser returns the user's notifications newest first.
	// pageSize <= 0 returns everything.
	ListForUser(userID, role string, page, pageSize int) (*dto.NotificationListResponse, error)
	MarkRead(userID, role, notificationID string) (*dto.NotificationResponse, error)
	MarkAllRead(userID, role string) (int64, error)
	Delete(userID, role, notificationID string) error
	UnreadCount(userID, role string) (int64, error)

	// DeleteExpired removes notifications created before cutoff.
	DeleteExpired(cutoff time.Time) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	candidateRepo    repositories.CandidateRepository
	recruiterRepo    repositories.RecruiterRepository
	emitter          Emitter
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	candidateRepo repositories.CandidateRepository,
	recruiterRepo repositories.RecruiterRepository,
	emitter Emitter,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		candidateRepo:    candidateRepo,
		recruiterRepo:    recruiterRepo,
		emitter:          emitter,
	}
}

func (s *notificationService) CreateNotification(req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if req.RecipientID == "" || req.RecipientKind == "" || req.Type == "" || req.Title == "" || req.Message == "" {
		return nil, apperrors.ValidationError(map[string]string{
			"notification": "recipient_id, recipient_kind, type, title and message are required",
		})
	}

	kind := models.RecipientKind(req.RecipientKind)
	if !models.ValidRecipientKind(kind) {
		return nil, apperrors.ValidationError(map[string]string{
			"recipient_kind": fmt.Sprintf("unknown recipient kind: %s", req.RecipientKind),
		})
	}

	notifType := models.NotificationType(req.Type)
	if !models.ValidNotificationType(notifType) {
		return nil, apperrors.ValidationError(map[string]string{
			"type": fmt.Sprintf("unknown notification type: %s", req.Type),
		})
	}

	var dataJSON datatypes.JSON
	if req.Data != nil {
		jsonData, err := json.Marshal(req.Data)
		if err != nil {
			return nil, apperrors.InternalError(fmt.Errorf("failed to marshal notification data: %w", err))
		}
		dataJSON = datatypes.JSON(jsonData)
	}

	notification := &models.Notification{
		RecipientID:   req.RecipientID,
		RecipientKind: kind,
		Type:          notifType,
		Title:         req.Title,
		Message:       req.Message,
		RelatedKind:   req.RelatedKind,
		RelatedID:     req.RelatedID,
		Data:          dataJSON,
		ActionURL:     req.ActionURL,
		IsRead:        false,
	}

	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		return nil, err
	}

	response := buildNotificationResponse(notification)

	// Broadcast to all listeners; clients filter by recipient_id.
	s.emitter.Broadcast(EventNotification, response)

	return response, nil
}

func (s *notificationService) ListForUser(userID, role string, page, pageSize int) (*dto.NotificationListResponse, error) {
	recipientID, kind, err := s.resolveRecipient(userID, role)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	notifications, err := s.notificationRepo.FindRecipientNotifications(recipientID, kind, pageSize, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         len(responses),
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *notificationService) MarkRead(userID, role, notificationID string) (*dto.NotificationResponse, error) {
	notification, err := s.authorizeOwnership(userID, role, notificationID)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkAsRead(notificationID); err != nil {
		return nil, err
	}

	notification.IsRead = true
	now := time.Now()
	notification.ReadAt = &now

	return buildNotificationResponse(notification), nil
}

func (s *notificationService) MarkAllRead(userID, role string) (int64, error) {
	recipientID, kind, err := s.resolveRecipient(userID, role)
	if err != nil {
		return 0, err
	}

	return s.notificationRepo.MarkAllAsRead(recipientID, kind)
}

func (s *notificationService) Delete(userID, role, notificationID string) error {
	if _, err := s.authorizeOwnership(userID, role, notificationID); err != nil {
		return err
	}

	return s.notificationRepo.DeleteNotification(notificationID)
}

func (s *notificationService) UnreadCount(userID, role string) (int64, error) {
	recipientID, kind, err := s.resolveRecipient(userID, role)
	if err != nil {
		return 0, err
	}

	return s.notificationRepo.GetUnreadCount(recipientID, kind)
}

func (s *notificationService) DeleteExpired(cutoff time.Time) (int64, error) {
	deleted, err := s.notificationRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logger.Info("expired notifications removed", "count", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

// resolveRecipient maps an authenticated user to their notification inbox:
// the candidate or recruiter profile linked to that user.
func (s *notificationService) resolveRecipient(userID, role string) (string, models.RecipientKind, error) {
	switch models.UserRole(role) {
	case models.UserRoleCandidate:
		candidate, err := s.candidateRepo.FindCandidateByUserID(userID)
		if err != nil {
			return "", "", apperrors.NewNotFoundError("notification", "No candidate profile for this user")
		}
		return candidate.ID, models.RecipientCandidate, nil
	case models.UserRoleRecruiter:
		recruiter, err := s.recruiterRepo.FindRecruiterByUserID(userID)
		if err != nil {
			return "", "", apperrors.NewNotFoundError("notification", "No recruiter profile for this user")
		}
		return recruiter.ID, models.RecipientRecruiter, nil
	default:
		return "", "", apperrors.NewForbiddenError("This role has no notification inbox")
	}
}

func (s *notificationService) authorizeOwnership(userID, role, notificationID string) (*models.Notification, error) {
	recipientID, kind, err := s.resolveRecipient(userID, role)
	if err != nil {
		return nil, err
	}

	notification, err := s.notificationRepo.FindNotificationByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if notification.RecipientID != recipientID || notification.RecipientKind != kind {
		return nil, apperrors.NewForbiddenError("Notification belongs to another recipient")
	}

	return notification, nil
}

func buildNotificationResponse(notification *models.Notification) *dto.NotificationResponse {
	response := &dto.NotificationResponse{
		ID:            notification.ID,
		RecipientID:   notification.RecipientID,
		RecipientKind: string(notification.RecipientKind),
		Type:          string(notification.Type),
		Title:         notification.Title,
		Message:       notification.Message,
		RelatedKind:   notification.RelatedKind,
		RelatedID:     notification.RelatedID,
		ActionURL:     notification.ActionURL,
		IsRead:        notification.IsRead,
		ReadAt:        notification.ReadAt,
		CreatedAt:     notification.CreatedAt,
	}

	if len(notification.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(notification.Data, &data); err == nil {
			response.Data = data
		}
	}

	return response
}
