package repositories

import (
	"errors"

	"hirelink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type FeedbackRepository interface {
	CreateFeedback(feedback *models.Feedback) error
	FindFeedbackByID(id string) (*models.Feedback, error)
	FindByInterviewID(interviewID string) (*models.Feedback, error)
	SetShared(id string, shared bool) error
}

type FeedbackRepositoryImpl struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &FeedbackRepositoryImpl{db: db}
}

func (r *FeedbackRepositoryImpl) CreateFeedback(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepositoryImpl) FindFeedbackByID(id string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.First(&feedback, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackRepositoryImpl) FindByInterviewID(interviewID string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.First(&feedback, "interview_id = ?", interviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackRepositoryImpl) SetShared(id string, shared bool) error {
	result := r.db.Model(&models.Feedback{}).Where("id = ?", id).Update("is_shared", shared)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}
