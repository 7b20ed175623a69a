package repositories

import (
	"errors"
	"time"

	"hirelink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrInterviewNotFound = errors.New("interview not found")

type InterviewRepository interface {
	CreateInterview(interview *models.Interview) error
	FindInterviewByID(id string) (*models.Interview, error)
	FindByCandidate(candidateID string) ([]models.Interview, error)
	FindByRecruiter(recruiterID string) ([]models.Interview, error)
	UpdateStatus(id string, status models.InterviewStatus) error
	// FindUpcomingAccepted returns accepted interviews scheduled inside
	// [from, to), with both parties preloaded for the reminder translator.
	FindUpcomingAccepted(from, to time.Time) ([]models.Interview, error)
}

type InterviewRepositoryImpl struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &InterviewRepositoryImpl{db: db}
}

func (r *InterviewRepositoryImpl) CreateInterview(interview *models.Interview) error {
	return r.db.Create(interview).Error
}

func (r *InterviewRepositoryImpl) FindInterviewByID(id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Preload("Candidate").
		Preload("Recruiter").
		First(&interview, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepositoryImpl) FindByCandidate(candidateID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Preload("Recruiter").
		Where("candidate_id = ?", candidateID).
		Order("scheduled_at ASC").
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepositoryImpl) FindByRecruiter(recruiterID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Preload("Candidate").
		Where("recruiter_id = ?", recruiterID).
		Order("scheduled_at ASC").
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepositoryImpl) UpdateStatus(id string, status models.InterviewStatus) error {
	result := r.db.Model(&models.Interview{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *InterviewRepositoryImpl) FindUpcomingAccepted(from, to time.Time) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Preload("Candidate").
		Preload("Recruiter").
		Where("status = ? AND scheduled_at >= ? AND scheduled_at < ?", models.InterviewStatusAccepted, from, to).
		Order("scheduled_at ASC").
		Find(&interviews).Error
	return interviews, err
}
