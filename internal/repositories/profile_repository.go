package repositories

import (
	"errors"

	"hirelink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrRecruiterNotFound = errors.New("recruiter not found")
)

type CandidateRepository interface {
	CreateCandidate(candidate *models.Candidate) error
	FindCandidateByID(id string) (*models.Candidate, error)
	FindCandidateByUserID(userID string) (*models.Candidate, error)
}

type RecruiterRepository interface {
	CreateRecruiter(recruiter *models.Recruiter) error
	FindRecruiterByID(id string) (*models.Recruiter, error)
	FindRecruiterByUserID(userID string) (*models.Recruiter, error)
}

type CandidateRepositoryImpl struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &CandidateRepositoryImpl{db: db}
}

func (r *CandidateRepositoryImpl) CreateCandidate(candidate *models.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *CandidateRepositoryImpl) FindCandidateByID(id string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.First(&candidate, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepositoryImpl) FindCandidateByUserID(userID string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.First(&candidate, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

type RecruiterRepositoryImpl struct {
	db *gorm.DB
}

func NewRecruiterRepository(db *gorm.DB) RecruiterRepository {
	return &RecruiterRepositoryImpl{db: db}
}

func (r *RecruiterRepositoryImpl) CreateRecruiter(recruiter *models.Recruiter) error {
	return r.db.Create(recruiter).Error
}

func (r *RecruiterRepositoryImpl) FindRecruiterByID(id string) (*models.Recruiter, error) {
	var recruiter models.Recruiter
	err := r.db.First(&recruiter, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecruiterNotFound
		}
		return nil, err
	}
	return &recruiter, nil
}

func (r *RecruiterRepositoryImpl) FindRecruiterByUserID(userID string) (*models.Recruiter, error) {
	var recruiter models.Recruiter
	err := r.db.First(&recruiter, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecruiterNotFound
		}
		return nil, err
	}
	return &recruiter, nil
}
