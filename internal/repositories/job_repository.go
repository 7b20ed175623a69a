package repositories

import (
	"errors"

	"hirelink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	CreateJob(job *models.Job) error
	FindJobByID(id string) (*models.Job, error)
	FindByRecruiterID(recruiterID string) ([]models.Job, error)
	ListOpenJobs() ([]models.Job, error)
	UpdateStatus(id string, status models.JobStatus) error
	DeleteJob(id string) error
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) CreateJob(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindJobByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Recruiter").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByRecruiterID(recruiterID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("recruiter_id = ?", recruiterID).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) ListOpenJobs() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("status = ?", models.JobStatusOpen).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) UpdateStatus(id string, status models.JobStatus) error {
	result := r.db.Model(&models.Job{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// DeleteJob soft-deletes via the DeletedAt column, so the row survives
// for interviews that still reference it.
func (r *JobRepositoryImpl) DeleteJob(id string) error {
	result := r.db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
