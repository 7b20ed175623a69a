package services

import (
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/repositories"
	"hirelink_backend/internal/services/dto"
	"hirelink_backend/pkg/apperrors"
)

type JobService interface {
	CreateJob(recruiterUserID string, req *dto.CreateJobRequest) (*models.Job, error)
	GetJob(id string) (*models.Job, error)
	ListOpenJobs() ([]models.Job, error)
	ListForRecruiter(recruiterUserID string) ([]models.Job, error)
	CloseJob(recruiterUserID, jobID string) error
	DeleteJob(recruiterUserID, jobID string) error
}

type jobService struct {
	jobRepo       repositories.JobRepository
	recruiterRepo repositories.RecruiterRepository
}

func NewJobService(jobRepo repositories.JobRepository, recruiterRepo repositories.RecruiterRepository) JobService {
	return &jobService{jobRepo: jobRepo, recruiterRepo: recruiterRepo}
}

func (s *jobService) CreateJob(recruiterUserID string, req *dto.CreateJobRequest) (*models.Job, error) {
	recruiter, err := s.recruiterRepo.FindRecruiterByUserID(recruiterUserID)
	if err != nil {
		return nil, apperrors.NewForbiddenError("Only recruiters can post jobs")
	}

	job := &models.Job{
		RecruiterID: recruiter.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Status:      models.JobStatusOpen,
	}
	if err := s.jobRepo.CreateJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) GetJob(id string) (*models.Job, error) {
	job, err := s.jobRepo.FindJobByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("job", "Job not found")
	}
	return job, nil
}

func (s *jobService) ListOpenJobs() ([]models.Job, error) {
	return s.jobRepo.ListOpenJobs()
}

func (s *jobService) ListForRecruiter(recruiterUserID string) ([]models.Job, error) {
	recruiter, err := s.recruiterRepo.FindRecruiterByUserID(recruiterUserID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("job", "No recruiter profile for this user")
	}
	return s.jobRepo.FindByRecruiterID(recruiter.ID)
}

func (s *jobService) CloseJob(recruiterUserID, jobID string) error {
	recruiter, err := s.recruiterRepo.FindRecruiterByUserID(recruiterUserID)
	if err != nil {
		return apperrors.NewForbiddenError("Only recruiters can close jobs")
	}

	job, err := s.jobRepo.FindJobByID(jobID)
	if err != nil {
		return apperrors.NewNotFoundError("job", "Job not found")
	}
	if job.RecruiterID != recruiter.ID {
		return apperrors.NewForbiddenError("This job belongs to another recruiter")
	}

	return s.jobRepo.UpdateStatus(jobID, models.JobStatusClosed)
}

func (s *jobService) DeleteJob(recruiterUserID, jobID string) error {
	recruiter, err := s.recruiterRepo.FindRecruiterByUserID(recruiterUserID)
	if err != nil {
		return apperrors.NewForbiddenError("Only recruiters can delete jobs")
	}

	job, err := s.jobRepo.FindJobByID(jobID)
	if err != nil {
		return apperrors.NewNotFoundError("job", "Job not found")
	}
	if job.RecruiterID != recruiter.ID {
		return apperrors.NewForbiddenError("This job belongs to another recruiter")
	}

	return s.jobRepo.DeleteJob(jobID)
}
