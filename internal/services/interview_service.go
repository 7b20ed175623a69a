package services

import (
	"hirelink_backend/internal/logger"
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/repositories"
	"hirelink_backend/internal/services/dto"
	"hirelink_backend/pkg/apperrors"
)

type InterviewService interface {
	// ScheduleInterview persists a new interview and notifies the
	// candidate. Notification failure never rolls the interview back.
	ScheduleInterview(recruiterUserID string, req *dto.CreateInterviewRequest) (*models.Interview, error)

	UpdateStatus(userID, role, interviewID string, status models.InterviewStatus) (*models.Interview, error)
	GetInterview(userID, role, interviewID string) (*models.Interview, error)
	ListForUser(userID, role string) ([]models.Interview, error)
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	candidateRepo repositories.CandidateRepository
	recruiterRepo repositories.RecruiterRepository
	jobRepo       repositories.JobRepository
	notifier      NotifierService
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	candidateRepo repositories.CandidateRepository,
	recruiterRepo repositories.RecruiterRepository,
	jobRepo repositories.JobRepository,
	notifier NotifierService,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		candidateRepo: candidateRepo,
		recruiterRepo: recruiterRepo,
		jobRepo:       jobRepo,
		notifier:      notifier,
	}
}

func (s *interviewService) ScheduleInterview(recruiterUserID string, req *dto.CreateInterviewRequest) (*models.Interview, error) {
	recruiter, err := s.recruiterRepo.FindRecruiterByUserID(recruiterUserID)
	if err != nil {
		return nil, apperrors.NewForbiddenError("Only recruiters can schedule interviews")
	}

	if _, err := s.candidateRepo.FindCandidateByID(req.CandidateID); err != nil {
		return nil, apperrors.NewNotFoundError("interview", "Candidate not found")
	}

	positionTitle := req.PositionTitle
	var jobID *string
	if req.JobID != "" {
		job, err := s.jobRepo.FindJobByID(req.JobID)
		if err != nil {
			return nil, apperrors.NewNotFoundError("interview", "Job not found")
		}
		if job.RecruiterID != recruiter.ID {
			return nil, apperrors.NewForbiddenError("Job belongs to another recruiter")
		}
		positionTitle = job.Title
		jobID = &job.ID
	}
	if positionTitle == "" {
		return nil, apperrors.NewBadRequestError("position_title is required when no job is linked")
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 30
	}

	interview := &models.Interview{
		JobID:           jobID,
		CandidateID:     req.CandidateID,
		RecruiterID:     recruiter.ID,
		PositionTitle:   positionTitle,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: duration,
		Notes:           req.Notes,
		Status:          models.InterviewStatusPending,
	}

	if err := s.interviewRepo.CreateInterview(interview); err != nil {
		return nil, err
	}

	// Reload with both parties for the translator.
	populated, err := s.interviewRepo.FindInterviewByID(interview.ID)
	if err != nil {
		return interview, nil
	}

	if _, err := s.notifier.NotifyInterviewRequested(populated); err != nil {
		logger.Error("failed to notify candidate about interview request",
			"interview_id", interview.ID, "error", err.Error())
	}

	return populated, nil
}

// allowedTransitions maps who may move an interview into which status.
var allowedTransitions = map[models.UserRole]map[models.InterviewStatus]bool{
	models.UserRoleCandidate: {
		models.InterviewStatusAccepted:  true,
		models.InterviewStatusRejected:  true,
		models.InterviewStatusCancelled: true,
	},
	models.UserRoleRecruiter: {
		models.InterviewStatusCancelled: true,
		models.InterviewStatusCompleted: true,
	},
}

func (s *interviewService) UpdateStatus(userID, role, interviewID string, status models.InterviewStatus) (*models.Interview, error) {
	if !models.ValidInterviewStatus(status) {
		return nil, apperrors.NewBadRequestError("Unknown interview status")
	}

	interview, err := s.interviewRepo.FindInterviewByID(interviewID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("interview", "Interview not found")
	}

	actor := models.UserRole(role)
	if err := s.authorizeParty(userID, actor, interview); err != nil {
		return nil, err
	}

	if !allowedTransitions[actor][status] {
		return nil, apperrors.ErrInvalidOperation("interview", "This role cannot set that status")
	}

	if interview.Status == models.InterviewStatusCancelled || interview.Status == models.InterviewStatusCompleted {
		return nil, apperrors.ErrInvalidOperation("interview", "Interview is already finalized")
	}

	if err := s.interviewRepo.UpdateStatus(interviewID, status); err != nil {
		return nil, err
	}
	interview.Status = status

	if _, err := s.notifier.NotifyInterviewStatus(interview, actor); err != nil {
		logger.Error("failed to notify counterpart about interview status",
			"interview_id", interviewID, "status", status, "error", err.Error())
	}

	return interview, nil
}

func (s *interviewService) GetInterview(userID, role, interviewID string) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindInterviewByID(interviewID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("interview", "Interview not found")
	}

	if err := s.authorizeParty(userID, models.UserRole(role), interview); err != nil {
		return nil, err
	}

	return interview, nil
}

func (s *interviewService) ListForUser(userID, role string) ([]models.Interview, error) {
	switch models.UserRole(role) {
	case models.UserRoleCandidate:
		candidate, err := s.candidateRepo.FindCandidateByUserID(userID)
		if err != nil {
			return nil, apperrors.NewNotFoundError("interview", "No candidate profile for this user")
		}
		return s.interviewRepo.FindByCandidate(candidate.ID)
	case models.UserRoleRecruiter:
		recruiter, err := s.recruiterRepo.FindRecruiterByUserID(userID)
		if err != nil {
			return nil, apperrors.NewNotFoundError("interview", "No recruiter profile for this user")
		}
		return s.interviewRepo.FindByRecruiter(recruiter.ID)
	default:
		return nil, apperrors.NewForbiddenError("This role has no interviews")
	}
}

// authorizeParty verifies the user is one of the interview's two parties.
func (s *interviewService) authorizeParty(userID string, role models.UserRole, interview *models.Interview) error {
	switch role {
	case models.UserRoleCandidate:
		if interview.Candidate != nil && interview.Candidate.UserID == userID {
			return nil
		}
	case models.UserRoleRecruiter:
		if interview.Recruiter != nil && interview.Recruiter.UserID == userID {
			return nil
		}
	}
	return apperrors.NewForbiddenError("You are not a party to this interview")
}
