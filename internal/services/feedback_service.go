package services

import (
	"hirelink_backend/internal/logger"
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/repositories"
	"hirelink_backend/internal/services/dto"
	"hirelink_backend/pkg/apperrors"
)

type FeedbackService interface {
	SubmitFeedback(recruiterUserID, interviewID string, req *dto.SubmitFeedbackRequest) (*models.Feedback, error)
	ShareFeedback(recruiterUserID, feedbackID string) (*models.Feedback, error)
	GetForInterview(userID, role, interviewID string) (*models.Feedback, error)
}

type feedbackService struct {
	feedbackRepo  repositories.FeedbackRepository
	interviewRepo repositories.InterviewRepository
	recruiterRepo repositories.RecruiterRepository
	notifier      NotifierService
}

func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	interviewRepo repositories.InterviewRepository,
	recruiterRepo repositories.RecruiterRepository,
	notifier NotifierService,
) FeedbackService {
	return &feedbackService{
		feedbackRepo:  feedbackRepo,
		interviewRepo: interviewRepo,
		recruiterRepo: recruiterRepo,
		notifier:      notifier,
	}
}

func (s *feedbackService) SubmitFeedback(recruiterUserID, interviewID string, req *dto.SubmitFeedbackRequest) (*models.Feedback, error) {
	recruiter, err := s.recruiterRepo.FindRecruiterByUserID(recruiterUserID)
	if err != nil {
		return nil, apperrors.NewForbiddenError("Only recruiters can submit feedback")
	}

	interview, err := s.interviewRepo.FindInterviewByID(interviewID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("feedback", "Interview not found")
	}
	if interview.RecruiterID != recruiter.ID {
		return nil, apperrors.NewForbiddenError("You did not conduct this interview")
	}

	if existing, err := s.feedbackRepo.FindByInterviewID(interviewID); err == nil && existing != nil {
		return nil, apperrors.ErrAlreadyExists("feedback", "Feedback for this interview already exists")
	}

	feedback := &models.Feedback{
		InterviewID: interviewID,
		Rating:      req.Rating,
		Comments:    req.Comments,
		IsShared:    req.IsShared,
	}
	if err := s.feedbackRepo.CreateFeedback(feedback); err != nil {
		return nil, err
	}

	if feedback.IsShared {
		if _, err := s.notifier.NotifyFeedbackShared(feedback, interview); err != nil {
			logger.Error("failed to notify candidate about shared feedback",
				"feedback_id", feedback.ID, "error", err.Error())
		}
	}

	return feedback, nil
}

func (s *feedbackService) ShareFeedback(recruiterUserID, feedbackID string) (*models.Feedback, error) {
	recruiter, err := s.recruiterRepo.FindRecruiterByUserID(recruiterUserID)
	if err != nil {
		return nil, apperrors.NewForbiddenError("Only recruiters can share feedback")
	}

	feedback, err := s.feedbackRepo.FindFeedbackByID(feedbackID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("feedback", "Feedback not found")
	}

	interview, err := s.interviewRepo.FindInterviewByID(feedback.InterviewID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("feedback", "Interview not found")
	}
	if interview.RecruiterID != recruiter.ID {
		return nil, apperrors.NewForbiddenError("You did not conduct this interview")
	}

	if err := s.feedbackRepo.SetShared(feedbackID, true); err != nil {
		return nil, err
	}
	feedback.IsShared = true

	if _, err := s.notifier.NotifyFeedbackShared(feedback, interview); err != nil {
		logger.Error("failed to notify candidate about shared feedback",
			"feedback_id", feedbackID, "error", err.Error())
	}

	return feedback, nil
}

func (s *feedbackService) GetForInterview(userID, role, interviewID string) (*models.Feedback, error) {
	interview, err := s.interviewRepo.FindInterviewByID(interviewID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("feedback", "Interview not found")
	}

	feedback, err := s.feedbackRepo.FindByInterviewID(interviewID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("feedback", "No feedback for this interview")
	}

	switch models.UserRole(role) {
	case models.UserRoleRecruiter:
		if interview.Recruiter != nil && interview.Recruiter.UserID == userID {
			return feedback, nil
		}
	case models.UserRoleCandidate:
		// Candidates only see feedback once the recruiter shared it.
		if interview.Candidate != nil && interview.Candidate.UserID == userID && feedback.IsShared {
			return feedback, nil
		}
	}
	return nil, apperrors.NewForbiddenError("You cannot view this feedback")
}
