package services

import (
	"fmt"
	"time"

	"hirelink_backend/internal/email"
	"hirelink_backend/internal/logger"
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/services/dto"
	"hirelink_backend/pkg/apperrors"
)

// NotifierService translates interview/feedback domain events into
// notifications plus best-effort email and realtime delivery.
//
// Delivery contract for every method: the notification store write is the
// primary channel and its error is returned; email and realtime push are
// secondary channels whose failures are logged and swallowed here. The
// workflow caller in turn logs a returned error instead of aborting its
// own persistence.
type NotifierService interface {
	NotifyInterviewRequested(interview *models.Interview) (*dto.NotificationResponse, error)
	NotifyInterviewStatus(interview *models.Interview, actor models.UserRole) (*dto.NotificationResponse, error)
	// NotifyFeedbackShared returns (nil, nil) when the feedback is not
	// shared: unshared feedback must never reach the candidate.
	NotifyFeedbackShared(feedback *models.Feedback, interview *models.Interview) (*dto.NotificationResponse, error)
	// NotifyInterviewReminder notifies both interview parties.
	NotifyInterviewReminder(interview *models.Interview) error
}

type notifierService struct {
	notifications NotificationService
	mailer        email.Provider
	emitter       Emitter
	baseURL       string
}

func NewNotifierService(
	notifications NotificationService,
	mailer email.Provider,
	emitter Emitter,
	baseURL string,
) NotifierService {
	return &notifierService{
		notifications: notifications,
		mailer:        mailer,
		emitter:       emitter,
		baseURL:       baseURL,
	}
}

func (s *notifierService) NotifyInterviewRequested(interview *models.Interview) (*dto.NotificationResponse, error) {
	candidate := interview.Candidate
	if candidate == nil {
		return nil, fmt.Errorf("interview %s has no candidate loaded", interview.ID)
	}

	from := recruiterLabel(interview.Recruiter)
	actionURL := s.interviewURL(interview.ID)

	notification, err := s.notifications.CreateNotification(&dto.CreateNotificationRequest{
		RecipientID:   candidate.ID,
		RecipientKind: string(models.RecipientCandidate),
		Type:          string(models.NotificationInterviewRequest),
		Title:         "New Interview Request",
		Message:       fmt.Sprintf("%s has requested an interview with you for the %s position.", from, interview.PositionTitle),
		RelatedKind:   "interview",
		RelatedID:     interview.ID,
		ActionURL:     actionURL,
		Data: map[string]interface{}{
			"interview_id":   interview.ID,
			"position_title": interview.PositionTitle,
			"scheduled_at":   interview.ScheduledAt,
		},
	})
	if err != nil {
		return nil, err
	}

	if candidate.Email != "" {
		s.sendBestEffort(candidate.Email, "New Interview Request", "interview_request", email.TemplateData{
			"UserName":      candidate.FullName,
			"CompanyName":   from,
			"PositionTitle": interview.PositionTitle,
			"ScheduledAt":   formatScheduled(interview.ScheduledAt),
			"Duration":      interview.DurationMinutes,
			"Notes":         interview.Notes,
			"ActionURL":     actionURL,
		})
	}

	s.emitTargeted(candidate.UserID, EventNewInterviewRequest, interview)

	return notification, nil
}

// statusTemplate holds the per-status notification text. Unknown statuses
// fall back to a generic "system" template rather than failing.
type statusTemplate struct {
	notifType models.NotificationType
	title     string
	message   string // fmt with (counterpart, position)
}

var statusTemplates = map[models.InterviewStatus]statusTemplate{
	models.InterviewStatusAccepted: {
		notifType: models.NotificationInterviewAccepted,
		title:     "Interview Accepted",
		message:   "%s accepted the interview for the %s position.",
	},
	models.InterviewStatusRejected: {
		notifType: models.NotificationInterviewRejected,
		title:     "Interview Declined",
		message:   "%s declined the interview for the %s position.",
	},
	models.InterviewStatusCancelled: {
		notifType: models.NotificationInterviewCancelled,
		title:     "Interview Cancelled",
		message:   "%s cancelled the interview for the %s position.",
	},
	models.InterviewStatusCompleted: {
		notifType: models.NotificationSystem,
		title:     "Interview Completed",
		message:   "%s marked the interview for the %s position as completed.",
	},
}

func (s *notifierService) NotifyInterviewStatus(interview *models.Interview, actor models.UserRole) (*dto.NotificationResponse, error) {
	// The counterpart of whoever acted receives the notification.
	var (
		recipientID   string
		recipientKind models.RecipientKind
		recipientName string
		recipientMail string
		recipientUser string
		actorName     string
	)

	if actor == models.UserRoleCandidate {
		recruiter := interview.Recruiter
		if recruiter == nil {
			return nil, fmt.Errorf("interview %s has no recruiter loaded", interview.ID)
		}
		recipientID = recruiter.ID
		recipientKind = models.RecipientRecruiter
		recipientName = recruiter.FullName
		recipientMail = recruiter.Email
		recipientUser = recruiter.UserID
		actorName = candidateLabel(interview.Candidate)
	} else {
		candidate := interview.Candidate
		if candidate == nil {
			return nil, fmt.Errorf("interview %s has no candidate loaded", interview.ID)
		}
		recipientID = candidate.ID
		recipientKind = models.RecipientCandidate
		recipientName = candidate.FullName
		recipientMail = candidate.Email
		recipientUser = candidate.UserID
		actorName = recruiterLabel(interview.Recruiter)
	}

	tmpl, ok := statusTemplates[interview.Status]
	if !ok {
		tmpl = statusTemplate{
			notifType: models.NotificationSystem,
			title:     "Interview Update",
			message:   "%s updated the interview for the %s position.",
		}
	}

	actionURL := s.interviewURL(interview.ID)
	message := fmt.Sprintf(tmpl.message, actorName, interview.PositionTitle)

	notification, err := s.notifications.CreateNotification(&dto.CreateNotificationRequest{
		RecipientID:   recipientID,
		RecipientKind: string(recipientKind),
		Type:          string(tmpl.notifType),
		Title:         tmpl.title,
		Message:       message,
		RelatedKind:   "interview",
		RelatedID:     interview.ID,
		ActionURL:     actionURL,
		Data: map[string]interface{}{
			"interview_id": interview.ID,
			"status":       interview.Status,
		},
	})
	if err != nil {
		return nil, err
	}

	if recipientMail != "" {
		s.sendBestEffort(recipientMail, tmpl.title, "notification", email.TemplateData{
			"Title":     tmpl.title,
			"Message":   message,
			"UserName":  recipientName,
			"ActionURL": actionURL,
		})
	}

	s.emitTargeted(recipientUser, EventInterviewStatusUpdate, interview)

	return notification, nil
}

func (s *notifierService) NotifyFeedbackShared(feedback *models.Feedback, interview *models.Interview) (*dto.NotificationResponse, error) {
	if feedback == nil || !feedback.IsShared {
		// Policy gate, not an error.
		return nil, nil
	}

	candidate := interview.Candidate
	if candidate == nil {
		return nil, fmt.Errorf("interview %s has no candidate loaded", interview.ID)
	}

	actionURL := s.interviewURL(interview.ID)
	message := fmt.Sprintf("Feedback for your %s interview is now available.", interview.PositionTitle)

	notification, err := s.notifications.CreateNotification(&dto.CreateNotificationRequest{
		RecipientID:   candidate.ID,
		RecipientKind: string(models.RecipientCandidate),
		Type:          string(models.NotificationFeedbackShared),
		Title:         "Interview Feedback Shared",
		Message:       message,
		RelatedKind:   "interview",
		RelatedID:     interview.ID,
		ActionURL:     actionURL,
	})
	if err != nil {
		return nil, err
	}

	if candidate.Email != "" {
		s.sendBestEffort(candidate.Email, "Interview Feedback Shared", "notification", email.TemplateData{
			"Title":     "Interview Feedback Shared",
			"Message":   message,
			"UserName":  candidate.FullName,
			"ActionURL": actionURL,
		})
	}

	return notification, nil
}

func (s *notifierService) NotifyInterviewReminder(interview *models.Interview) error {
	actionURL := s.interviewURL(interview.ID)
	scheduled := formatScheduled(interview.ScheduledAt)
	message := fmt.Sprintf("Your interview for the %s position is scheduled at %s.", interview.PositionTitle, scheduled)

	type party struct {
		id       string
		kind     models.RecipientKind
		name     string
		mailAddr string
	}

	var parties []party
	if c := interview.Candidate; c != nil {
		parties = append(parties, party{c.ID, models.RecipientCandidate, c.FullName, c.Email})
	}
	if r := interview.Recruiter; r != nil {
		parties = append(parties, party{r.ID, models.RecipientRecruiter, r.FullName, r.Email})
	}
	if len(parties) == 0 {
		return fmt.Errorf("interview %s has no parties loaded", interview.ID)
	}

	for _, p := range parties {
		_, err := s.notifications.CreateNotification(&dto.CreateNotificationRequest{
			RecipientID:   p.id,
			RecipientKind: string(p.kind),
			Type:          string(models.NotificationInterviewReminder),
			Title:         "Interview Reminder",
			Message:       message,
			RelatedKind:   "interview",
			RelatedID:     interview.ID,
			ActionURL:     actionURL,
		})
		if err != nil {
			return err
		}

		if p.mailAddr != "" {
			s.sendBestEffort(p.mailAddr, "Interview Reminder", "interview_reminder", email.TemplateData{
				"UserName":      p.name,
				"PositionTitle": interview.PositionTitle,
				"ScheduledAt":   scheduled,
				"ActionURL":     actionURL,
			})
		}
	}

	return nil
}

// sendBestEffort attempts email delivery and logs any failure. Email is a
// secondary channel: the notification record already exists.
func (s *notifierService) sendBestEffort(to, subject, template string, data email.TemplateData) {
	if err := s.mailer.SendTemplate([]string{to}, subject, template, data); err != nil {
		deliveryErr := apperrors.NewDeliveryError("email", err)
		logger.Warn("email delivery failed", "error", deliveryErr.Error(), "to", to, "subject", subject)
	}
}

// emitTargeted pushes a targeted event when the recipient has a linked
// user identity. Without the link the realtime copy is skipped: degraded
// delivery, not a failure (store and email channels already fired).
func (s *notifierService) emitTargeted(userID, event string, payload any) {
	if userID == "" {
		logger.Debug("skipping targeted emit: recipient has no linked user", "event", event)
		return
	}
	s.emitter.EmitToUser(userID, event, payload)
}

func (s *notifierService) interviewURL(interviewID string) string {
	return fmt.Sprintf("%s/interviews/%s", s.baseURL, interviewID)
}

func formatScheduled(t time.Time) string {
	return t.Format("Mon, 2 Jan 2006 at 15:04 MST")
}

func recruiterLabel(r *models.Recruiter) string {
	if r == nil {
		return "A recruiter"
	}
	if r.Company != "" {
		return fmt.Sprintf("%s (%s)", r.FullName, r.Company)
	}
	return r.FullName
}

func candidateLabel(c *models.Candidate) string {
	if c == nil {
		return "The candidate"
	}
	return c.FullName
}
