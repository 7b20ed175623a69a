package services

import (
	"testing"
	"time"

	"hirelink_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://app.hirelink.example"

type notifierFixture struct {
	notificationRepo *fakeNotificationRepo
	emitter          *recordingEmitter
	mailer           *recordingMailer
	notifier         NotifierService
}

func newNotifierFixture() *notifierFixture {
	notificationRepo := newFakeNotificationRepo()
	candidateRepo := newFakeCandidateRepo()
	recruiterRepo := newFakeRecruiterRepo()
	emitter := &recordingEmitter{}
	mailer := &recordingMailer{}

	notifications := NewNotificationService(notificationRepo, candidateRepo, recruiterRepo, emitter)
	notifier := NewNotifierService(notifications, mailer, emitter, testBaseURL)

	return &notifierFixture{
		notificationRepo: notificationRepo,
		emitter:          emitter,
		mailer:           mailer,
		notifier:         notifier,
	}
}

func testInterview() *models.Interview {
	candidate := &models.Candidate{
		BaseModel: models.BaseModel{ID: "cand-1"},
		UserID:    "user-cand-1",
		FullName:  "Aigerim S.",
		Email:     "aigerim@example.com",
	}
	recruiter := &models.Recruiter{
		BaseModel: models.BaseModel{ID: "rec-1"},
		UserID:    "user-rec-1",
		FullName:  "Dana K.",
		Email:     "dana@example.com",
		Company:   "HireLink",
	}
	return &models.Interview{
		BaseModel:       models.BaseModel{ID: "iv-1"},
		CandidateID:     candidate.ID,
		RecruiterID:     recruiter.ID,
		PositionTitle:   "Backend Engineer",
		ScheduledAt:     time.Now().Add(48 * time.Hour),
		DurationMinutes: 45,
		Status:          models.InterviewStatusPending,
		Candidate:       candidate,
		Recruiter:       recruiter,
	}
}

func TestNotifyInterviewRequested(t *testing.T) {
	f := newNotifierFixture()
	interview := testInterview()

	notification, err := f.notifier.NotifyInterviewRequested(interview)
	require.NoError(t, err)
	require.NotNil(t, notification)

	assert.Equal(t, "cand-1", notification.RecipientID)
	assert.Equal(t, "candidate", notification.RecipientKind)
	assert.Equal(t, string(models.NotificationInterviewRequest), notification.Type)
	assert.Contains(t, notification.Message, "Dana K. (HireLink)")
	assert.Contains(t, notification.Message, "Backend Engineer")
	assert.Equal(t, testBaseURL+"/interviews/iv-1", notification.ActionURL)
	assert.Equal(t, 1, f.notificationRepo.count())

	// Email went to the candidate with the dedicated template.
	require.Equal(t, 1, f.mailer.sentCount())
	assert.Equal(t, []string{"aigerim@example.com"}, f.mailer.sent[0].To)
	assert.Equal(t, "interview_request", f.mailer.sent[0].Template)

	// Targeted realtime event for the candidate's user, plus the
	// store-level notification broadcast.
	targeted := f.emitter.byEvent(EventNewInterviewRequest)
	require.Len(t, targeted, 1)
	assert.Equal(t, "user-cand-1", targeted[0].UserID)
	assert.Len(t, f.emitter.byEvent(EventNotification), 1)
}

func TestNotifyInterviewStatus_CandidateActsRecruiterHears(t *testing.T) {
	f := newNotifierFixture()
	interview := testInterview()
	interview.Status = models.InterviewStatusAccepted

	notification, err := f.notifier.NotifyInterviewStatus(interview, models.UserRoleCandidate)
	require.NoError(t, err)

	assert.Equal(t, "rec-1", notification.RecipientID)
	assert.Equal(t, "recruiter", notification.RecipientKind)
	assert.Equal(t, string(models.NotificationInterviewAccepted), notification.Type)
	assert.Contains(t, notification.Message, "Aigerim S.")

	targeted := f.emitter.byEvent(EventInterviewStatusUpdate)
	require.Len(t, targeted, 1)
	assert.Equal(t, "user-rec-1", targeted[0].UserID)
}

func TestNotifyInterviewStatus_RecruiterActsCandidateHears(t *testing.T) {
	f := newNotifierFixture()
	interview := testInterview()
	interview.Status = models.InterviewStatusCancelled

	notification, err := f.notifier.NotifyInterviewStatus(interview, models.UserRoleRecruiter)
	require.NoError(t, err)

	assert.Equal(t, "cand-1", notification.RecipientID)
	assert.Equal(t, string(models.NotificationInterviewCancelled), notification.Type)
	assert.Contains(t, notification.Message, "Dana K. (HireLink)")

	targeted := f.emitter.byEvent(EventInterviewStatusUpdate)
	require.Len(t, targeted, 1)
	assert.Equal(t, "user-cand-1", targeted[0].UserID)
}

func TestNotifyInterviewStatus_CompletedHasOwnTemplate(t *testing.T) {
	f := newNotifierFixture()
	interview := testInterview()
	interview.Status = models.InterviewStatusCompleted

	notification, err := f.notifier.NotifyInterviewStatus(interview, models.UserRoleRecruiter)
	require.NoError(t, err)

	assert.Equal(t, "Interview Completed", notification.Title)
	assert.Contains(t, notification.Message, "as completed")
	assert.Equal(t, "cand-1", notification.RecipientID)
}

func TestNotifyInterviewStatus_UnknownStatusFallsBack(t *testing.T) {
	f := newNotifierFixture()
	interview := testInterview()
	interview.Status = models.InterviewStatus("archived") // no template for this

	notification, err := f.notifier.NotifyInterviewStatus(interview, models.UserRoleRecruiter)
	require.NoError(t, err)

	assert.Equal(t, string(models.NotificationSystem), notification.Type)
	assert.Equal(t, "Interview Update", notification.Title)
}

func TestNotifyInterviewStatus_MailerOutageIsNotFatal(t *testing.T) {
	f := newNotifierFixture()
	f.mailer.fail = true
	interview := testInterview()
	interview.Status = models.InterviewStatusAccepted

	notification, err := f.notifier.NotifyInterviewStatus(interview, models.UserRoleCandidate)
	require.NoError(t, err, "email is a secondary channel")
	require.NotNil(t, notification)
	assert.Equal(t, 1, f.notificationRepo.count())
}

func TestNotifyInterviewRequested_UnlinkedCandidateSkipsTargetedEmit(t *testing.T) {
	f := newNotifierFixture()
	interview := testInterview()
	interview.Candidate.UserID = ""

	notification, err := f.notifier.NotifyInterviewRequested(interview)
	require.NoError(t, err)
	require.NotNil(t, notification)

	assert.Empty(t, f.emitter.byEvent(EventNewInterviewRequest))
	// Store write and email still happened.
	assert.Equal(t, 1, f.notificationRepo.count())
	assert.Equal(t, 1, f.mailer.sentCount())
}

func TestNotifyFeedbackShared_GateOnIsShared(t *testing.T) {
	f := newNotifierFixture()
	interview := testInterview()

	unshared := &models.Feedback{BaseModel: models.BaseModel{ID: "fb-1"}, InterviewID: "iv-1", Rating: 4, IsShared: false}
	notification, err := f.notifier.NotifyFeedbackShared(unshared, interview)
	require.NoError(t, err)
	assert.Nil(t, notification, "unshared feedback never reaches the candidate")
	assert.Equal(t, 0, f.notificationRepo.count())

	unshared.IsShared = true
	notification, err = f.notifier.NotifyFeedbackShared(unshared, interview)
	require.NoError(t, err)
	require.NotNil(t, notification)
	assert.Equal(t, string(models.NotificationFeedbackShared), notification.Type)
	assert.Equal(t, "cand-1", notification.RecipientID)
}

func TestNotifyInterviewReminder_NotifiesBothParties(t *testing.T) {
	f := newNotifierFixture()
	interview := testInterview()
	interview.Status = models.InterviewStatusAccepted

	err := f.notifier.NotifyInterviewReminder(interview)
	require.NoError(t, err)

	assert.Equal(t, 2, f.notificationRepo.count())
	assert.Equal(t, 2, f.mailer.sentCount())

	candidateInbox, err := f.notificationRepo.FindRecipientNotifications("cand-1", models.RecipientCandidate, 0, 0)
	require.NoError(t, err)
	require.Len(t, candidateInbox, 1)
	assert.Equal(t, models.NotificationInterviewReminder, candidateInbox[0].Type)

	recruiterInbox, err := f.notificationRepo.FindRecipientNotifications("rec-1", models.RecipientRecruiter, 0, 0)
	require.NoError(t, err)
	assert.Len(t, recruiterInbox, 1)
}
