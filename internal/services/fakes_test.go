package services

import (
	"errors"
	"sort"
	"sync"
	"time"

	"hirelink_backend/internal/email"
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/repositories"
	"hirelink_backend/internal/services/dto"

	"github.com/google/uuid"
)

// In-memory doubles for the repository and delivery interfaces. They keep
// the service tests free of a live postgres and SMTP server.

type fakeNotificationRepo struct {
	mu    sync.Mutex
	items map[string]*models.Notification

	failCreate error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{items: make(map[string]*models.Notification)}
}

func (r *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()
	clone := *n
	r.items[n.ID] = &clone
	return nil
}

func (r *fakeNotificationRepo) FindNotificationByID(id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotificationNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *fakeNotificationRepo) FindRecipientNotifications(recipientID string, kind models.RecipientKind, limit, offset int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.items {
		if n.RecipientID == recipientID && n.RecipientKind == kind {
			out = append(out, *n)
		}
	}
	// Newest first, same as the postgres query.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
		if limit < len(out) {
			out = out[:limit]
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok {
		return repositories.ErrNotificationNotFound
	}
	if !n.IsRead {
		n.IsRead = true
		now := time.Now()
		n.ReadAt = &now
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID string, kind models.RecipientKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for _, n := range r.items {
		if n.RecipientID == recipientID && n.RecipientKind == kind && !n.IsRead {
			n.IsRead = true
			now := time.Now()
			n.ReadAt = &now
			updated++
		}
	}
	return updated, nil
}

func (r *fakeNotificationRepo) DeleteNotification(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repositories.ErrNotificationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID string, kind models.RecipientKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.items {
		if n.RecipientID == recipientID && n.RecipientKind == kind && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, n := range r.items {
		if n.CreatedAt.Before(cutoff) {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// setCreatedAt backdates a stored notification so ordering tests do not
// ride on the clock resolution of back-to-back creates.
func (r *fakeNotificationRepo) setCreatedAt(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.items[id]; ok {
		n.CreatedAt = at
	}
}

type fakeCandidateRepo struct {
	byID     map[string]*models.Candidate
	byUserID map[string]*models.Candidate
}

func newFakeCandidateRepo(candidates ...*models.Candidate) *fakeCandidateRepo {
	r := &fakeCandidateRepo{
		byID:     make(map[string]*models.Candidate),
		byUserID: make(map[string]*models.Candidate),
	}
	for _, c := range candidates {
		r.add(c)
	}
	return r
}

func (r *fakeCandidateRepo) add(c *models.Candidate) {
	r.byID[c.ID] = c
	if c.UserID != "" {
		r.byUserID[c.UserID] = c
	}
}

func (r *fakeCandidateRepo) CreateCandidate(c *models.Candidate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.add(c)
	return nil
}

func (r *fakeCandidateRepo) FindCandidateByID(id string) (*models.Candidate, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrCandidateNotFound
}

func (r *fakeCandidateRepo) FindCandidateByUserID(userID string) (*models.Candidate, error) {
	if c, ok := r.byUserID[userID]; ok {
		return c, nil
	}
	return nil, repositories.ErrCandidateNotFound
}

type fakeRecruiterRepo struct {
	byID     map[string]*models.Recruiter
	byUserID map[string]*models.Recruiter
}

func newFakeRecruiterRepo(recruiters ...*models.Recruiter) *fakeRecruiterRepo {
	r := &fakeRecruiterRepo{
		byID:     make(map[string]*models.Recruiter),
		byUserID: make(map[string]*models.Recruiter),
	}
	for _, rec := range recruiters {
		r.add(rec)
	}
	return r
}

func (r *fakeRecruiterRepo) add(rec *models.Recruiter) {
	r.byID[rec.ID] = rec
	if rec.UserID != "" {
		r.byUserID[rec.UserID] = rec
	}
}

func (r *fakeRecruiterRepo) CreateRecruiter(rec *models.Recruiter) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	r.add(rec)
	return nil
}

func (r *fakeRecruiterRepo) FindRecruiterByID(id string) (*models.Recruiter, error) {
	if rec, ok := r.byID[id]; ok {
		return rec, nil
	}
	return nil, repositories.ErrRecruiterNotFound
}

func (r *fakeRecruiterRepo) FindRecruiterByUserID(userID string) (*models.Recruiter, error) {
	if rec, ok := r.byUserID[userID]; ok {
		return rec, nil
	}
	return nil, repositories.ErrRecruiterNotFound
}

type emittedEvent struct {
	UserID  string // empty for broadcasts
	Event   string
	Payload any
}

// recordingEmitter captures every emit for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
}

func (e *recordingEmitter) EmitToUser(userID, event string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emittedEvent{UserID: userID, Event: event, Payload: payload})
}

func (e *recordingEmitter) Broadcast(event string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emittedEvent{Event: event, Payload: payload})
}

func (e *recordingEmitter) all() []emittedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]emittedEvent(nil), e.events...)
}

func (e *recordingEmitter) byEvent(event string) []emittedEvent {
	var out []emittedEvent
	for _, ev := range e.all() {
		if ev.Event == event {
			out = append(out, ev)
		}
	}
	return out
}

type sentMail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

// recordingMailer captures sent mail; set fail to simulate an SMTP outage.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *recordingMailer) Send(msg *email.Email) error {
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	return nil
}

func (m *recordingMailer) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (m *recordingMailer) Validate() error { return nil }
func (m *recordingMailer) Close() error    { return nil }

func (m *recordingMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeInterviewRepo struct {
	mu    sync.Mutex
	items map[string]*models.Interview
}

func newFakeInterviewRepo(interviews ...*models.Interview) *fakeInterviewRepo {
	r := &fakeInterviewRepo{items: make(map[string]*models.Interview)}
	for _, iv := range interviews {
		if iv.ID == "" {
			iv.ID = uuid.NewString()
		}
		r.items[iv.ID] = iv
	}
	return r
}

func (r *fakeInterviewRepo) CreateInterview(iv *models.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	r.items[iv.ID] = iv
	return nil
}

func (r *fakeInterviewRepo) FindInterviewByID(id string) (*models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if iv, ok := r.items[id]; ok {
		return iv, nil
	}
	return nil, repositories.ErrInterviewNotFound
}

func (r *fakeInterviewRepo) FindByCandidate(candidateID string) ([]models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Interview
	for _, iv := range r.items {
		if iv.CandidateID == candidateID {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) FindByRecruiter(recruiterID string) ([]models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Interview
	for _, iv := range r.items {
		if iv.RecruiterID == recruiterID {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) UpdateStatus(id string, status models.InterviewStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.items[id]
	if !ok {
		return repositories.ErrInterviewNotFound
	}
	iv.Status = status
	return nil
}

func (r *fakeInterviewRepo) FindUpcomingAccepted(from, to time.Time) ([]models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Interview
	for _, iv := range r.items {
		if iv.Status == models.InterviewStatusAccepted &&
			!iv.ScheduledAt.Before(from) && iv.ScheduledAt.Before(to) {
			out = append(out, *iv)
		}
	}
	return out, nil
}

type fakeJobRepo struct {
	items map[string]*models.Job
}

func newFakeJobRepo(jobs ...*models.Job) *fakeJobRepo {
	r := &fakeJobRepo{items: make(map[string]*models.Job)}
	for _, j := range jobs {
		if j.ID == "" {
			j.ID = uuid.NewString()
		}
		r.items[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) CreateJob(j *models.Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	r.items[j.ID] = j
	return nil
}

func (r *fakeJobRepo) FindJobByID(id string) (*models.Job, error) {
	if j, ok := r.items[id]; ok {
		return j, nil
	}
	return nil, repositories.ErrJobNotFound
}

func (r *fakeJobRepo) FindByRecruiterID(recruiterID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.items {
		if j.RecruiterID == recruiterID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListOpenJobs() ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.items {
		if j.Status == models.JobStatusOpen {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) UpdateStatus(id string, status models.JobStatus) error {
	j, ok := r.items[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.Status = status
	return nil
}

func (r *fakeJobRepo) DeleteJob(id string) error {
	if _, ok := r.items[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeFeedbackRepo struct {
	items map[string]*models.Feedback
}

func newFakeFeedbackRepo(feedbacks ...*models.Feedback) *fakeFeedbackRepo {
	r := &fakeFeedbackRepo{items: make(map[string]*models.Feedback)}
	for _, fb := range feedbacks {
		if fb.ID == "" {
			fb.ID = uuid.NewString()
		}
		r.items[fb.ID] = fb
	}
	return r
}

func (r *fakeFeedbackRepo) CreateFeedback(fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	r.items[fb.ID] = fb
	return nil
}

func (r *fakeFeedbackRepo) FindFeedbackByID(id string) (*models.Feedback, error) {
	if fb, ok := r.items[id]; ok {
		return fb, nil
	}
	return nil, repositories.ErrFeedbackNotFound
}

func (r *fakeFeedbackRepo) FindByInterviewID(interviewID string) (*models.Feedback, error) {
	for _, fb := range r.items {
		if fb.InterviewID == interviewID {
			return fb, nil
		}
	}
	return nil, repositories.ErrFeedbackNotFound
}

func (r *fakeFeedbackRepo) SetShared(id string, shared bool) error {
	fb, ok := r.items[id]
	if !ok {
		return repositories.ErrFeedbackNotFound
	}
	fb.IsShared = shared
	return nil
}

type notifierCall struct {
	Method    string
	Interview *models.Interview
	Actor     models.UserRole
}

// recordingNotifier captures translator invocations so workflow tests can
// assert that notification dispatch was attempted without exercising the
// real translators.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
	fail  error
}

func (n *recordingNotifier) record(call notifierCall) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, call)
}

func (n *recordingNotifier) NotifyInterviewRequested(interview *models.Interview) (*dto.NotificationResponse, error) {
	n.record(notifierCall{Method: "requested", Interview: interview})
	return nil, n.fail
}

func (n *recordingNotifier) NotifyInterviewStatus(interview *models.Interview, actor models.UserRole) (*dto.NotificationResponse, error) {
	n.record(notifierCall{Method: "status", Interview: interview, Actor: actor})
	return nil, n.fail
}

func (n *recordingNotifier) NotifyFeedbackShared(feedback *models.Feedback, interview *models.Interview) (*dto.NotificationResponse, error) {
	n.record(notifierCall{Method: "feedback", Interview: interview})
	return nil, n.fail
}

func (n *recordingNotifier) NotifyInterviewReminder(interview *models.Interview) error {
	n.record(notifierCall{Method: "reminder", Interview: interview})
	return n.fail
}

func (n *recordingNotifier) byMethod(method string) []notifierCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notifierCall
	for _, c := range n.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}
