package handlers

// AppHandlers holds every HTTP handler the router registers.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	InterviewHandler    *InterviewHandler
	FeedbackHandler     *FeedbackHandler
	NotificationHandler *NotificationHandler
}
