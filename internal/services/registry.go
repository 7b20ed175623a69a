package services

import (
	"hirelink_backend/internal/email"
)

// ServiceContainer holds every service the application wires at startup.
type ServiceContainer struct {
	AuthService         AuthService
	JobService          JobService
	InterviewService    InterviewService
	FeedbackService     FeedbackService
	NotificationService NotificationService
	NotifierService     NotifierService
	EmailProvider       email.Provider
}
