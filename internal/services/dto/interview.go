package dto

import "time"

type CreateInterviewRequest struct {
	JobID           string    `json:"job_id,omitempty"`
	CandidateID     string    `json:"candidate_id" validate:"required"`
	PositionTitle   string    `json:"position_title,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=480"`
	Notes           string    `json:"notes,omitempty"`
}

type UpdateInterviewStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected cancelled completed"`
}

type SubmitFeedbackRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comments string `json:"comments,omitempty"`
	IsShared bool   `json:"is_shared"`
}
