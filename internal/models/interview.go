package models

import "time"

type InterviewStatus string

const (
	InterviewStatusPending   InterviewStatus = "pending"
	InterviewStatusAccepted  InterviewStatus = "accepted"
	InterviewStatusRejected  InterviewStatus = "rejected"
	InterviewStatusCancelled InterviewStatus = "cancelled"
	InterviewStatusCompleted InterviewStatus = "completed"
)

// Interview carries denormalized PositionTitle so notification and email
// text can be built without loading the job.
type Interview struct {
	BaseModel
	// JobID is nil for ad-hoc interviews created without a posted job.
	JobID           *string         `gorm:"type:uuid;index" json:"job_id,omitempty"`
	CandidateID     string          `gorm:"type:uuid;not null;index" json:"candidate_id"`
	RecruiterID     string          `gorm:"type:uuid;not null;index" json:"recruiter_id"`
	PositionTitle   string          `gorm:"not null" json:"position_title"`
	ScheduledAt     time.Time       `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes int             `gorm:"default:30" json:"duration_minutes"`
	Notes           string          `json:"notes"`
	Status          InterviewStatus `gorm:"default:pending;index" json:"status"`

	Candidate *Candidate `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	Recruiter *Recruiter `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
}

// ValidInterviewStatus reports whether s is a known interview status.
func ValidInterviewStatus(s InterviewStatus) bool {
	switch s {
	case InterviewStatusPending, InterviewStatusAccepted, InterviewStatusRejected,
		InterviewStatusCancelled, InterviewStatusCompleted:
		return true
	}
	return false
}
