package models

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// Job postings are soft-deleted so interviews created against them keep
// a resolvable job reference.
type Job struct {
	BaseModelWithDeleted
	RecruiterID string    `gorm:"type:uuid;not null;index" json:"recruiter_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Status      JobStatus `gorm:"default:open" json:"status"`

	Recruiter *Recruiter `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
}
