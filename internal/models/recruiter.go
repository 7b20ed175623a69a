package models

// Recruiter is a hiring-side profile. Same UserID linkage rules as
// Candidate: no link means no targeted realtime delivery.
type Recruiter struct {
	BaseModel
	UserID   string `gorm:"type:uuid;index" json:"user_id"`
	FullName string `gorm:"not null" json:"full_name"`
	Email    string `gorm:"index" json:"email"`
	Company  string `json:"company"`
}
