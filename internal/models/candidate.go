package models

// Candidate is a job seeker profile. UserID links the profile to its
// authentication identity; it may be empty for profiles created from
// parsed resumes before the person ever signs in, in which case the
// candidate cannot receive targeted realtime events.
type Candidate struct {
	BaseModel
	UserID   string `gorm:"type:uuid;index" json:"user_id"`
	FullName string `gorm:"not null" json:"full_name"`
	Email    string `gorm:"index" json:"email"`
	Phone    string `json:"phone"`
	Headline string `json:"headline"`
	Location string `json:"location"`
}
