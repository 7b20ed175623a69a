package models

// Feedback is a recruiter's interview assessment. It only reaches the
// candidate once IsShared is set.
type Feedback struct {
	BaseModel
	InterviewID string `gorm:"type:uuid;not null;uniqueIndex" json:"interview_id"`
	Rating      int    `json:"rating"`
	Comments    string `json:"comments"`
	IsShared    bool   `gorm:"default:false" json:"is_shared"`

	Interview *Interview `gorm:"foreignKey:InterviewID" json:"interview,omitempty"`
}
