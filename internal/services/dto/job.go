package dto

type CreateJobRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}
