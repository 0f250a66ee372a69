package dto

// SubmitStoryRequest is the multi-step form payload. The free-text answer
// arrives as aiUsage and maps onto the story column.
type SubmitStoryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	School  string `json:"school"`
	Grades  string `json:"grades"`
	Role    string `json:"role"`
	AIUsage string `json:"aiUsage" validate:"required"`
}

// LegacySubmitStoryRequest is the original single-page form payload, kept for
// the /api/submit-story route. It carries the story text under its own name.
type LegacySubmitStoryRequest struct {
	Story  string `json:"story" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	School string `json:"school"`
}
