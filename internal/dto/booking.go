package dto

// BookingRequest is the payload posted when the user confirms a slot.
type BookingRequest struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	School    string `json:"school"`
	Grades    string `json:"grades"`
	Role      string `json:"role"`
	AIUsage   string `json:"aiUsage"`
}
