package domain

import "time"

// Satisfaction records the reporter's review of a resolved ticket.
type Satisfaction struct {
	Rating            int       `json:"rating"`
	Comment           string    `json:"comment,omitempty"`
	IsProblemResolved bool      `json:"is_problem_resolved"`
	FilledAt          time.Time `json:"filled_at"`
}
