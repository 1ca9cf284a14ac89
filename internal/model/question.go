package model

import "time"

// Question is a question-bank entry. The bank is stored in PostgreSQL and is
// read-only from the engine's point of view.
type Question struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Phase      Phase     `json:"phase"`
	Competency string    `json:"competency"`
	Difficulty int       `json:"difficulty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
