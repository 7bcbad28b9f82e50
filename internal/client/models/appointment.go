package models

import "time"

// Appointment is a booking confirmed by the server.
type Appointment struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	User string    `json:"user"`
}
