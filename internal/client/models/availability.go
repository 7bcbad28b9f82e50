package models

import "fmt"

// AvailabilitySlot marks one hour of a provider's day as bookable or not.
// Hours are unique within a single day-availability response.
type AvailabilitySlot struct {
	Hour      int  `json:"hour"`
	Available bool `json:"available"`
}

// Label renders the slot's hour as the UI shows it, e.g. "09:00".
func (s AvailabilitySlot) Label() string {
	return fmt.Sprintf("%02d:00", s.Hour)
}
