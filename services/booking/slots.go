package booking

import (
	"fmt"

	"infinitewash/models"
)

const (
	firstSlotHour = 8
	lastSlotHour  = 18
)

// CanonicalSlots returns the hourly slots "08:00" through "18:00".
func CanonicalSlots() []string {
	slots := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}
	return slots
}

// IsCanonicalSlot reports whether t is one of the bookable hourly slots.
func IsCanonicalSlot(t string) bool {
	for _, s := range CanonicalSlots() {
		if s == t {
			return true
		}
	}
	return false
}

// AvailableSlots returns the canonical slots for date that are not in booked, in ascending order.
func AvailableSlots(date string, booked models.BookedSlotSet) []string {
	all := CanonicalSlots()
	out := all[:0]
	for _, t := range all {
		if !booked.Contains(date, t) {
			out = append(out, t)
		}
	}
	return out
}
