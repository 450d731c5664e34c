package models

// ReminderPayload is queued for delivery a day ahead of a booked slot.
type ReminderPayload struct {
	BookingID     string `json:"bookingId"`
	SessionID     string `json:"sessionId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	ServiceName   string `json:"serviceName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
