package models

// BookingSubmission is the body of POST /api/book and the booking_data sent on payment confirmation.
type BookingSubmission struct {
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
	ServiceType     string  `json:"serviceType"`
	VehicleType     string  `json:"vehicleType"`
	ServiceDate     string  `json:"serviceDate"`
	ServiceTime     string  `json:"serviceTime"`
	ServiceLocation string  `json:"serviceLocation"`
	Address         string  `json:"address"`
	TotalAmount     float64 `json:"totalAmount"`
	DepositAmount   float64 `json:"depositAmount"`
	SpecialRequests string  `json:"specialRequests"`
}

// PaymentBookingData is the snake_case booking summary attached to a payment intent.
type PaymentBookingData struct {
	BookingID       string  `json:"booking_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	ServiceType     string  `json:"service_type"`
	VehicleType     string  `json:"vehicle_type"`
	ServiceDate     string  `json:"service_date"`
	ServiceTime     string  `json:"service_time"`
	ServiceLocation string  `json:"service_location"`
	Address         string  `json:"address"`
	TotalAmount     float64 `json:"total_amount"`
	SpecialRequests string  `json:"special_requests"`
}

// BookingAck is the reply of POST /api/book.
type BookingAck struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// PaymentIntentRequest asks a payment provider for a deposit intent.
type PaymentIntentRequest struct {
	AmountMinor int64              `json:"amount"`
	Currency    string             `json:"currency"`
	BookingData PaymentBookingData `json:"booking_data"`
}

// PaymentIntent is what the client SDK needs to collect card details.
type PaymentIntent struct {
	ID             string `json:"paymentIntentId,omitempty"`
	ClientSecret   string `json:"clientSecret"`
	PublishableKey string `json:"publishableKey"`
	AmountMinor    int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// PaymentConfirmation is the reply of POST /api/payment/confirm-payment.
type PaymentConfirmation struct {
	Success     bool                   `json:"success"`
	BookingID   string                 `json:"booking_id,omitempty"`
	BookingData map[string]interface{} `json:"booking_data,omitempty"`
	Message     string                 `json:"message,omitempty"`
}
