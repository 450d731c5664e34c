package models

import "time"

const RoleAdmin = "admin"

// AdminLogin is the body of POST /api/admin/login.
type AdminLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminSession is returned on a successful admin login.
type AdminSession struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AssignDriverRequest is the body of PUT /api/admin/bookings/:id/assign-driver.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
}

// UpdateStatusRequest is the body of PUT /api/admin/bookings/:id/update-status.
type UpdateStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}
