package handlers

import (
	"net/http"

	"infinitewash/models"
	"infinitewash/services/apperror"
	"infinitewash/services/booking"

	"github.com/gin-gonic/gin"
)

// GetCatalog handles GET /api/catalog.
func (h *BookingHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"catalog":      h.BookingSvc.Catalog(),
		"vehicleTypes": vehicleOptions(),
		"timeSlots":    booking.CanonicalSlots(),
	})
}

// GetPricing handles GET /api/pricing?vehicleType=&serviceId=.
// Unknown services price at zero, matching what the booking form shows.
func (h *BookingHandler) GetPricing(c *gin.Context) {
	vehicle := models.VehicleType(c.Query("vehicleType"))
	serviceID := c.Query("serviceId")
	if vehicle != "" && !vehicle.Valid() {
		respondError(c, h.Logger, apperror.NewValidation("Unknown vehicle type", "vehicleType"))
		return
	}
	c.JSON(http.StatusOK, booking.ComputePricing(vehicle, serviceID, h.BookingSvc.Catalog()))
}

func vehicleOptions() []gin.H {
	out := make([]gin.H, 0, len(models.VehicleTypes))
	for _, v := range models.VehicleTypes {
		out = append(out, gin.H{"id": v, "name": v.DisplayName()})
	}
	return out
}
