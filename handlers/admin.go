package handlers

import (
	"net/http"

	"infinitewash/models"
	"infinitewash/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates dashboard operations.
type AdminHandler struct {
	AdminSvc admin.AdminService
	Logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc admin.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{AdminSvc: svc, Logger: logger}
}

// Login handles POST /api/admin/login.
func (ah *AdminHandler) Login(c *gin.Context) {
	var body models.AdminLogin
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := ah.AdminSvc.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ah *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := ah.AdminSvc.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ah *AdminHandler) DriverStats(c *gin.Context) {
	stats, err := ah.AdminSvc.DriverStats(c.Request.Context())
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListCustomers handles GET /api/admin/customers.
func (ah *AdminHandler) ListCustomers(c *gin.Context) {
	customers, err := ah.AdminSvc.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers, "total": len(customers)})
}

func (ah *AdminHandler) ListDrivers(c *gin.Context) {
	drivers, err := ah.AdminSvc.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (ah *AdminHandler) CreateDriver(c *gin.Context) {
	var input models.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	driver, err := ah.AdminSvc.CreateDriver(c.Request.Context(), input)
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func (ah *AdminHandler) GetDriver(c *gin.Context) {
	driver, err := ah.AdminSvc.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (ah *AdminHandler) UpdateDriver(c *gin.Context) {
	var input models.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	driver, err := ah.AdminSvc.UpdateDriver(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (ah *AdminHandler) DeleteDriver(c *gin.Context) {
	if err := ah.AdminSvc.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBookings handles GET /api/admin/bookings?status=&date=.
func (ah *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := ah.AdminSvc.ListBookings(c.Request.Context(), models.BookingStatus(c.Query("status")), c.Query("date"))
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ah *AdminHandler) AssignDriver(c *gin.Context) {
	var body models.AssignDriverRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	record, err := ah.AdminSvc.AssignDriver(c.Request.Context(), c.Param("id"), body.DriverID)
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (ah *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	var body models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	record, err := ah.AdminSvc.UpdateBookingStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, ah.Logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
