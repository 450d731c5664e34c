package handlers

import (
	"bytes"
	"context"
	"net/http"

	"infinitewash/models"
	"infinitewash/services/apperror"
	"infinitewash/services/booking"
	"infinitewash/services/receipt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the customer booking flow.
type BookingHandler struct {
	BookingSvc booking.BookingService
	Logger     *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{BookingSvc: svc, Logger: logger}
}

type confirmPaymentBody struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// StartSession handles POST /api/booking/session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	session, err := h.BookingSvc.StartSession(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /api/booking/session/:id.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.BookingSvc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// EndSession handles DELETE /api/booking/session/:id.
func (h *BookingHandler) EndSession(c *gin.Context) {
	if err := h.BookingSvc.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSession handles PATCH /api/booking/session/:id with partial form fields.
func (h *BookingHandler) UpdateSession(c *gin.Context) {
	var patch models.BookingRequestPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.BookingSvc.UpdateRequest(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// AvailableSlots handles GET /api/booking/session/:id/slots?date=YYYY-MM-DD.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.BookingSvc.AvailableSlots(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// Submit handles POST /api/booking/session/:id/submit.
func (h *BookingHandler) Submit(c *gin.Context) {
	h.advance(c, h.BookingSvc.Submit)
}

// ConfirmPayment handles POST /api/booking/session/:id/payment/confirm.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	var body confirmPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.BookingSvc.ConfirmPayment(c.Request.Context(), c.Param("id"), body.PaymentIntentID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Back handles POST /api/booking/session/:id/back.
func (h *BookingHandler) Back(c *gin.Context) {
	h.advance(c, h.BookingSvc.Back)
}

// BookAnother handles POST /api/booking/session/:id/book-another.
func (h *BookingHandler) BookAnother(c *gin.Context) {
	h.advance(c, h.BookingSvc.BookAnother)
}

func (h *BookingHandler) advance(c *gin.Context, step func(ctx context.Context, id string) (*models.BookingSession, error)) {
	session, err := step(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Receipt handles GET /api/booking/session/:id/receipt and streams a PDF.
func (h *BookingHandler) Receipt(c *gin.Context) {
	session, err := h.BookingSvc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if session.Step != models.StepConfirmed || session.Confirmation == nil {
		respondError(c, h.Logger, apperror.NewInvalidTransition("no confirmed booking to print a receipt for"))
		return
	}

	var buf bytes.Buffer
	if err := receipt.Render(&buf, *session.Confirmation); err != nil {
		h.Logger.Error("failed to render receipt", zap.String("sessionID", session.SessionID), zap.Error(err))
		respondError(c, h.Logger, err)
		return
	}
	name := "receipt-" + session.Confirmation.BookingID + ".pdf"
	if session.Confirmation.BookingID == "" {
		name = "receipt.pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
