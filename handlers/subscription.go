package handlers

import (
	"net/http"

	"infinitewash/models"
	"infinitewash/services/subscription"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscriptionHandler serves recurring plans and the offers mailing list.
type SubscriptionHandler struct {
	SubscriptionSvc subscription.SubscriptionService
	Logger          *zap.Logger
}

func NewSubscriptionHandler(svc subscription.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{SubscriptionSvc: svc, Logger: logger}
}

// Plans handles GET /api/subscriptions/plans.
func (sh *SubscriptionHandler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"plans":       sh.SubscriptionSvc.Plans(),
		"timeSlots":   subscription.VisitSlots(),
		"frequencies": frequencyOptions(),
	})
}

// Quote handles GET /api/subscriptions/quote?plan_id=&vehicle_type=&frequency=.
func (sh *SubscriptionHandler) Quote(c *gin.Context) {
	q, err := sh.SubscriptionSvc.Quote(c.Query("plan_id"),
		models.VehicleType(c.Query("vehicle_type")),
		models.Frequency(c.Query("frequency")))
	if err != nil {
		respondError(c, sh.Logger, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (sh *SubscriptionHandler) Create(c *gin.Context) {
	var req models.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	conf, err := sh.SubscriptionSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, sh.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, conf)
}

// CheckoutSession handles GET /api/subscriptions/checkout/:sessionId.
func (sh *SubscriptionHandler) CheckoutSession(c *gin.Context) {
	session, err := sh.SubscriptionSvc.CheckoutSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, sh.Logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Newsletter handles POST /api/subscribe.
func (sh *SubscriptionHandler) Newsletter(c *gin.Context) {
	var body models.NewsletterSignup
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	ack, err := sh.SubscriptionSvc.SubscribeNewsletter(c.Request.Context(), body.Email)
	if err != nil {
		respondError(c, sh.Logger, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func frequencyOptions() []gin.H {
	freqs := []models.Frequency{models.FrequencyWeekly, models.FrequencyBiWeekly, models.FrequencyMonthly}
	out := make([]gin.H, 0, len(freqs))
	for _, f := range freqs {
		out = append(out, gin.H{
			"id":                 f,
			"services_per_month": f.ServicesPerMonth(),
			"discount_percent":   f.DiscountPercent(),
		})
	}
	return out
}
