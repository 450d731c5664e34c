package subscription

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/now"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"

	// Every subscription visit is a mobile one.
	mobileService = "Mobile Service"

	defaultDaysAhead = 2
	firstVisitHour   = 8
	lastVisitHour    = 18
)

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

type DefaultSubscriptionService struct {
	Backend Backend
	Logger  *zap.Logger
	Now     func() time.Time

	plans []models.SubscriptionPlan
}

// NewService prices a plan for every service in catalog.
func NewService(backend Backend, catalog models.ServiceCatalog, logger *zap.Logger) *DefaultSubscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSubscriptionService{
		Backend: backend,
		Logger:  logger,
		plans:   BuildPlans(catalog),
	}
}

func (s *DefaultSubscriptionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultSubscriptionService) Plans() []models.SubscriptionPlan {
	return s.plans
}

func (s *DefaultSubscriptionService) Quote(planID string, vehicle models.VehicleType, frequency models.Frequency) (*models.SubscriptionQuote, error) {
	return quote(s.plans, planID, vehicle, frequency)
}

func (s *DefaultSubscriptionService) Create(ctx context.Context, req models.SubscriptionRequest) (*models.SubscriptionConfirmation, error) {
	req = normalized(req)
	if err := s.validate(req); err != nil {
		return nil, err
	}
	q, err := s.Quote(req.PlanID, req.VehicleType, req.Frequency)
	if err != nil {
		return nil, err
	}

	sub := submissionFor(req, q.MonthlyPrice)
	ack, err := s.Backend.CreateSubscription(ctx, sub)
	if err != nil {
		s.Logger.Warn("create subscription failed",
			zap.String("plan", req.PlanID),
			zap.String("frequency", string(req.Frequency)),
			zap.Error(err))
		return nil, err
	}
	s.Logger.Info("subscription created",
		zap.String("subscription_id", ack.SubscriptionID),
		zap.String("plan", q.PlanID),
		zap.String("frequency", string(q.Frequency)),
		zap.Float64("monthly_price", q.MonthlyPrice))
	return &models.SubscriptionConfirmation{SubscriptionID: ack.SubscriptionID, Quote: *q}, nil
}

func (s *DefaultSubscriptionService) validate(req models.SubscriptionRequest) error {
	if err := requestValidator.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperror.New(apperror.Validation, "invalid subscription request", err)
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return apperror.NewValidation("Please fill in: "+strings.Join(fields, ", "), fields...)
	}

	var invalid []string
	if !isVisitSlot(req.PreferredTime) {
		invalid = append(invalid, "preferred_time")
	}
	today := s.now()
	start, err := time.ParseInLocation(dateLayout, req.StartDate, today.Location())
	if err != nil || start.Before(now.With(today).BeginningOfDay()) {
		invalid = append(invalid, "start_date")
	}
	if len(invalid) > 0 {
		return apperror.NewValidation("Some subscription details are not valid", invalid...)
	}
	return nil
}

// VisitSlots are the hourly start times a subscriber can pick.
func VisitSlots() []string {
	slots := make([]string, 0, lastVisitHour-firstVisitHour+1)
	for hour := firstVisitHour; hour <= lastVisitHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}
	return slots
}

func isVisitSlot(t string) bool {
	for _, s := range VisitSlots() {
		if s == t {
			return true
		}
	}
	return false
}

func normalized(req models.SubscriptionRequest) models.SubscriptionRequest {
	req.PlanID = strings.TrimSpace(req.PlanID)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.Address = strings.TrimSpace(req.Address)
	req.Postcode = strings.ToUpper(strings.TrimSpace(req.Postcode))
	req.SpecialRequests = strings.TrimSpace(req.SpecialRequests)
	return req
}

func submissionFor(req models.SubscriptionRequest, monthly float64) models.SubscriptionSubmission {
	sub := models.SubscriptionSubmission{
		PlanID:                req.PlanID,
		VehicleType:           backendVehicle(req.VehicleType),
		Frequency:             req.Frequency,
		ServiceLocation:       mobileService,
		CustomerName:          req.CustomerName,
		CustomerEmail:         req.CustomerEmail,
		CustomerPhone:         req.CustomerPhone,
		Address:               req.Address,
		Postcode:              req.Postcode,
		PreferredDay:          req.PreferredDay,
		PreferredTime:         req.PreferredTime,
		StartDate:             req.StartDate,
		SpecialRequests:       req.SpecialRequests,
		NotificationEmail:     true,
		NotificationSMS:       true,
		NotificationDaysAhead: defaultDaysAhead,
		MonthlyPrice:          monthly,
	}
	if req.NotificationEmail != nil {
		sub.NotificationEmail = *req.NotificationEmail
	}
	if req.NotificationSMS != nil {
		sub.NotificationSMS = *req.NotificationSMS
	}
	if req.NotificationDaysAhead != nil {
		sub.NotificationDaysAhead = *req.NotificationDaysAhead
	}
	return sub
}

// backendVehicle names vehicle classes the way the subscription backend does: "small_car", "van".
func backendVehicle(v models.VehicleType) string {
	if v == models.VehicleVan {
		return string(v)
	}
	return string(v) + "_car"
}

func (s *DefaultSubscriptionService) CheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperror.NewValidation("Missing checkout session", "sessionId")
	}
	return s.Backend.CheckoutSession(ctx, sessionID)
}

func (s *DefaultSubscriptionService) SubscribeNewsletter(ctx context.Context, email string) (*models.NewsletterAck, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := requestValidator.Var(email, "required,email"); err != nil {
		return nil, apperror.NewValidation("Please enter a valid email address", "email")
	}
	return s.Backend.SubscribeNewsletter(ctx, email)
}
