package models

// Frequency is how often a subscribed vehicle is serviced.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi_weekly"
	FrequencyMonthly  Frequency = "monthly"
)

var frequencyTerms = map[Frequency]struct {
	perMonth int
	discount int
}{
	FrequencyWeekly:   {perMonth: 4, discount: 15},
	FrequencyBiWeekly: {perMonth: 2, discount: 10},
	FrequencyMonthly:  {perMonth: 1, discount: 0},
}

func (f Frequency) Valid() bool {
	_, ok := frequencyTerms[f]
	return ok
}

// ServicesPerMonth is the number of visits billed each month.
func (f Frequency) ServicesPerMonth() int { return frequencyTerms[f].perMonth }

// DiscountPercent is taken off the per-visit price.
func (f Frequency) DiscountPercent() int { return frequencyTerms[f].discount }

// SubscriptionPlan is a recurring version of a catalog service.
type SubscriptionPlan struct {
	PlanID           string                                `json:"plan_id"`
	Name             string                                `json:"name"`
	Description      string                                `json:"description"`
	DurationLabel    string                                `json:"duration"`
	Features         []string                              `json:"features"`
	BasePrice        float64                               `json:"base_price"`
	IsPremium        bool                                  `json:"is_premium"`
	FrequencyOptions []Frequency                           `json:"frequency_options"`
	ServicePrices    map[VehicleType]float64               `json:"service_prices"`
	PricingExamples  map[VehicleType]map[Frequency]float64 `json:"pricing_examples"`
}

// SubscriptionQuote is the monthly price of a plan for one vehicle and frequency.
type SubscriptionQuote struct {
	PlanID           string      `json:"plan_id"`
	PlanName         string      `json:"plan_name"`
	VehicleType      VehicleType `json:"vehicle_type"`
	Frequency        Frequency   `json:"frequency"`
	ServicesPerMonth int         `json:"services_per_month"`
	PricePerService  float64     `json:"price_per_service"`
	DiscountPercent  int         `json:"discount_percent"`
	MonthlyPrice     float64     `json:"monthly_price"`
}

// SubscriptionRequest is the subscription form. Notification fields default when omitted.
type SubscriptionRequest struct {
	PlanID                string      `json:"plan_id" validate:"required"`
	VehicleType           VehicleType `json:"vehicle_type" validate:"required"`
	Frequency             Frequency   `json:"frequency" validate:"required"`
	CustomerName          string      `json:"customer_name" validate:"required"`
	CustomerEmail         string      `json:"customer_email" validate:"required,email"`
	CustomerPhone         string      `json:"customer_phone" validate:"required"`
	Address               string      `json:"address" validate:"required"`
	Postcode              string      `json:"postcode" validate:"required"`
	PreferredDay          string      `json:"preferred_day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	PreferredTime         string      `json:"preferred_time" validate:"required"`
	StartDate             string      `json:"start_date" validate:"required"` // YYYY-MM-DD
	SpecialRequests       string      `json:"special_requests,omitempty"`
	NotificationEmail     *bool       `json:"notification_email,omitempty"`
	NotificationSMS       *bool       `json:"notification_sms,omitempty"`
	NotificationDaysAhead *int        `json:"notification_days_ahead,omitempty" validate:"omitempty,min=0,max=14"`
}

// SubscriptionSubmission is the create-subscription payload the backend expects.
type SubscriptionSubmission struct {
	PlanID                string    `json:"plan_id"`
	VehicleType           string    `json:"vehicle_type"`
	Frequency             Frequency `json:"frequency"`
	ServiceLocation       string    `json:"service_location"`
	CustomerName          string    `json:"customer_name"`
	CustomerEmail         string    `json:"customer_email"`
	CustomerPhone         string    `json:"customer_phone"`
	Address               string    `json:"address"`
	Postcode              string    `json:"postcode"`
	PreferredDay          string    `json:"preferred_day"`
	PreferredTime         string    `json:"preferred_time"`
	StartDate             string    `json:"start_date"`
	SpecialRequests       string    `json:"special_requests"`
	NotificationEmail     bool      `json:"notification_email"`
	NotificationSMS       bool      `json:"notification_sms"`
	NotificationDaysAhead int       `json:"notification_days_ahead"`
	MonthlyPrice          float64   `json:"monthly_price"`
}

type SubscriptionAck struct {
	Success        bool   `json:"success"`
	SubscriptionID string `json:"subscription_id"`
	Error          string `json:"error,omitempty"`
}

// SubscriptionConfirmation is returned to the client once the backend accepted a subscription.
type SubscriptionConfirmation struct {
	SubscriptionID string            `json:"subscription_id"`
	Quote          SubscriptionQuote `json:"quote"`
}

// CheckoutSession summarises a completed hosted checkout for the success page.
type CheckoutSession struct {
	ServiceName   string  `json:"service_name"`
	Amount        float64 `json:"amount"`
	Frequency     string  `json:"frequency"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
}

// NewsletterSignup is the body of the offers popup.
type NewsletterSignup struct {
	Email string `json:"email" binding:"required"`
}

type NewsletterAck struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
