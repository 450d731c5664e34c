package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Signs and verifies admin tokens.
	JWTSecret string

	HealthHandler gin.HandlerFunc

	// Booking endpoints
	StartSession    gin.HandlerFunc
	GetSession      gin.HandlerFunc
	EndSession      gin.HandlerFunc
	UpdateSession   gin.HandlerFunc
	AvailableSlots  gin.HandlerFunc
	SubmitBooking   gin.HandlerFunc
	ConfirmPayment  gin.HandlerFunc
	BackToSelecting gin.HandlerFunc
	BookAnother     gin.HandlerFunc
	GetReceipt      gin.HandlerFunc

	// Catalog endpoints
	GetCatalog gin.HandlerFunc
	GetPricing gin.HandlerFunc

	// Chat and tracking endpoints
	ChatReply        gin.HandlerFunc
	ChatQuickReplies gin.HandlerFunc
	TrackingStream   gin.HandlerFunc

	// Subscription endpoints, nil when subscriptions are not offered
	SubscriptionHandler *SubscriptionHandler

	// Admin endpoints
	AdminHandler *AdminHandler
}

// NewHandlerBundle wires the handler methods into a bundle.
func NewHandlerBundle(bh *BookingHandler, ch *ChatHandler, th *TrackingHandler, sh *SubscriptionHandler, ah *AdminHandler, jwtSecret string) *HandlerBundle {
	return &HandlerBundle{
		JWTSecret:     jwtSecret,
		HealthHandler: Health,

		StartSession:    bh.StartSession,
		GetSession:      bh.GetSession,
		EndSession:      bh.EndSession,
		UpdateSession:   bh.UpdateSession,
		AvailableSlots:  bh.AvailableSlots,
		SubmitBooking:   bh.Submit,
		ConfirmPayment:  bh.ConfirmPayment,
		BackToSelecting: bh.Back,
		BookAnother:     bh.BookAnother,
		GetReceipt:      bh.Receipt,

		GetCatalog: bh.GetCatalog,
		GetPricing: bh.GetPricing,

		ChatReply:        ch.Reply,
		ChatQuickReplies: ch.QuickReplies,
		TrackingStream:   th.Stream,

		SubscriptionHandler: sh,
		AdminHandler:        ah,
	}
}
