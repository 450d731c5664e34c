package chat

import (
	"strings"

	"infinitewash/models"
	"infinitewash/services/apperror"
)

const (
	Greeting = "Hello! I'm your virtual assistant for Infinite Mobile Carwash & Detailing. How can I help you today?"

	defaultReply = "I'd be happy to help! For specific questions about our services, pricing, or booking, please call us at 07403139086 or email infinitemobilecarwashdetailing@gmail.com. You can also browse our Services and Pricing pages for detailed information."
)

type cannedReply struct {
	key   string
	reply string
}

// Checked in order; the first key found in the message wins.
var cannedReplies = []cannedReply{
	{
		key:   "what services do you offer",
		reply: "We offer a comprehensive range of services including Car Wash (£7-£14), Mini Valet (£14-£20), Full Valet (£45-£70), Interior Detailing (£120), Exterior Detailing (£200), Full Detailing (£300), and Stage 1 & 2 Polishing (£400-£550). All services use our scratch-free, non-contact cleaning process.",
	},
	{
		key:   "how much does a full valet cost",
		reply: "Our Full Valet service costs £45 for small cars, £55 for medium cars, £65 for large cars, and £70 for vans. This includes complete exterior wash, interior deep clean, leather/fabric conditioning, and wheel arch cleaning.",
	},
	{
		key:   "do you come to my location",
		reply: "Yes! We're a mobile service that comes directly to your location - whether that's your home, office, or anywhere convenient for you in Derby and surrounding areas. You can also visit our unit if you prefer.",
	},
	{
		key:   "how do i book a service",
		reply: "You can book through our website booking system, call us at 07403139086, or send us an email at infinitemobilecarwashdetailing@gmail.com. Our booking system prevents double bookings and you can track your service in real-time.",
	},
	{
		key:   "what areas do you cover",
		reply: "We proudly serve Derby and its surrounding areas. If you're unsure whether we cover your specific location, please give us a call at 07403139086 and we'll confirm availability.",
	},
}

var quickReplies = []string{
	"What services do you offer?",
	"How much does a full valet cost?",
	"Do you come to my location?",
	"How do I book a service?",
	"What areas do you cover?",
}

// QuickReplies returns the suggested questions shown under the chat window.
func QuickReplies() []string {
	out := make([]string, len(quickReplies))
	copy(out, quickReplies)
	return out
}

// Reply answers a customer message with the first canned response whose key it contains.
func Reply(message string) (models.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return models.ChatReply{}, apperror.NewValidation("Message cannot be empty", "message")
	}
	lower := strings.ToLower(message)
	for _, c := range cannedReplies {
		if strings.Contains(lower, c.key) {
			return models.ChatReply{Reply: c.reply, Matched: c.key}, nil
		}
	}
	return models.ChatReply{Reply: defaultReply}, nil
}
