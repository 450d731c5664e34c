package receipt

import (
	"fmt"
	"io"

	"infinitewash/models"

	"github.com/jung-kurt/gofpdf"
)

const businessName = "Infinite Mobile Carwash & Detailing"

// Render writes a one-page PDF receipt for a confirmed booking.
func Render(w io.Writer, c models.BookingConfirmation) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Booking receipt", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, tr(businessName))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		if value == "" {
			return
		}
		pdf.CellFormat(55, 8, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(135, 8, tr(value), "", 1, "L", false, 0, "")
	}

	req := c.Request
	line("Booking reference:", c.BookingID)
	line("Confirmed at:", c.ConfirmedAt.Format("2006-01-02 15:04"))
	line("Customer:", req.Customer.Name)
	line("Email:", req.Customer.Email)
	line("Phone:", req.Customer.Phone)
	line("Service:", c.ServiceName)
	line("Vehicle:", req.VehicleType.DisplayName())
	line("Location:", req.ServiceLocation.DisplayName())
	if req.ServiceLocation == models.LocationMobile {
		line("Address:", req.Customer.Address+" "+req.Customer.Postcode)
	}
	line("Date:", req.Date)
	line("Time:", req.Time)
	line("Special requests:", req.SpecialRequests)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	line("Total:", fmt.Sprintf("£%.2f", c.Pricing.BasePrice))
	if c.Pricing.Deposit > 0 {
		line("Deposit paid:", fmt.Sprintf("£%.2f (%d%%)", c.Pricing.Deposit, c.Pricing.DepositPercentage))
		line("Balance due:", fmt.Sprintf("£%.2f", c.Pricing.BasePrice-c.Pricing.Deposit))
		line("Payment reference:", c.PaymentIntentID)
	}

	return pdf.Output(w)
}
