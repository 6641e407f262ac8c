// Package invoice renders booking confirmation PDFs.
package invoice

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// Confirmation is everything printed on a booking confirmation.
type Confirmation struct {
	Title       string
	Shipment    model.Shipment
	Quote       model.Quote
	Offer       model.Offer
	Trader      model.User
	Partner     model.User
	GeneratedAt time.Time
}

// Filename is the download name for a shipment's confirmation.
func Filename(tracking string) string {
	return "booking-" + strings.ToLower(tracking) + ".pdf"
}

// Render writes the confirmation as a single-page A4 PDF.
func Render(w io.Writer, c Confirmation) error {
	title := c.Title
	if title == "" {
		title = "BidChemz Logistics"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(title+" booking "+c.Shipment.TrackingNumber, false)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 6, "Booking Confirmation")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Tracking number: "+c.Shipment.TrackingNumber)
	pdf.Ln(5)
	pdf.Cell(0, 6, "Quote reference: "+c.Quote.Reference)
	pdf.Ln(5)
	pdf.Cell(0, 6, "Booked on: "+c.Shipment.CreatedAt.Format("02 Jan 2006 15:04 MST"))
	pdf.Ln(10)

	section(pdf, "Route")
	row(pdf, "Pickup", c.Quote.PickupCity+", "+c.Quote.PickupRegion)
	row(pdf, "Delivery", c.Quote.DeliveryCity+", "+c.Quote.DeliveryRegion)
	row(pdf, "Pickup date", c.Quote.PickupDate.Format("02 Jan 2006"))
	row(pdf, "Transit", fmt.Sprintf("%d days", c.Offer.TransitDays))
	pdf.Ln(4)

	section(pdf, "Cargo")
	row(pdf, "Product", c.Quote.CargoName)
	if c.Quote.CASNumber != "" {
		row(pdf, "CAS number", c.Quote.CASNumber)
	}
	if c.Quote.UNNumber != "" {
		row(pdf, "UN number", c.Quote.UNNumber)
	}
	row(pdf, "Hazard class", hazardLabel(c.Quote.HazardClass))
	row(pdf, "Quantity", fmt.Sprintf("%g %s", c.Quote.Quantity, c.Quote.Unit))
	if c.Quote.TemperatureControlled {
		row(pdf, "Handling", "Temperature controlled")
	}
	pdf.Ln(4)

	section(pdf, "Parties")
	row(pdf, "Shipper", partyLabel(c.Trader))
	row(pdf, "Carrier", partyLabel(c.Partner))
	pdf.Ln(4)

	section(pdf, "Charges ("+c.Offer.Currency+")")
	row(pdf, "Freight", c.Offer.Price.Rupees())
	row(pdf, "Lead cost (carrier)", c.Offer.LeadCost.Rupees())

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated by "+title+" - "+c.GeneratedAt.Format(time.RFC3339), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf build failed: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, name string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 8, name, "1", 1, "L", true, 0, "")
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(55, 7, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "1", 1, "L", false, 0, "")
}

func hazardLabel(class int) string {
	if class == 0 {
		return "Non-hazardous"
	}
	return fmt.Sprintf("UN class %d", class)
}

func partyLabel(u model.User) string {
	if u.Company != "" {
		return u.Company + " (" + u.Name + ")"
	}
	return u.Name
}
