package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/internal/pkg/daterange"
)

const historyEventLimit = 200

// SummaryRow is one aggregated line of the sales table.
type SummaryRow struct {
	ProductName string
	Count       int64
	Total       string
}

// EventRow is one recent payment with its dispatch results.
type EventRow struct {
	ProductName string
	Customer    string
	Amount      string
	PaidAt      string
	Outcomes    []models.DispatchOutcome
}

// HandleHistory renders aggregated sales plus recent events for the selected
// date range.
func HandleHistory(c *fiber.Ctx) error {
	preset := c.Query("range", daterange.PresetAllTime)
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	now := time.Now()
	r := daterange.Resolve(preset, startDate, endDate, now)
	displayStart, displayEnd := daterange.DisplayStrings(preset, startDate, endDate, now)

	summaries, err := repos().Payment.Aggregate(r.Start, r.End)
	if err != nil {
		return flashError(c, "Could not load sales history", "/admin")
	}
	events, err := repos().Payment.ListByRange(r.Start, r.End, historyEventLimit)
	if err != nil {
		return flashError(c, "Could not load sales history", "/admin")
	}

	var grandTotal string
	rows := make([]SummaryRow, 0, len(summaries))
	totals := map[string]int64{}
	for _, s := range summaries {
		name := s.ProductName
		if name == "" {
			name = s.ProductID
		}
		rows = append(rows, SummaryRow{
			ProductName: name,
			Count:       s.Count,
			Total:       formatAmount(s.TotalAmount, s.Currency),
		})
		totals[s.Currency] += s.TotalAmount
	}
	if len(totals) == 1 {
		for cur, total := range totals {
			grandTotal = formatAmount(total, cur)
		}
	}

	eventRows := make([]EventRow, 0, len(events))
	for _, e := range events {
		name := e.ProductName
		if name == "" {
			name = e.ProductID
		}
		if name == "" {
			name = "(unmatched)"
		}
		customer := e.CustomerName
		if e.CustomerEmail != "" {
			if customer != "" {
				customer += " <" + e.CustomerEmail + ">"
			} else {
				customer = e.CustomerEmail
			}
		}
		eventRows = append(eventRows, EventRow{
			ProductName: name,
			Customer:    customer,
			Amount:      formatAmount(e.Amount, e.Currency),
			PaidAt:      time.Unix(e.PaidAt, 0).UTC().Format("2006-01-02 15:04"),
			Outcomes:    e.Outcomes(),
		})
	}

	return render(c, "history", fiber.Map{
		"Title":      "Sales history",
		"Summaries":  rows,
		"GrandTotal": grandTotal,
		"Events":     eventRows,
		"Preset":     preset,
		"Presets":    daterange.Options(),
		"RangeLabel": daterange.Label(preset),
		"StartDate":  displayStart,
		"EndDate":    displayEnd,
	})
}

func formatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(amount)/100, strings.ToUpper(currency))
}
