package models

import "time"

// MetricsSummary is the aggregated view of a project's sales and ad
// spend over a period.
type MetricsSummary struct {
	ProjectID   string    `json:"project_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Revenue     float64   `json:"revenue"`
	SalesCount  int       `json:"sales_count"`
	AdSpend     float64   `json:"ad_spend"`
	Profit      float64   `json:"profit"`
	ROAS        float64   `json:"roas"` // revenue / ad spend, 0 when no spend
}

// DailyReport is a per-day roll-up of a project's revenue and spend.
type DailyReport struct {
	ID         int       `json:"id"`
	ProjectID  string    `json:"project_id"`
	ReportDate time.Time `json:"report_date"`
	Revenue    float64   `json:"revenue"`
	SalesCount int       `json:"sales_count"`
	AdSpend    float64   `json:"ad_spend"`
}

// PixelEvent is a client-side tracking event forwarded to the event sink.
type PixelEvent struct {
	Name       string         `json:"name" validate:"required"`
	ProjectID  string         `json:"project_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}
