package model

import "time"

// AllowanceSummary is derived on demand and never stored.
type AllowanceSummary struct {
	ChildID       string  `json:"child_id"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	BaseAllowance float64 `json:"base_allowance"`
	BonusTotal    float64 `json:"bonus_total"`
	Total         float64 `json:"total"`
}

// MonthlySummary is one row of the parent's monthly overview.
type MonthlySummary struct {
	ChildID       string  `json:"child_id"`
	BaseAllowance float64 `json:"base_allowance"`
	BonusTotal    float64 `json:"bonus_total"`
	Total         float64 `json:"total"`
}

// Payout is a closed-month summary recorded in the ledger.
type Payout struct {
	ID            int64     `json:"id"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	ChildID       string    `json:"child_id"`
	BaseAllowance float64   `json:"base_allowance"`
	BonusTotal    float64   `json:"bonus_total"`
	Total         float64   `json:"total"`
	ClosedBy      string    `json:"closed_by"`
	ClosedAt      time.Time `json:"closed_at"`
}
