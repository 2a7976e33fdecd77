package client

import (
	"time"

	"revtrack/internal/ledger"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	TotalReviews int64      `json:"total_reviews"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Business struct {
	ID           int64     `json:"id"`
	BusinessName string    `json:"business_name"`
	Location     string    `json:"location"`
	ShortCode    string    `json:"short_code"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Review struct {
	ID               int64         `json:"id"`
	BusinessID       int64         `json:"business_id"`
	UserID           int64         `json:"user_id"`
	ReviewDate       time.Time     `json:"review_date"`
	ReviewCount      int64         `json:"review_count"`
	ReviewLink       []string      `json:"review_link"`
	IsPaid           bool          `json:"is_paid"`
	PaidReviewCount  int64         `json:"paid_review_count"`
	PaidAt           *time.Time    `json:"paid_at,omitempty"`
	Business         *Business     `json:"business,omitempty"`
	SettlementAction ledger.Action `json:"settlement_action"`
	AdjustmentDelta  int64         `json:"adjustment_delta"`
}

// LedgerPage is one page of a user's scope with the window-wide totals.
type LedgerPage struct {
	Data []Review `json:"data"`
	ledger.Totals
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Stats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalBusinesses int64 `json:"total_businesses"`
	TotalEntries    int64 `json:"total_entries"`
	TotalReviews    int64 `json:"total_review_count"`
	TotalPaid       int64 `json:"total_paid_review_count"`
	TotalPending    int64 `json:"total_pending_review_count"`
}

type ReviewInput struct {
	BusinessID  int64    `json:"business_id"`
	ReviewDate  string   `json:"review_date"`
	ReviewCount int64    `json:"review_count"`
	ReviewLink  []string `json:"review_link"`
}

type BusinessInput struct {
	BusinessName string `json:"business_name"`
	Location     string `json:"location,omitempty"`
	ShortCode    string `json:"short_code,omitempty"`
}

// Filter selects the time window for ledger reads. Zero value means "all".
type Filter struct {
	Type      string
	StartDate string
	EndDate   string
}

func (f Filter) validate() error {
	if f.Type == "custom" && (f.StartDate == "" || f.EndDate == "") {
		return validationError("custom filter requires both startDate and endDate")
	}
	return nil
}

// Scope names whose entries a ledger read covers.
type Scope struct {
	userID int64
	self   bool
}

// Self scopes reads to the signed-in user.
func Self() Scope { return Scope{self: true} }

// ForUser scopes reads to another user's entries. Requires the admin role.
func ForUser(id int64) Scope { return Scope{userID: id} }
