package ledger

// Action is the settlement action available for a review entry, derived
// entirely from (is_paid, review_count, paid_review_count).
type Action string

const (
	// ActionNone: already paid and the live count matches the settled count.
	ActionNone Action = "none"
	// ActionMarkPaid: never settled before.
	ActionMarkPaid Action = "mark_paid"
	// ActionPayAdjustment: settled, but the live count has grown since.
	ActionPayAdjustment Action = "pay_adjustment"
	// ActionSettleOverpay: settled, but the live count has dropped since.
	ActionSettleOverpay Action = "settle_overpay"
)

// EntryCounts is the slice of a review entry the ledger cares about.
type EntryCounts struct {
	IsPaid          bool
	ReviewCount     int64
	PaidReviewCount int64
}

// Classify returns the one settlement action available for an entry.
func Classify(e EntryCounts) Action {
	if !e.IsPaid {
		return ActionMarkPaid
	}
	switch {
	case e.ReviewCount > e.PaidReviewCount:
		return ActionPayAdjustment
	case e.ReviewCount < e.PaidReviewCount:
		return ActionSettleOverpay
	default:
		return ActionNone
	}
}

// Delta is the outstanding adjustment: positive means reviews accrued since
// the last settlement, negative means the count dropped after payment.
// Unpaid entries carry no adjustment.
func Delta(e EntryCounts) int64 {
	if !e.IsPaid {
		return 0
	}
	return e.ReviewCount - e.PaidReviewCount
}

// DisplayDelta reports the signed difference shown next to the live count.
// Entries settled at zero get no badge even though they may owe an
// adjustment; that asymmetry is deliberate and mirrors the row rendering.
func DisplayDelta(e EntryCounts) (int64, bool) {
	if !e.IsPaid || e.PaidReviewCount <= 0 {
		return 0, false
	}
	d := e.ReviewCount - e.PaidReviewCount
	return d, d != 0
}

// Settle applies the settlement transition: whatever the action was, the
// entry ends paid with the settled count raised (or lowered) to the live
// count. Calling it on an ActionNone entry is a no-op.
func Settle(e EntryCounts) EntryCounts {
	e.IsPaid = true
	e.PaidReviewCount = e.ReviewCount
	return e
}

// Totals are the aggregate statistics for one filtered ledger scope.
type Totals struct {
	TotalBusiness        int64 `json:"total_business"`
	TotalReviewCount     int64 `json:"total_review_count"`
	TotalPaidReviewCount int64 `json:"total_paid_review_count"`
	// TotalPaidReviewCountLocked is the settled baseline: the amount
	// actually disbursed, unaffected by count drift after payment.
	TotalPaidReviewCountLocked int64 `json:"total_paid_review_count_locked"`
	TotalPendingReviewCount    int64 `json:"total_pending_review_count"`
	TotalPaidBusiness          int64 `json:"total_paid_business"`
	AdjustmentUnpaid           int64 `json:"adjustment_unpaid"`
	AdjustmentExtraPaid        int64 `json:"adjustment_extra_paid"`
}

// Summarize folds a scope's entries into its Totals. An empty scope yields
// zero-filled totals, never an error.
func Summarize(entries []EntryCounts) Totals {
	var t Totals
	for _, e := range entries {
		t.TotalBusiness++
		t.TotalReviewCount += e.ReviewCount
		if !e.IsPaid {
			t.TotalPendingReviewCount += e.ReviewCount
			continue
		}
		t.TotalPaidBusiness++
		t.TotalPaidReviewCount += e.ReviewCount
		t.TotalPaidReviewCountLocked += e.PaidReviewCount
		if d := e.ReviewCount - e.PaidReviewCount; d > 0 {
			t.AdjustmentUnpaid += d
		} else {
			t.AdjustmentExtraPaid += -d
		}
	}
	return t
}
