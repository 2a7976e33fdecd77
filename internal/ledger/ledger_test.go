package ledger

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		entry EntryCounts
		want  Action
	}{
		{"unpaid entry", EntryCounts{IsPaid: false, ReviewCount: 50}, ActionMarkPaid},
		{"unpaid zero count", EntryCounts{IsPaid: false, ReviewCount: 0}, ActionMarkPaid},
		{"paid and settled", EntryCounts{IsPaid: true, ReviewCount: 50, PaidReviewCount: 50}, ActionNone},
		{"paid then incremented", EntryCounts{IsPaid: true, ReviewCount: 60, PaidReviewCount: 50}, ActionPayAdjustment},
		{"paid then decremented", EntryCounts{IsPaid: true, ReviewCount: 40, PaidReviewCount: 50}, ActionSettleOverpay},
		{"settled at zero then incremented", EntryCounts{IsPaid: true, ReviewCount: 5, PaidReviewCount: 0}, ActionPayAdjustment},
		{"paid at zero", EntryCounts{IsPaid: true, ReviewCount: 0, PaidReviewCount: 0}, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.entry); got != tt.want {
				t.Errorf("Classify(%+v) = %q, want %q", tt.entry, got, tt.want)
			}
		})
	}
}

// Classify must return exactly one of the four actions for any input.
func TestClassifyTotal(t *testing.T) {
	known := map[Action]bool{
		ActionNone:          true,
		ActionMarkPaid:      true,
		ActionPayAdjustment: true,
		ActionSettleOverpay: true,
	}
	for _, paid := range []bool{false, true} {
		for count := int64(-1); count <= 2; count++ {
			for settled := int64(-1); settled <= 2; settled++ {
				got := Classify(EntryCounts{IsPaid: paid, ReviewCount: count, PaidReviewCount: settled})
				if !known[got] {
					t.Fatalf("Classify(paid=%v, count=%d, settled=%d) = %q, not a known action", paid, count, settled, got)
				}
			}
		}
	}
}

func TestSettleMarkPaid(t *testing.T) {
	// First-time settlement records the live count as paid.
	got := Settle(EntryCounts{IsPaid: false, ReviewCount: 50})
	if !got.IsPaid || got.PaidReviewCount != 50 {
		t.Errorf("Settle = %+v, want paid with settled count 50", got)
	}
	if Classify(got) != ActionNone {
		t.Errorf("entry should classify as none after settle, got %q", Classify(got))
	}
}

func TestSettlePayAdjustment(t *testing.T) {
	e := EntryCounts{IsPaid: true, ReviewCount: 60, PaidReviewCount: 50}
	if d, ok := DisplayDelta(e); !ok || d != 10 {
		t.Errorf("DisplayDelta = (%d, %v), want (10, true)", d, ok)
	}
	got := Settle(e)
	if got.PaidReviewCount != 60 {
		t.Errorf("settled count = %d, want 60", got.PaidReviewCount)
	}
}

func TestSettleOverpay(t *testing.T) {
	e := EntryCounts{IsPaid: true, ReviewCount: 40, PaidReviewCount: 50}
	if Classify(e) != ActionSettleOverpay {
		t.Fatalf("Classify = %q, want settle_overpay", Classify(e))
	}
	if d, ok := DisplayDelta(e); !ok || d != -10 {
		t.Errorf("DisplayDelta = (%d, %v), want (-10, true)", d, ok)
	}
	got := Settle(e)
	if got.PaidReviewCount != 40 {
		t.Errorf("settled count = %d, want 40", got.PaidReviewCount)
	}
}

func TestSettleIdempotent(t *testing.T) {
	e := EntryCounts{IsPaid: true, ReviewCount: 50, PaidReviewCount: 50}
	got := Settle(e)
	if got != e {
		t.Errorf("settling an already-settled entry changed it: %+v -> %+v", e, got)
	}
}

// Settled then drifted entries must classify by the sign of the delta.
func TestDeltaSignLaw(t *testing.T) {
	settled := Settle(EntryCounts{IsPaid: false, ReviewCount: 50})

	up := settled
	up.ReviewCount += 10
	if Classify(up) != ActionPayAdjustment {
		t.Errorf("incremented after settle: Classify = %q, want pay_adjustment", Classify(up))
	}
	if Delta(up) != 10 {
		t.Errorf("Delta = %d, want 10", Delta(up))
	}

	down := settled
	down.ReviewCount -= 10
	if Classify(down) != ActionSettleOverpay {
		t.Errorf("decremented after settle: Classify = %q, want settle_overpay", Classify(down))
	}
	if Delta(down) != -10 {
		t.Errorf("Delta = %d, want -10", Delta(down))
	}
}

func TestDeltaUnpaidIsZero(t *testing.T) {
	if d := Delta(EntryCounts{IsPaid: false, ReviewCount: 30, PaidReviewCount: 99}); d != 0 {
		t.Errorf("Delta on unpaid entry = %d, want 0", d)
	}
	if _, ok := DisplayDelta(EntryCounts{IsPaid: false, ReviewCount: 30}); ok {
		t.Error("DisplayDelta should not show a badge on unpaid entries")
	}
}

func TestSummarize(t *testing.T) {
	entries := []EntryCounts{
		{IsPaid: false, ReviewCount: 20},                          // pending
		{IsPaid: true, ReviewCount: 50, PaidReviewCount: 50},      // settled
		{IsPaid: true, ReviewCount: 60, PaidReviewCount: 50},      // +10 owed
		{IsPaid: true, ReviewCount: 40, PaidReviewCount: 50},      // -10 overpaid
		{IsPaid: true, ReviewCount: 7, PaidReviewCount: 0},        // settled at zero, +7 owed
		{IsPaid: false, ReviewCount: 0},                           // new entry
	}
	got := Summarize(entries)
	want := Totals{
		TotalBusiness:              6,
		TotalReviewCount:           177,
		TotalPaidReviewCount:       157,
		TotalPaidReviewCountLocked: 150,
		TotalPendingReviewCount:    20,
		TotalPaidBusiness:          4,
		AdjustmentUnpaid:           17,
		AdjustmentExtraPaid:        10,
	}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

// The aggregate laws: adjustment_unpaid is the sum of positive deltas,
// adjustment_extra_paid the sum of absolute negative deltas, and the live
// paid total equals the locked baseline adjusted by both.
func TestSummarizeAggregateLaws(t *testing.T) {
	entries := []EntryCounts{
		{IsPaid: true, ReviewCount: 12, PaidReviewCount: 10},
		{IsPaid: true, ReviewCount: 3, PaidReviewCount: 9},
		{IsPaid: true, ReviewCount: 5, PaidReviewCount: 5},
		{IsPaid: false, ReviewCount: 100},
	}
	t0 := Summarize(entries)

	var wantUnpaid, wantExtra int64
	for _, e := range entries {
		if d := Delta(e); d > 0 {
			wantUnpaid += d
		} else if d < 0 {
			wantExtra += -d
		}
	}
	if t0.AdjustmentUnpaid != wantUnpaid {
		t.Errorf("adjustment_unpaid = %d, want %d", t0.AdjustmentUnpaid, wantUnpaid)
	}
	if t0.AdjustmentExtraPaid != wantExtra {
		t.Errorf("adjustment_extra_paid = %d, want %d", t0.AdjustmentExtraPaid, wantExtra)
	}
	if got := t0.TotalPaidReviewCountLocked + t0.AdjustmentUnpaid - t0.AdjustmentExtraPaid; got != t0.TotalPaidReviewCount {
		t.Errorf("locked %d + unpaid %d - extra %d = %d, want live paid total %d",
			t0.TotalPaidReviewCountLocked, t0.AdjustmentUnpaid, t0.AdjustmentExtraPaid, got, t0.TotalPaidReviewCount)
	}
}

func TestSummarizeEmptyScope(t *testing.T) {
	if got := Summarize(nil); got != (Totals{}) {
		t.Errorf("empty scope should yield zero totals, got %+v", got)
	}
}
