package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"revtrack/internal/ledger"
	"revtrack/internal/mailer"
	"revtrack/internal/params"
	"revtrack/internal/store"
)

type reviewPayload struct {
	BusinessID  int64    `json:"business_id" validate:"required,gt=0"`
	ReviewDate  string   `json:"review_date" validate:"required,datetime=2006-01-02"`
	ReviewCount int64    `json:"review_count" validate:"gte=0"`
	ReviewLink  []string `json:"review_link" validate:"omitempty,dive,url"`
}

// ledgerRow is a review entry annotated with its derived settlement state.
// The annotation is never persisted; it is re-derived on every read.
type ledgerRow struct {
	store.ReviewEntry
	SettlementAction ledger.Action `json:"settlement_action"`
	AdjustmentDelta  int64         `json:"adjustment_delta"`
}

type ledgerResponse struct {
	Data []ledgerRow `json:"data"`
	ledger.Totals
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// createReviewHandler godoc
//
//	@Summary		Record a review entry
//	@Description	Creates an entry for a business/date owned by the caller
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		reviewPayload	true	"Entry attributes"
//	@Success		201		{object}	store.ReviewEntry
//	@Security		ApiKeyAuth
//	@Router			/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload reviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reviewDate, err := time.Parse("2006-01-02", payload.ReviewDate)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review_date, expected YYYY-MM-DD"))
		return
	}

	user := getUserFromContext(r)

	entry := &store.ReviewEntry{
		BusinessID:  payload.BusinessID,
		UserID:      user.ID,
		ReviewDate:  reviewDate,
		ReviewCount: payload.ReviewCount,
		ReviewLink:  payload.ReviewLink,
	}

	if err := app.store.Reviews.Create(r.Context(), entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.badRequestResponse(w, r, errors.New("unknown business"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateReviewHandler rewrites date, count and links. Only the owner or an
// admin may edit; settlement state is untouched so a paid entry whose count
// changes starts showing an adjustment delta.
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	var payload reviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reviewDate, err := time.Parse("2006-01-02", payload.ReviewDate)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review_date, expected YYYY-MM-DD"))
		return
	}

	entry, err := app.store.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	user := getUserFromContext(r)
	if entry.UserID != user.ID && user.Role != store.RoleAdmin {
		app.forbiddenResponse(w, r)
		return
	}

	entry.BusinessID = payload.BusinessID
	entry.ReviewDate = reviewDate
	entry.ReviewCount = payload.ReviewCount
	entry.ReviewLink = payload.ReviewLink

	if err := app.store.Reviews.Update(r.Context(), entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	entry, err := app.store.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	user := getUserFromContext(r)
	if entry.UserID != user.ID && user.Role != store.RoleAdmin {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.store.Reviews.Delete(r.Context(), reviewID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "review deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// userLedgerHandler godoc
//
//	@Summary		Ledger page for one user's scope
//	@Description	One page of review entries inside the time filter, each annotated
//	@Description	with its settlement action and delta, plus scope-wide totals.
//	@Tags			reviews
//	@Produce		json
//	@Param			userID		path		int		true	"Scope owner"
//	@Param			page		query		int		false	"Page number (1-indexed)"
//	@Param			limit		query		int		false	"Items per page"
//	@Param			filterType	query		string	false	"all | weekly | monthly | custom"
//	@Param			startDate	query		string	false	"YYYY-MM-DD, custom filter only"
//	@Param			endDate		query		string	false	"YYYY-MM-DD, custom filter only"
//	@Success		200			{object}	ledgerResponse
//	@Failure		403			{object}	map[string]any	"Foreign scope without admin role"
//	@Security		ApiKeyAuth
//	@Router			/reviews/user/{userID} [get]
func (app *application) userLedgerHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid user ID"))
		return
	}

	// Only admins may read a scope other than their own.
	current := getUserFromContext(r)
	if current.ID != userID && current.Role != store.RoleAdmin {
		app.forbiddenResponse(w, r)
		return
	}

	q := r.URL.Query()
	p := params.ParsePagination(q)

	filter, err := ledger.ParseFilter(q.Get("filterType"), q.Get("startDate"), q.Get("endDate"), time.Now())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	entries, err := app.store.Reviews.LedgerPage(r.Context(), userID, filter, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	counts, err := app.store.Reviews.WindowCounts(r.Context(), userID, filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	rows := make([]ledgerRow, 0, len(entries))
	for _, entry := range entries {
		c := entry.Counts()
		delta, _ := ledger.DisplayDelta(c)
		rows = append(rows, ledgerRow{
			ReviewEntry:      entry,
			SettlementAction: ledger.Classify(c),
			AdjustmentDelta:  delta,
		})
	}

	if err := writeJSON(w, http.StatusOK, ledgerResponse{
		Data:   rows,
		Totals: ledger.Summarize(counts),
		Page:   p.Page,
		Limit:  p.Limit,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// markAsPaidHandler godoc
//
//	@Summary		Settle one review entry (admin)
//	@Description	Applies whichever settlement action the entry is in: first
//	@Description	payment, top-up, or overpay acknowledgement. No-op when the
//	@Description	entry is already settled.
//	@Tags			reviews
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review entry"
//	@Success		200			{object}	map[string]any	"{entry, action}"
//	@Security		ApiKeyAuth
//	@Router			/reviews/mark-as-paid/{reviewID} [post]
func (app *application) markAsPaidHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	entry, err := app.store.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	action := ledger.Classify(entry.Counts())
	if action != ledger.ActionNone {
		if entry, err = app.store.Reviews.MarkPaid(r.Context(), reviewID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				app.notFoundResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{
		"entry":  entry,
		"action": action,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type markPaidRangePayload struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// markAsPaidCustomDateHandler godoc
//
//	@Summary		Bulk-settle unpaid entries in a date range (admin)
//	@Description	Marks every unpaid entry whose review date falls inside the
//	@Description	inclusive range as paid and notifies the affected owners.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		markPaidRangePayload	true	"Inclusive date range"
//	@Success		200		{object}	map[string]any			"{settled}"
//	@Failure		400		{object}	map[string]any			"Missing or inverted range"
//	@Security		ApiKeyAuth
//	@Router			/reviews/mark-as-paid-custom-date [post]
func (app *application) markAsPaidCustomDateHandler(w http.ResponseWriter, r *http.Request) {
	var payload markPaidRangePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	start, end, err := ledger.ValidateRange(payload.StartDate, payload.EndDate)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	settled, ownerIDs, err := app.store.Reviews.MarkPaidRange(r.Context(), start, end)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if settled > 0 {
		app.notifySettledOwners(ownerIDs, payload.StartDate, payload.EndDate)
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{
		"settled": settled,
		"message": "reviews marked as paid",
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// notifySettledOwners mails each affected owner in the background; delivery
// failures are logged, never surfaced to the settling admin.
func (app *application) notifySettledOwners(ownerIDs []int64, startDate, endDate string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		owners, err := app.store.Users.ListByIDs(ctx, ownerIDs)
		if err != nil {
			app.logger.Errorw("error loading settled owners", "error", err)
			return
		}

		for _, owner := range owners {
			vars := struct {
				Username  string
				StartDate string
				EndDate   string
				AppName   string
			}{Username: owner.Username, StartDate: startDate, EndDate: endDate, AppName: mailer.FromName}

			if _, err := app.mailer.Send(mailer.PaymentSettledTemplate, owner.Username, owner.Email, vars); err != nil {
				app.logger.Errorw("error sending settlement email", "email", owner.Email, "error", err)
			}
		}
	}()
}

// reviewStatsHandler godoc
//
//	@Summary	Global review stats (admin)
//	@Tags		reviews
//	@Produce	json
//	@Success	200	{object}	store.GlobalStats
//	@Security	ApiKeyAuth
//	@Router		/reviews/stats/all [get]
func (app *application) reviewStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.store.Reviews.GlobalStats(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}
