package client

import (
	"context"
	"fmt"
	"net/url"

	"revtrack/internal/ledger"
)

// resolveScope turns a Scope into the user ID to query. A foreign scope
// without the admin role never reaches the wire.
func (c *Client) resolveScope(scope Scope) (int64, error) {
	user := c.session.currentUser()
	if user == nil {
		return 0, &Error{Kind: KindUnauthorized, Message: "no open session"}
	}
	if scope.self || scope.userID == user.ID {
		return user.ID, nil
	}
	if user.Role != "admin" {
		return 0, validationError("scope user %d requires the admin role", scope.userID)
	}
	return scope.userID, nil
}

func ledgerCacheKey(userID int64, f Filter, page, limit int) string {
	return fmt.Sprintf("ledger:%d:%s:%s:%s:%d:%d", userID, f.Type, f.StartDate, f.EndDate, page, limit)
}

// Ledger fetches one page of the scoped ledger. Pages are 0-indexed here;
// the wire is 1-indexed. Fresh results are cached for five minutes.
func (c *Client) Ledger(ctx context.Context, scope Scope, f Filter, page, limit int) (*LedgerPage, error) {
	if page < 0 {
		return nil, validationError("page must not be negative")
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	userID, err := c.resolveScope(scope)
	if err != nil {
		return nil, err
	}

	key := ledgerCacheKey(userID, f, page, limit)
	if cached, ok := c.cache.get(key); ok {
		return cached.(*LedgerPage), nil
	}

	q := url.Values{}
	q.Set("page", fmt.Sprint(page+1))
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if f.Type != "" {
		q.Set("filterType", f.Type)
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}

	var p LedgerPage
	if err := c.do(ctx, "GET", fmt.Sprintf("/reviews/user/%d?%s", userID, q.Encode()), nil, &p); err != nil {
		return nil, err
	}

	c.cache.set(key, &p)
	return &p, nil
}

// CreateReview records an entry for the signed-in user and invalidates their
// cached pages.
func (c *Client) CreateReview(ctx context.Context, in ReviewInput) (*Review, error) {
	user := c.session.currentUser()
	if user == nil {
		return nil, &Error{Kind: KindUnauthorized, Message: "no open session"}
	}

	var review Review
	if err := c.doEnvelope(ctx, "POST", "/reviews", in, &review); err != nil {
		return nil, err
	}

	c.invalidateUser(user.ID)
	return &review, nil
}

func (c *Client) UpdateReview(ctx context.Context, id int64, in ReviewInput) (*Review, error) {
	var review Review
	if err := c.doEnvelope(ctx, "PUT", fmt.Sprintf("/reviews/%d", id), in, &review); err != nil {
		return nil, err
	}

	c.invalidateUser(review.UserID)
	return &review, nil
}

func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	if err := c.do(ctx, "DELETE", fmt.Sprintf("/reviews/%d", id), nil, nil); err != nil {
		return err
	}

	// The deleted entry's owner is unknown here, so every scope goes.
	c.cache.invalidateAll()
	return nil
}

// MarkPaid settles one entry (admin). The returned action says which
// transition the server applied; ActionNone means the entry was already
// settled.
func (c *Client) MarkPaid(ctx context.Context, reviewID int64) (*Review, ledger.Action, error) {
	var resp struct {
		Entry  Review        `json:"entry"`
		Action ledger.Action `json:"action"`
	}
	if err := c.doEnvelope(ctx, "POST", fmt.Sprintf("/reviews/mark-as-paid/%d", reviewID), nil, &resp); err != nil {
		return nil, "", err
	}

	c.invalidateUser(resp.Entry.UserID)
	return &resp.Entry, resp.Action, nil
}

// MarkPaidRange bulk-settles every unpaid entry in the inclusive date range
// (admin). A reversed or incomplete range is rejected before any request goes
// out.
func (c *Client) MarkPaidRange(ctx context.Context, startDate, endDate string) (int64, error) {
	if _, _, err := ledger.ValidateRange(startDate, endDate); err != nil {
		return 0, validationError("%v", err)
	}

	payload := map[string]string{"startDate": startDate, "endDate": endDate}

	var resp struct {
		Settled int64 `json:"settled"`
	}
	if err := c.doEnvelope(ctx, "POST", "/reviews/mark-as-paid-custom-date", payload, &resp); err != nil {
		return 0, err
	}

	// Any user's entries may have settled.
	c.cache.invalidateAll()
	return resp.Settled, nil
}

// Stats fetches the global summary (admin), cached like ledger pages.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	if cached, ok := c.cache.get("stats"); ok {
		return cached.(*Stats), nil
	}

	var stats Stats
	if err := c.doEnvelope(ctx, "GET", "/reviews/stats/all", nil, &stats); err != nil {
		return nil, err
	}

	c.cache.set("stats", &stats)
	return &stats, nil
}

// invalidateUser drops one scope's ledger pages plus the global stats.
func (c *Client) invalidateUser(userID int64) {
	c.cache.invalidatePrefix(fmt.Sprintf("ledger:%d:", userID))
	c.cache.invalidatePrefix("stats")
}
