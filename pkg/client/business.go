package client

import (
	"context"
	"fmt"
	"net/url"
)

type businessList struct {
	Data  []Business `json:"data"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// Businesses lists businesses, 0-indexed pages.
func (c *Client) Businesses(ctx context.Context, page, limit int) ([]Business, int64, error) {
	if page < 0 {
		return nil, 0, validationError("page must not be negative")
	}

	q := url.Values{}
	q.Set("page", fmt.Sprint(page+1))
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}

	var list businessList
	if err := c.do(ctx, "GET", "/business?"+q.Encode(), nil, &list); err != nil {
		return nil, 0, err
	}
	return list.Data, list.Total, nil
}

// CreateBusiness registers a business (admin). An empty ShortCode lets the
// server generate one.
func (c *Client) CreateBusiness(ctx context.Context, in BusinessInput) (*Business, error) {
	if in.BusinessName == "" {
		return nil, validationError("business_name is required")
	}

	var business Business
	if err := c.doEnvelope(ctx, "POST", "/business", in, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (c *Client) UpdateBusiness(ctx context.Context, id int64, in BusinessInput) (*Business, error) {
	var business Business
	if err := c.doEnvelope(ctx, "PUT", fmt.Sprintf("/business/%d", id), in, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (c *Client) SetBusinessActive(ctx context.Context, id int64, active bool) error {
	payload := map[string]bool{"is_active": active}
	return c.do(ctx, "PATCH", fmt.Sprintf("/business/%d/status", id), payload, nil)
}

func (c *Client) DeleteBusiness(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/business/%d", id), nil, nil)
}
