package client

import (
	"context"
	"fmt"
	"net/url"
)

type userList struct {
	Data  []User `json:"data"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// Users lists users with their review totals (admin), 0-indexed pages.
func (c *Client) Users(ctx context.Context, page, limit int) ([]User, int64, error) {
	if page < 0 {
		return nil, 0, validationError("page must not be negative")
	}

	q := url.Values{}
	q.Set("page", fmt.Sprint(page+1))
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}

	var list userList
	if err := c.do(ctx, "GET", "/users?"+q.Encode(), nil, &list); err != nil {
		return nil, 0, err
	}
	return list.Data, list.Total, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.doEnvelope(ctx, "GET", fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserActive toggles another user's account (admin). Deactivated users
// keep their entries but can no longer sign in.
func (c *Client) SetUserActive(ctx context.Context, id int64, active bool) error {
	payload := map[string]bool{"is_active": active}
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/users/%d/status", id), payload, nil); err != nil {
		return err
	}
	c.invalidateUser(id)
	return nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.do(ctx, "DELETE", fmt.Sprintf("/users/%d", id), nil, nil); err != nil {
		return err
	}
	c.invalidateUser(id)
	return nil
}
