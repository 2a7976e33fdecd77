package client

import (
	"context"
	"sync"
)

// session is the client's view of the signed-in user and their token pair.
// It is cleared on logout and on any 401 from the server.
type session struct {
	mu           sync.RWMutex
	user         *User
	token        string
	refreshToken string
}

func (s *session) set(user *User, token, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	s.refreshToken = refreshToken
}

func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.refreshToken = ""
}

func (s *session) accessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *session) currentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

type authResponse struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges a Google identity for a token pair and opens the session.
func (c *Client) Login(ctx context.Context, email, username, googleID string) (*User, error) {
	payload := map[string]string{
		"email":     email,
		"username":  username,
		"google_id": googleID,
	}

	var resp authResponse
	if err := c.doEnvelope(ctx, "POST", "/users/google-auth", payload, &resp); err != nil {
		return nil, err
	}

	c.session.set(resp.User, resp.Token, resp.RefreshToken)
	return resp.User, nil
}

// Logout revokes the refresh token server-side and drops the session either
// way: a dead session on the server must not keep a live one here.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, "POST", "/users/logout", nil, nil)
	c.session.clear()
	c.cache.invalidateAll()
	if IsKind(err, KindUnauthorized) {
		return nil
	}
	return err
}

// CurrentUser returns the signed-in user, or nil when no session is open.
func (c *Client) CurrentUser() *User {
	return c.session.currentUser()
}
