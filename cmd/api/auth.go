package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"revtrack/internal/mailer"
	"revtrack/internal/store"
)

type googleAuthPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,max=100"`
	GoogleID string `json:"google_id" validate:"required,max=64"`
}

type authResponse struct {
	User         *store.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
}

// googleAuthHandler godoc
//
//	@Summary		Exchange a Google identity for an API session
//	@Description	Creates the user on first login, refreshes username and last_login after that
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		googleAuthPayload	true	"Decoded Google identity"
//	@Success		200		{object}	authResponse
//	@Failure		400		{object}	map[string]any	"Bad request"
//	@Failure		403		{object}	map[string]any	"Account deactivated"
//	@Router			/users/google-auth [post]
func (app *application) googleAuthHandler(w http.ResponseWriter, r *http.Request) {
	var payload googleAuthPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := &store.User{
		Email:    payload.Email,
		Username: payload.Username,
		GoogleID: payload.GoogleID,
	}

	if err := app.store.Users.UpsertGoogleUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.conflictResponse(w, r, fmt.Errorf("email already registered with a different account"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if !user.IsActive {
		app.forbiddenResponse(w, r)
		return
	}

	accessToken, refreshToken, err := app.authenticator.GenerateTokens(user.ID, user.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.SaveRefreshToken(r.Context(), user.ID, refreshToken); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if user.IsNew {
		// Welcome mail must not block or fail the login.
		go func() {
			vars := struct {
				Username string
				AppName  string
			}{Username: user.Username, AppName: mailer.FromName}

			if _, err := app.mailer.Send(mailer.UserWelcomeTemplate, user.Username, user.Email, vars); err != nil {
				app.logger.Errorw("error sending welcome email", "error", err)
			}
		}()
	}

	if err := app.jsonResponse(w, http.StatusOK, authResponse{
		User:         user,
		Token:        accessToken,
		RefreshToken: refreshToken,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type refreshPayload struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// refreshTokenHandler rotates the token pair. The presented refresh token
// must match the one stored for the user; logout invalidates it.
func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload refreshPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	jwtToken, err := app.authenticator.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	claims, _ := jwtToken.Claims.(jwt.MapClaims)
	userID, err := strconv.ParseInt(fmt.Sprintf("%.f", claims["sub"]), 10, 64)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	stored, err := app.store.Users.GetRefreshToken(r.Context(), userID)
	if err != nil || stored != payload.RefreshToken {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("refresh token revoked"))
		return
	}

	user, err := app.store.Users.GetByID(r.Context(), userID)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}
	if !user.IsActive {
		app.forbiddenResponse(w, r)
		return
	}

	accessToken, refreshToken, err := app.authenticator.GenerateTokens(user.ID, user.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.SaveRefreshToken(r.Context(), user.ID, refreshToken); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, authResponse{
		User:         user,
		Token:        accessToken,
		RefreshToken: refreshToken,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary	Drop the stored refresh token
//	@Tags		authentication
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Security	ApiKeyAuth
//	@Router		/users/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.store.Users.DeleteRefreshToken(r.Context(), user.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"}); err != nil {
		app.internalServerError(w, r, err)
	}
}
