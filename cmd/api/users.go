package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"revtrack/internal/params"
	"revtrack/internal/store"
)

// listUsersHandler godoc
//
//	@Summary		List users (admin)
//	@Description	Paginated list of all users with their aggregate review counts
//	@Tags			users
//	@Produce		json
//	@Param			page	query		int	false	"Page number (1-indexed)"
//	@Param			limit	query		int	false	"Items per page"
//	@Success		200		{object}	map[string]any	"{data, total}"
//	@Security		ApiKeyAuth
//	@Router			/users [get]
func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	users, total, err := app.store.Users.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(int(total))

	if err := writeJSON(w, http.StatusOK, map[string]any{
		"data":  users,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid user ID"))
		return
	}

	user, err := app.store.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

type statusPayload struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// updateUserStatusHandler activates or deactivates an account. Deactivated
// users keep their data but can no longer log in.
func (app *application) updateUserStatusHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid user ID"))
		return
	}

	var payload statusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	current := getUserFromContext(r)
	if current.ID == userID && !*payload.IsActive {
		app.badRequestResponse(w, r, errors.New("cannot deactivate your own account"))
		return
	}

	if err := app.store.Users.SetActive(r.Context(), userID, *payload.IsActive); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "user status updated"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid user ID"))
		return
	}

	current := getUserFromContext(r)
	if current.ID == userID {
		app.badRequestResponse(w, r, fmt.Errorf("cannot delete your own account"))
		return
	}

	if err := app.store.Users.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "user deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}
