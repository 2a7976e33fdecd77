package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"revtrack/internal/params"
	"revtrack/internal/store"
)

type businessPayload struct {
	BusinessName string `json:"business_name" validate:"required,max=200"`
	Location     string `json:"location" validate:"max=300"`
	ShortCode    string `json:"short_code" validate:"omitempty,min=2,max=12"`
}

// createBusinessHandler godoc
//
//	@Summary		Create a business (admin)
//	@Description	Registers a business; a short code is generated when none is supplied
//	@Tags			business
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		businessPayload	true	"Business attributes"
//	@Success		201		{object}	store.Business
//	@Failure		409		{object}	map[string]any	"Short code already taken"
//	@Security		ApiKeyAuth
//	@Router			/business [post]
func (app *application) createBusinessHandler(w http.ResponseWriter, r *http.Request) {
	var payload businessPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	business := &store.Business{
		BusinessName: payload.BusinessName,
		Location:     payload.Location,
		ShortCode:    payload.ShortCode,
	}

	// Generated codes can collide with existing ones; take a couple of
	// shots before giving up.
	for attempt := 0; ; attempt++ {
		if business.ShortCode == "" {
			code, err := app.shortCodes.Generate()
			if err != nil {
				app.internalServerError(w, r, err)
				return
			}
			business.ShortCode = code
		}

		err := app.store.Businesses.Create(r.Context(), business)
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrConflict) {
			if payload.ShortCode != "" || attempt >= 2 {
				app.conflictResponse(w, r, errors.New("short code already in use"))
				return
			}
			business.ShortCode = ""
			continue
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, business); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listBusinessesHandler godoc
//
//	@Summary	List businesses
//	@Tags		business
//	@Produce	json
//	@Param		page	query		int	false	"Page number (1-indexed)"
//	@Param		limit	query		int	false	"Items per page"
//	@Success	200		{object}	map[string]any	"{data, total}"
//	@Security	ApiKeyAuth
//	@Router		/business [get]
func (app *application) listBusinessesHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	businesses, total, err := app.store.Businesses.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]any{
		"data":  businesses,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateBusinessHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid business ID"))
		return
	}

	var payload businessPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	business, err := app.store.Businesses.GetByID(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	business.BusinessName = payload.BusinessName
	business.Location = payload.Location
	if payload.ShortCode != "" {
		business.ShortCode = payload.ShortCode
	}

	if err := app.store.Businesses.Update(r.Context(), business); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, errors.New("short code already in use"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, business); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateBusinessStatusHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid business ID"))
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

	if err := app.store.Businesses.SetActive(r.Context(), businessID, *payload.IsActive); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "business status updated"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteBusinessHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid business ID"))
		return
	}

	if err := app.store.Businesses.Delete(r.Context(), businessID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "business deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}
