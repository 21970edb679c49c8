package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/ridefinderz-filters/api/middleware"
	"github.com/angelmondragon/ridefinderz-filters/api/responses"
	"github.com/angelmondragon/ridefinderz-filters/api/validators"
	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/internal/sessions"
	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	pkgerrors "github.com/angelmondragon/ridefinderz-filters/pkg/errors"
	"github.com/angelmondragon/ridefinderz-filters/pkg/logger"
	"github.com/angelmondragon/ridefinderz-filters/pkg/querystate"
)

const (
	maxValueLength = 64
)

type queryRequest struct {
	Query string `json:"query" validate:"max=2048,printable"`
}

type toggleRequest struct {
	Facet string `json:"facet" validate:"required,oneof=category brand engine_size"`
	Value string `json:"value" validate:"required,max=64,printable"`
}

type priceRequest struct {
	Side  string `json:"side" validate:"required,oneof=min max"`
	Value string `json:"value" validate:"max=32"`
}

type dragRequest struct {
	Side  string `json:"side" validate:"required,oneof=min max"`
	Value *int64 `json:"value" validate:"required"`
}

type closePanelRequest struct {
	Reason string `json:"reason" validate:"required,oneof=close_button overlay"`
}

// sessionOp is one widget operation against the session bound to the request.
type sessionOp func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error)

func withSession(svc sessions.Service, logg *logger.Logger, op sessionOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filter session service unavailable"))
			return
		}
		id, ok := middleware.SessionIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id missing"))
			return
		}
		view, err := op(w, r, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// parseQuery accepts a query string with or without the leading '?'.
func parseQuery(raw string, limits filters.Limits) filters.ActiveFilters {
	return querystate.Parse(strings.TrimPrefix(strings.TrimSpace(raw), "?"), limits)
}

// CreateFilterSession activates a widget, optionally seeded from a listing
// page query string.
func CreateFilterSession(svc sessions.Service, limits filters.Limits, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filter session service unavailable"))
			return
		}
		var body queryRequest
		if err := validators.DecodeOptionalJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var initial filters.ActiveFilters
		if body.Query != "" {
			initial = parseQuery(body.Query, limits)
		}
		view, err := svc.Activate(r.Context(), initial)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Location", "/api/v1/filter-sessions/"+view.SessionID)
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func GetFilterSession(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(_ http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error) {
		return svc.Get(r.Context(), id)
	})
}

// DeleteFilterSession deactivates the widget, releasing its scroll lock.
func DeleteFilterSession(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filter session service unavailable"))
			return
		}
		id, ok := middleware.SessionIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id missing"))
			return
		}
		if err := svc.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToggleFilter(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error) {
		var body toggleRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			return sessions.View{}, err
		}
		facet, err := enums.ParseFilterFacet(body.Facet)
		if err != nil {
			return sessions.View{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid facet")
		}
		return svc.Toggle(r.Context(), id, facet, validators.SanitizeString(body.Value, maxValueLength))
	})
}

// SetPriceField applies the current text of a price input. An empty value
// clears the bound; non-numeric text is ignored and flagged in the view.
func SetPriceField(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error) {
		var body priceRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			return sessions.View{}, err
		}
		side, err := enums.ParsePriceSide(body.Side)
		if err != nil {
			return sessions.View{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price side")
		}
		return svc.SetPrice(r.Context(), id, side, body.Value)
	})
}

// DragSlider moves one handle. Drags never reach the sinks.
func DragSlider(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error) {
		var body dragRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			return sessions.View{}, err
		}
		side, err := enums.ParsePriceSide(body.Side)
		if err != nil {
			return sessions.View{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price side")
		}
		return svc.Drag(r.Context(), id, side, *body.Value)
	})
}

func CommitSlider(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(_ http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error) {
		return svc.Commit(r.Context(), id)
	})
}

func ResetFilters(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(_ http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error) {
		return svc.Reset(r.Context(), id)
	})
}

// SyncFilters reconciles the session against the listing page's current
// query string. Facets whose values are malformed are left untouched.
func SyncFilters(svc sessions.Service, limits filters.Limits, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error) {
		var body queryRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			return sessions.View{}, err
		}
		return svc.Sync(r.Context(), id, parseQuery(body.Query, limits))
	})
}

func OpenPanel(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(_ http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error) {
		return svc.OpenPanel(r.Context(), id)
	})
}

// ClosePanel handles the close button and overlay click exits. Reset and
// deactivation close the panel through their own routes.
func ClosePanel(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) (sessions.View, error) {
		var body closePanelRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			return sessions.View{}, err
		}
		reason, err := enums.ParsePanelCloseReason(body.Reason)
		if err != nil {
			return sessions.View{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid close reason")
		}
		return svc.ClosePanel(r.Context(), id, reason)
	})
}
