package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hostelmess/hostelmess/app/services"
	"github.com/hostelmess/hostelmess/pkg/response"
)

// paramUint reads a numeric URL parameter. A zero return with ok=false
// means the caller should 400.
func paramUint(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// monthQuery reads optional ?month=&year= query parameters, defaulting
// to the current month.
func monthQuery(r *http.Request) (int, time.Month) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := r.URL.Query().Get("year"); raw != "" {
		if y, err := strconv.Atoi(raw); err == nil && y >= 2000 && y <= 2100 {
			year = y
		}
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil && m >= 1 && m <= 12 {
			month = time.Month(m)
		}
	}
	return year, month
}

// serviceError maps service-layer sentinel errors onto HTTP responses.
// Unknown errors become a 500 with the given fallback message.
func serviceError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case services.ErrNotFound:
		response.NotFound(w)
	case services.ErrEmailTaken,
		services.ErrRollNoTaken,
		services.ErrInvalidMealType,
		services.ErrAlreadyMarked,
		services.ErrNotMarked,
		services.ErrInsufficientStock,
		services.ErrEmptyCart,
		services.ErrInvalidQuantity,
		services.ErrUnavailable:
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Internal(w, fallback)
	}
}
