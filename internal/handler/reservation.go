package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tablereserve/table-reserve/internal/auth"
	"github.com/tablereserve/table-reserve/internal/middleware"
	"github.com/tablereserve/table-reserve/internal/repository"
)

// ReservationHandler serves the user-facing reservation lifecycle: create,
// edit, cancel and list.  Every method resolves the principal injected by
// JWTAuth and runs it through the authorization guard before touching the
// store, so ownership violations never reach a mutation.
type ReservationHandler struct {
	Reservations ReservationStore
}

func NewReservationHandler(reservations ReservationStore) *ReservationHandler {
	return &ReservationHandler{Reservations: reservations}
}

type createReservationReq struct {
	RestaurantID uint64 `json:"restaurant_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PeopleCount  int    `json:"people_count"`
}

type editReservationReq struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	PeopleCount int    `json:"people_count"`
}

// Create handles POST /api/reservations.  New reservations always start
// pending; the decision belongs to an admin later.
func (h *ReservationHandler) Create(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RestaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id required"})
	}
	date, timeOfDay, people, err := validateReservationFields(req.Date, req.Time, req.PeopleCount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.Create(ctx, p.ID, req.RestaurantID, date, timeOfDay, people)
	if err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	return c.JSON(http.StatusCreated, res)
}

// Update handles PUT /api/reservations/:id.  Only the owner may edit; the
// current status is not checked, matching the accepted hard-delete-anytime
// cancellation semantics.
func (h *ReservationHandler) Update(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	var req editReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, timeOfDay, people, err := validateReservationFields(req.Date, req.Time, req.PeopleCount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	owner, err := h.Reservations.OwnerID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := auth.Authorize(p, auth.ActionReservationEdit, auth.Resource{OwnerID: owner}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to update this reservation"})
	}

	res, err := h.Reservations.Update(ctx, id, p.ID, date, timeOfDay, people)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to update this reservation"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
		}
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /api/reservations/:id.  Cancellation is permitted
// in any status so a user can withdraw an already accepted booking.
func (h *ReservationHandler) Delete(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	owner, err := h.Reservations.OwnerID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := auth.Authorize(p, auth.ActionReservationCancel, auth.Resource{OwnerID: owner}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to cancel this reservation"})
	}

	if err := h.Reservations.Delete(ctx, id, p.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to cancel this reservation"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}

// ListForUser handles GET /api/reservations/user/:userId.  The path
// parameter exists for client convenience, but the guard restricts the
// listing to the caller's own reservations.
func (h *ReservationHandler) ListForUser(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	target, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || target == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := auth.Authorize(p, auth.ActionReservationRead, auth.Resource{OwnerID: target}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByUser(ctx, target)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, list)
}

// validateReservationFields normalizes and checks the shared reservation
// inputs.  Dates must be YYYY-MM-DD, times HH:MM or HH:MM:SS (normalized to
// the latter), and the party size positive.
func validateReservationFields(date, timeOfDay string, peopleCount int) (string, string, int, error) {
	if date == "" || timeOfDay == "" || peopleCount == 0 {
		return "", "", 0, errors.New("date/time/people_count required")
	}
	if peopleCount <= 0 {
		return "", "", 0, errors.New("people_count must be positive")
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", "", 0, errors.New("date must be YYYY-MM-DD")
	}
	t, err := time.Parse("15:04:05", timeOfDay)
	if err != nil {
		t, err = time.Parse("15:04", timeOfDay)
		if err != nil {
			return "", "", 0, errors.New("time must be HH:MM or HH:MM:SS")
		}
	}
	return d.Format("2006-01-02"), t.Format("15:04:05"), peopleCount, nil
}
