package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tablereserve/table-reserve/internal/auth"
	"github.com/tablereserve/table-reserve/internal/config"
	"github.com/tablereserve/table-reserve/internal/middleware"
	"github.com/tablereserve/table-reserve/internal/model"
	"github.com/tablereserve/table-reserve/internal/queue"
	"github.com/tablereserve/table-reserve/internal/repository"
	queue_publisher "github.com/tablereserve/table-reserve/internal/service"
)

// AdminHandler serves the admin surface: restaurant CRUD with multipart
// image upload, the per-restaurant reservation listing, and reservation
// decisions.  All routes sit behind JWTAuth plus RequireRole("admin"); the
// handlers still run every request through the authorization guard so the
// policy has a single source of truth.
type AdminHandler struct {
	Cfg          config.Config
	Restaurants  RestaurantStore
	Reservations ReservationStore
}

func NewAdminHandler(cfg config.Config, restaurants RestaurantStore, reservations ReservationStore) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Restaurants: restaurants, Reservations: reservations}
}

// ListRestaurants handles GET /api/admin/restaurants.
func (h *AdminHandler) ListRestaurants(c echo.Context) error {
	if err := auth.Authorize(middleware.CurrentPrincipal(c), auth.ActionRestaurantAdminList, auth.Resource{}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Restaurants.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch restaurants"})
	}
	return c.JSON(http.StatusOK, list)
}

// CreateRestaurant handles POST /api/admin/restaurants (multipart).  An
// optional image part is written under the upload directory and persisted
// as an absolute URL; the bytes themselves are never inspected.
func (h *AdminHandler) CreateRestaurant(c echo.Context) error {
	if err := auth.Authorize(middleware.CurrentPrincipal(c), auth.ActionRestaurantCreate, auth.Resource{}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	location := strings.TrimSpace(c.FormValue("location"))
	description := strings.TrimSpace(c.FormValue("description"))
	if name == "" || location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/location required"})
	}

	imageURL, err := h.saveImage(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store image"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rest, err := h.Restaurants.Create(ctx, name, location, description, imageURL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create restaurant"})
	}
	return c.JSON(http.StatusCreated, rest)
}

// UpdateRestaurant handles PUT /api/admin/restaurants/:id (multipart).
// Without a new image part the stored reference is preserved.
func (h *AdminHandler) UpdateRestaurant(c echo.Context) error {
	if err := auth.Authorize(middleware.CurrentPrincipal(c), auth.ActionRestaurantUpdate, auth.Resource{}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	location := strings.TrimSpace(c.FormValue("location"))
	description := strings.TrimSpace(c.FormValue("description"))
	if name == "" || location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/location required"})
	}

	imageURL, err := h.saveImage(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store image"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rest, err := h.Restaurants.Update(ctx, id, name, location, description, imageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update restaurant"})
	}
	return c.JSON(http.StatusOK, rest)
}

// DeleteRestaurant handles DELETE /api/admin/restaurants/:id.  Menu items
// are removed with the restaurant; reservations referencing it stay behind.
func (h *AdminHandler) DeleteRestaurant(c echo.Context) error {
	if err := auth.Authorize(middleware.CurrentPrincipal(c), auth.ActionRestaurantDelete, auth.Resource{}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Restaurants.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete restaurant"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "restaurant deleted"})
}

// ListReservations handles GET /api/admin/restaurants/:id/reservations.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	if err := auth.Authorize(middleware.CurrentPrincipal(c), auth.ActionReservationList, auth.Resource{}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservations"})
	}
	return c.JSON(http.StatusOK, list)
}

type decideReq struct {
	Status string `json:"status"`
}

// DecideReservation handles PUT /api/admin/reservations/:id/status.  Only
// pending reservations can be decided; re-deciding returns 409.  A
// successful decision is announced on the message broker, but a broker
// failure never fails the request.
func (h *AdminHandler) DecideReservation(c echo.Context) error {
	if err := auth.Authorize(middleware.CurrentPrincipal(c), auth.ActionReservationDecide, auth.Resource{}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Status != model.StatusAccepted && req.Status != model.StatusDenied {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status value"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.SetStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already decided"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation status"})
		}
	}

	h.publishDecision(res)

	return c.JSON(http.StatusOK, res)
}

// publishDecision emits a ReservationDecidedEvent in the background.  The
// restaurant name lookup and the publish itself are best-effort.
func (h *AdminHandler) publishDecision(res model.Reservation) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.ReservationDecidedEvent{
			ReservationID: res.ID,
			UserID:        res.UserID,
			RestaurantID:  res.RestaurantID,
			Date:          res.Date,
			Time:          res.Time,
			PeopleCount:   res.PeopleCount,
			Status:        res.Status,
			DecidedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		if rest, err := h.Restaurants.GetByID(ctx, res.RestaurantID); err == nil {
			ev.RestaurantName = rest.Name
		}
		_ = queue_publisher.PublishReservationDecided(ctx, ev)
	}()
}

// saveImage writes an uploaded "image" part to the upload directory using a
// timestamped filename and returns its public URL.  A request without an
// image part returns (nil, nil).
func (h *AdminHandler) saveImage(c echo.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil // no image part
	}
	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return nil, err
	}
	fname := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	if err := copyUpload(file, filepath.Join(h.Cfg.UploadDir, fname)); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s://%s/uploads/%s", c.Scheme(), c.Request().Host, fname)
	return &url, nil
}

func copyUpload(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
