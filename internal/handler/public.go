package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tablereserve/table-reserve/internal/auth"
	"github.com/tablereserve/table-reserve/internal/middleware"
)

// PublicHandler serves the unauthenticated catalog reads: the restaurant
// list and per-restaurant menus.  Both routes sit behind the Redis response
// cache.
type PublicHandler struct {
	Restaurants RestaurantStore
	Menu        MenuStore
}

func NewPublicHandler(restaurants RestaurantStore, menu MenuStore) *PublicHandler {
	return &PublicHandler{Restaurants: restaurants, Menu: menu}
}

// ListRestaurants handles GET /api/restaurants.
func (h *PublicHandler) ListRestaurants(c echo.Context) error {
	if err := auth.Authorize(middleware.CurrentPrincipal(c), auth.ActionCatalogRead, auth.Resource{}); err != nil {
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

// ListMenu handles GET /api/menu/:restaurantId.
func (h *PublicHandler) ListMenu(c echo.Context) error {
	if err := auth.Authorize(middleware.CurrentPrincipal(c), auth.ActionCatalogRead, auth.Resource{}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	restaurantID, err := strconv.ParseUint(c.Param("restaurantId"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Menu.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch menu items"})
	}
	return c.JSON(http.StatusOK, items)
}
