package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tablereserve/table-reserve/internal/auth"
	"github.com/tablereserve/table-reserve/internal/middleware"
	"github.com/tablereserve/table-reserve/internal/repository"
)

// MenuHandler owns menu-item creation.  Unlike the rest of the admin
// surface this route lives under /api/menu, but it is still an admin
// mutation of the catalog and requires the admin role.
type MenuHandler struct {
	Menu MenuStore
}

func NewMenuHandler(menu MenuStore) *MenuHandler {
	return &MenuHandler{Menu: menu}
}

type menuItemReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// CreateItem handles POST /api/menu/:restaurantId.
func (h *MenuHandler) CreateItem(c echo.Context) error {
	if err := auth.Authorize(middleware.CurrentPrincipal(c), auth.ActionMenuItemCreate, auth.Resource{}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	restaurantID, err := strconv.ParseUint(c.Param("restaurantId"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	if req.Name == "" || req.Description == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/description/category required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.Menu.Create(ctx, restaurantID, req.Name, req.Description, req.Price, req.Category)
	if err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add menu item"})
	}
	return c.JSON(http.StatusCreated, item)
}
