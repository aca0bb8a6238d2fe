package cart

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"meezy.GO/api"
	cartService "meezy.GO/service/cart"
	"meezy.GO/service/pos"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

func RegisterCartRoutes(apiGroup *echo.Group, s *api.Services) {
	g := apiGroup.Group("/cart")

	// GET /api/cart – current cart contents and totals
	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, cartView(s))
	})

	// POST /api/cart/scan – barcode scanner path: resolve the code and let
	// the register decide whether it goes in automatically
	g.POST("/scan", func(c echo.Context) error {
		var body struct {
			Code string `json:"code"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
		}
		res := s.Catalog.Resolve(c.Request().Context(), body.Code)
		d := s.Register.HandleSettled(res)
		return c.JSON(decisionStatus(d), decisionView(s, d))
	})

	// POST /api/cart/commit – explicit take-first on a query (the Enter key)
	g.POST("/commit", func(c echo.Context) error {
		var body struct {
			Query string `json:"q"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		res := s.Catalog.Resolve(c.Request().Context(), body.Query)
		d := s.Register.HandleCommit(res)
		return c.JSON(decisionStatus(d), decisionView(s, d))
	})

	// POST /api/cart/custom – off-catalog line (alterations, odd lots)
	g.POST("/custom", func(c echo.Context) error {
		var body struct {
			Title    string  `json:"title"`
			Price    float64 `json:"price"`
			Quantity int     `json:"quantity"`
			Size     string  `json:"size"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		line, err := s.Cart.AddCustom(body.Title, body.Price, body.Quantity, body.Size)
		if err != nil {
			if errors.Is(err, cartService.ErrInvalidCustomLine) {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"line": line, "cart": cartView(s)})
	})

	// PUT /api/cart/items/:key – set quantity; zero or less removes the line
	g.PUT("/items/:key", func(c echo.Context) error {
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s.Cart.UpdateQuantity(c.Param("key"), body.Quantity)
		return c.JSON(http.StatusOK, cartView(s))
	})

	// DELETE /api/cart/items/:key
	g.DELETE("/items/:key", func(c echo.Context) error {
		s.Cart.Remove(c.Param("key"))
		return c.JSON(http.StatusOK, cartView(s))
	})

	// DELETE /api/cart – void the sale
	g.DELETE("", func(c echo.Context) error {
		s.Cart.Clear()
		return c.JSON(http.StatusOK, cartView(s))
	})
}

func cartView(s *api.Services) echo.Map {
	return echo.Map{
		"lines":      s.Cart.Lines(),
		"total":      s.Cart.Total(),
		"item_count": s.Cart.ItemCount(),
	}
}

func decisionView(s *api.Services, d pos.Decision) echo.Map {
	return echo.Map{
		"action": d.Action.String(),
		"item":   d.Item,
		"cart":   cartView(s),
	}
}

func decisionStatus(d pos.Decision) int {
	switch d.Action {
	case pos.ActionNotFound:
		return http.StatusNotFound
	case pos.ActionBlockedPrice, pos.ActionBlockedStock:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusOK
	}
}
