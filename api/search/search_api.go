package search

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"meezy.GO/api"
	"meezy.GO/config"
)

func init() {
	api.RegisterModule(RegisterSearchRoutes)
}

func RegisterSearchRoutes(apiGroup *echo.Group, s *api.Services) {
	// GET /api/search?q= – ranked product search (public, see auth skipper)
	apiGroup.GET("/search", func(c echo.Context) error {
		start := time.Now()
		q := c.QueryParam("q")

		minLen := 2
		if config.AppConfig != nil {
			minLen = config.AppConfig.ProductMinQuery
		}
		if len([]rune(q)) < minLen {
			return c.JSON(http.StatusOK, echo.Map{
				"query":  q,
				"active": false,
				"items":  []any{},
			})
		}

		res := s.Catalog.Resolve(c.Request().Context(), q)
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, echo.Map{
			"query":   res.Query.Raw,
			"class":   res.Query.Class.String(),
			"outcome": res.Outcome.String(),
			"active":  true,
			"items":   res.Items,
		})
	})
}
