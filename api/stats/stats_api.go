package stats

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"meezy.GO/api"
	storageRepo "meezy.GO/model/repository/storage"
	"meezy.GO/service/backend"
)

const recentOrderCount = 20

func init() {
	api.RegisterModule(RegisterStatsRoutes)
}

func RegisterStatsRoutes(apiGroup *echo.Group, s *api.Services) {
	g := apiGroup.Group("/stats")

	// GET /api/stats/daily – backend aggregate plus this register's own log
	g.GET("/daily", func(c echo.Context) error {
		daily, err := s.Backend.DailyStats(c.Request().Context())
		if err != nil {
			if errors.Is(err, backend.ErrUnavailable) {
				return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		view := echo.Map{"daily": daily}
		if s.DB != nil {
			repo := storageRepo.NewStorageRepository(s.DB)
			if recent, err := repo.RecentOrders(recentOrderCount); err == nil {
				view["recent_orders"] = recent
			}
		}
		return c.JSON(http.StatusOK, view)
	})
}
