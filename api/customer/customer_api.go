package customer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"meezy.GO/api"
	"meezy.GO/config"
	customerEntity "meezy.GO/model/entity/customer"
	customerService "meezy.GO/service/customer"
)

func init() {
	api.RegisterModule(RegisterCustomerRoutes)
}

func RegisterCustomerRoutes(apiGroup *echo.Group, s *api.Services) {
	g := apiGroup.Group("/customers")

	// GET /api/customers/search?email= – partial-email lookup feeding the
	// checkout's selection slot
	g.GET("/search", func(c echo.Context) error {
		email := c.QueryParam("email")

		minLen := 3
		if config.AppConfig != nil {
			minLen = config.AppConfig.CustomerMinQuery
		}
		if len([]rune(email)) < minLen {
			s.Customers.Inactive()
			return c.JSON(http.StatusOK, pickerView(s))
		}

		res := s.Customers.Search(c.Request().Context(), email)
		s.Customers.Apply(res)
		return c.JSON(http.StatusOK, pickerView(s))
	})

	// POST /api/customers/select – manual pick from the surfaced list
	g.POST("/select", func(c echo.Context) error {
		var body customerEntity.Customer
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
		}
		s.Customers.Select(body)
		return c.JSON(http.StatusOK, pickerView(s))
	})

	// DELETE /api/customers/select – clear the slot (customer type toggle)
	g.DELETE("/select", func(c echo.Context) error {
		s.Customers.Reset()
		return c.JSON(http.StatusOK, pickerView(s))
	})
}

func pickerView(s *api.Services) echo.Map {
	view := echo.Map{
		"state":   stateName(s.Customers.State()),
		"matches": s.Customers.Matches(),
	}
	if selected, ok := s.Customers.Selected(); ok {
		view["selected"] = selected
	}
	if err := s.Customers.Err(); err != nil {
		view["error"] = err.Error()
	}
	return view
}

func stateName(st customerService.State) string {
	switch st {
	case customerService.StateSearching:
		return "searching"
	case customerService.StateNone:
		return "none"
	case customerService.StateMatched:
		return "matched"
	case customerService.StateFailed:
		return "failed"
	default:
		return "inactive"
	}
}
