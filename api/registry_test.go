package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	cartService "meezy.GO/service/cart"
)

func TestRegistry_ModuleGetsWiredServices(t *testing.T) {
	RegisterModule(func(g *echo.Group, s *Services) {
		g.GET("/cart/size", func(c echo.Context) error {
			return c.JSON(http.StatusOK, echo.Map{"item_count": s.Cart.ItemCount()})
		})
	})

	e := echo.New()
	ApplyModules(e.Group("/api"), &Services{Cart: cartService.NewStore(nil)})

	req := httptest.NewRequest(http.MethodGet, "/api/cart/size", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "item_count") {
		t.Errorf("body = %s, want the wired cart count", rec.Body.String())
	}
}

func TestRegistry_RootRouteStaysPublic(t *testing.T) {
	RegisterGET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"register": "up"})
	})

	e := echo.New()
	ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
