package media

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"meezy.GO/api"
	mediaService "meezy.GO/service/media"
)

func init() {
	api.RegisterModule(RegisterMediaRoutes)
}

func RegisterMediaRoutes(apiGroup *echo.Group, s *api.Services) {
	// GET /api/media/thumb?url=&size= – webp preview of a catalog image
	// (public, see auth skipper)
	apiGroup.GET("/media/thumb", func(c echo.Context) error {
		imageURL := c.QueryParam("url")
		if imageURL == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "url is required"})
		}
		edge := mediaService.DefaultEdge
		if v := c.QueryParam("size"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > 1024 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "size must be 1-1024"})
			}
			edge = n
		}

		payload, err := s.Media.Thumbnail(c.Request().Context(), imageURL, edge)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		return c.Blob(http.StatusOK, "image/webp", payload)
	})
}
