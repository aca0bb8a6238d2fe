package checkout

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"meezy.GO/api"
	customerEntity "meezy.GO/model/entity/customer"
	"meezy.GO/service/backend"
	orderService "meezy.GO/service/order"
)

func init() {
	api.RegisterModule(RegisterCheckoutRoutes)
}

func RegisterCheckoutRoutes(apiGroup *echo.Group, s *api.Services) {
	// POST /api/checkout – submit the cart as an order
	apiGroup.POST("/checkout", func(c echo.Context) error {
		var body struct {
			PaymentMethod  string              `json:"payment_method"`
			Email          string              `json:"email"`
			NewCustomer    *customerEntity.New `json:"new_customer"`
			Discount       float64             `json:"discount"`
			DiscountReason string              `json:"discount_reason"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		co := orderService.Checkout{
			PaymentMethod:  body.PaymentMethod,
			Email:          body.Email,
			NewCustomer:    body.NewCustomer,
			Discount:       body.Discount,
			DiscountReason: body.DiscountReason,
		}
		// The selection slot stands in when the request names no customer.
		if co.Email == "" && co.NewCustomer == nil {
			if selected, ok := s.Customers.Selected(); ok {
				co.Email = selected.Email
			}
		}

		resp, err := s.Orders.Submit(c.Request().Context(), co)
		if err != nil {
			return c.JSON(checkoutStatus(err), echo.Map{"error": err.Error()})
		}
		s.Customers.Reset()
		return c.JSON(http.StatusOK, echo.Map{
			"status":       resp.Status,
			"order_number": resp.ShopifyOrderNumber,
			"order_id":     resp.ShopifyOrderID,
			"final_amount": resp.FinalAmount,
			"items_count":  resp.ItemsCount,
			"message":      resp.Message,
		})
	})
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, orderService.ErrEmptyCart),
		errors.Is(err, orderService.ErrInvalidPayment),
		errors.Is(err, orderService.ErrNoCustomer):
		return http.StatusUnprocessableEntity
	case errors.Is(err, backend.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, backend.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
