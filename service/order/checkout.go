// Package order turns the register's cart into an order submission and
// keeps a local log of what went through.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	entity "meezy.GO/model/entity"
	cartEntity "meezy.GO/model/entity/cart"
	customerEntity "meezy.GO/model/entity/customer"
	orderEntity "meezy.GO/model/entity/order"
	"meezy.GO/service/cart"
)

var (
	ErrEmptyCart      = errors.New("order: cart is empty")
	ErrInvalidPayment = errors.New("order: unknown payment method")
	ErrNoCustomer     = errors.New("order: checkout needs a customer")
)

// Submitter sends a finished order to the commerce backend.
type Submitter interface {
	CreateOrder(ctx context.Context, req orderEntity.CreateRequest) (*orderEntity.CreateResponse, error)
}

// OrderLogger records submitted orders locally.
type OrderLogger interface {
	AppendOrderLog(e *entity.OrderLogEntry) error
}

// Checkout is the operator's choices at the payment step. Exactly one of
// Email and NewCustomer must be set.
type Checkout struct {
	PaymentMethod  string
	Email          string
	NewCustomer    *customerEntity.New
	Discount       float64
	DiscountReason string
}

// Service assembles and submits orders from the cart.
type Service struct {
	cart    *cart.Store
	backend Submitter
	logRepo OrderLogger
}

func NewService(cartStore *cart.Store, backend Submitter, logRepo OrderLogger) *Service {
	return &Service{cart: cartStore, backend: backend, logRepo: logRepo}
}

// Submit validates the checkout, builds the order request from the cart and
// sends it. The cart is cleared only after the backend confirms; on any
// failure it stays exactly as it was.
func (s *Service) Submit(ctx context.Context, co Checkout) (*orderEntity.CreateResponse, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	req, err := buildRequest(lines, co)
	if err != nil {
		return nil, err
	}

	resp, err := s.backend.CreateOrder(ctx, *req)
	if err != nil {
		return nil, err
	}

	if s.logRepo != nil {
		logEntry := &entity.OrderLogEntry{
			OrderNumber:   resp.ShopifyOrderNumber,
			PaymentMethod: co.PaymentMethod,
			Total:         resp.FinalAmount,
			ItemsCount:    resp.ItemsCount,
		}
		if err := s.logRepo.AppendOrderLog(logEntry); err != nil {
			log.Printf("order: local log append failed for #%d: %v", resp.ShopifyOrderNumber, err)
		}
	}

	s.cart.Clear()
	return resp, nil
}

func buildRequest(lines []cartEntity.Line, co Checkout) (*orderEntity.CreateRequest, error) {
	if co.PaymentMethod != orderEntity.PaymentCash && co.PaymentMethod != orderEntity.PaymentPOS {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, co.PaymentMethod)
	}
	if err := validateCustomer(co); err != nil {
		return nil, err
	}

	items := make([]orderEntity.Item, 0, len(lines))
	for _, l := range lines {
		if l.IsCustom() {
			items = append(items, orderEntity.Item{
				Type:     "custom",
				Title:    l.Item.Title,
				Size:     l.Size,
				Price:    l.Item.Price,
				Quantity: l.Quantity,
			})
			continue
		}
		items = append(items, orderEntity.Item{
			Barcode:  l.Item.Code(),
			Quantity: l.Quantity,
		})
	}

	return &orderEntity.CreateRequest{
		Items:          items,
		PaymentMethod:  co.PaymentMethod,
		Email:          strings.TrimSpace(co.Email),
		NewCustomer:    co.NewCustomer,
		Discount:       co.Discount,
		DiscountReason: strings.TrimSpace(co.DiscountReason),
	}, nil
}

func validateCustomer(co Checkout) error {
	if co.NewCustomer != nil {
		nc := co.NewCustomer
		if strings.TrimSpace(nc.FirstName) == "" || strings.TrimSpace(nc.LastName) == "" || strings.TrimSpace(nc.Email) == "" {
			return fmt.Errorf("%w: new customer needs first name, last name and email", ErrNoCustomer)
		}
		return nil
	}
	if strings.TrimSpace(co.Email) == "" {
		return ErrNoCustomer
	}
	return nil
}
