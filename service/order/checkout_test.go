package order

import (
	"context"
	"errors"
	"testing"

	entity "meezy.GO/model/entity"
	catalogEntity "meezy.GO/model/entity/catalog"
	customerEntity "meezy.GO/model/entity/customer"
	orderEntity "meezy.GO/model/entity/order"
	"meezy.GO/service/cart"
)

type fakeBackend struct {
	req  *orderEntity.CreateRequest
	resp *orderEntity.CreateResponse
	err  error
}

func (f *fakeBackend) CreateOrder(_ context.Context, req orderEntity.CreateRequest) (*orderEntity.CreateResponse, error) {
	f.req = &req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeLog struct {
	entries []entity.OrderLogEntry
	err     error
}

func (f *fakeLog) AppendOrderLog(e *entity.OrderLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *e)
	return nil
}

func confirmed() *orderEntity.CreateResponse {
	return &orderEntity.CreateResponse{
		Status:             "success",
		ShopifyOrderID:     99001,
		ShopifyOrderNumber: 1042,
		FinalAmount:        169.90,
		ItemsCount:         3,
	}
}

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.NewStore(nil)
	s.Add(catalogEntity.Item{ID: 1, Title: "Basic Tee", Barcode: "8690123456789", Price: 49.90, InventoryQuantity: 12})
	s.Add(catalogEntity.Item{ID: 2, Title: "Hoodie", SKU: "HOOD-M", Price: 120, InventoryQuantity: 3})
	if _, err := s.AddCustom("Tadilat", 30, 1, "XL"); err != nil {
		t.Fatalf("AddCustom: %v", err)
	}
	return s
}

func TestSubmit_BuildsRequestFromCart(t *testing.T) {
	store := filledCart(t)
	be := &fakeBackend{resp: confirmed()}
	svc := NewService(store, be, nil)

	_, err := svc.Submit(context.Background(), Checkout{
		PaymentMethod: orderEntity.PaymentCash,
		Email:         "ayse@x.com",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	items := be.req.Items
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].Barcode != "8690123456789" || items[0].Quantity != 1 || items[0].Type != "" {
		t.Errorf("barcode line = %+v", items[0])
	}
	// No barcode falls back to the SKU as the line code.
	if items[1].Barcode != "HOOD-M" {
		t.Errorf("sku line code = %q, want HOOD-M", items[1].Barcode)
	}
	if items[2].Type != "custom" || items[2].Title != "Tadilat" || items[2].Size != "XL" || items[2].Price != 30 {
		t.Errorf("custom line = %+v", items[2])
	}
	if be.req.Email != "ayse@x.com" || be.req.PaymentMethod != orderEntity.PaymentCash {
		t.Errorf("checkout fields = %+v", be.req)
	}
}

func TestSubmit_ClearsCartOnlyOnSuccess(t *testing.T) {
	store := filledCart(t)
	be := &fakeBackend{err: errors.New("backend down")}
	svc := NewService(store, be, nil)

	if _, err := svc.Submit(context.Background(), Checkout{
		PaymentMethod: orderEntity.PaymentPOS,
		Email:         "ayse@x.com",
	}); err == nil {
		t.Fatal("Submit succeeded against a failing backend")
	}
	if len(store.Lines()) != 3 {
		t.Fatalf("cart lines = %d, want untouched cart after failure", len(store.Lines()))
	}

	be.err = nil
	be.resp = confirmed()
	if _, err := svc.Submit(context.Background(), Checkout{
		PaymentMethod: orderEntity.PaymentPOS,
		Email:         "ayse@x.com",
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(store.Lines()) != 0 {
		t.Errorf("cart lines = %d, want cleared after confirmation", len(store.Lines()))
	}
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name string
		co   Checkout
		want error
	}{
		{"bad payment", Checkout{PaymentMethod: "iban", Email: "a@x.com"}, ErrInvalidPayment},
		{"no customer", Checkout{PaymentMethod: orderEntity.PaymentCash}, ErrNoCustomer},
		{"incomplete new customer", Checkout{
			PaymentMethod: orderEntity.PaymentCash,
			NewCustomer:   &customerEntity.New{FirstName: "Ayşe"},
		}, ErrNoCustomer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := filledCart(t)
			svc := NewService(store, &fakeBackend{resp: confirmed()}, nil)
			_, err := svc.Submit(context.Background(), tc.co)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if len(store.Lines()) != 3 {
				t.Error("validation failure touched the cart")
			}
		})
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	svc := NewService(cart.NewStore(nil), &fakeBackend{}, nil)
	if _, err := svc.Submit(context.Background(), Checkout{
		PaymentMethod: orderEntity.PaymentCash,
		Email:         "a@x.com",
	}); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}
}

func TestSubmit_NewCustomerAccepted(t *testing.T) {
	store := filledCart(t)
	be := &fakeBackend{resp: confirmed()}
	svc := NewService(store, be, nil)

	nc := &customerEntity.New{FirstName: "Ayşe", LastName: "Yılmaz", Email: "ayse@x.com"}
	if _, err := svc.Submit(context.Background(), Checkout{
		PaymentMethod: orderEntity.PaymentCash,
		NewCustomer:   nc,
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if be.req.NewCustomer == nil || be.req.NewCustomer.Email != "ayse@x.com" {
		t.Errorf("new customer not forwarded: %+v", be.req.NewCustomer)
	}
}

func TestSubmit_AppendsOrderLog(t *testing.T) {
	store := filledCart(t)
	logRepo := &fakeLog{}
	svc := NewService(store, &fakeBackend{resp: confirmed()}, logRepo)

	if _, err := svc.Submit(context.Background(), Checkout{
		PaymentMethod: orderEntity.PaymentCash,
		Email:         "ayse@x.com",
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(logRepo.entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(logRepo.entries))
	}
	e := logRepo.entries[0]
	if e.OrderNumber != 1042 || e.Total != 169.90 || e.ItemsCount != 3 || e.PaymentMethod != orderEntity.PaymentCash {
		t.Errorf("log entry = %+v", e)
	}
}

func TestSubmit_LogFailureDoesNotFailOrder(t *testing.T) {
	store := filledCart(t)
	svc := NewService(store, &fakeBackend{resp: confirmed()}, &fakeLog{err: errors.New("disk full")})

	resp, err := svc.Submit(context.Background(), Checkout{
		PaymentMethod: orderEntity.PaymentCash,
		Email:         "ayse@x.com",
	})
	if err != nil || resp == nil {
		t.Fatalf("Submit failed on a log error: %v", err)
	}
	if len(store.Lines()) != 0 {
		t.Error("cart not cleared after confirmed order")
	}
}
