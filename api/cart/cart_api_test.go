package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"meezy.GO/api"
	"meezy.GO/service/backend"
	cartService "meezy.GO/service/cart"
	"meezy.GO/service/catalog"
	"meezy.GO/service/pos"
)

func cartTestServer(t *testing.T) (*echo.Echo, *api.Services) {
	t.Helper()
	fixture := `[
		{"id": 1, "title": "Basic Tee", "barcode": "8690123456789", "sku": "TEE-M", "price": 49.90, "inventory_quantity": 12},
		{"id": 2, "title": "Sold Out Cap", "barcode": "8690000000000", "sku": "CAP-1", "price": 25, "inventory_quantity": 0}
	]`
	be := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/product/8690123456789"):
			w.Write([]byte(`[{"id": 1, "title": "Basic Tee", "barcode": "8690123456789", "sku": "TEE-M", "price": 49.90, "inventory_quantity": 12}]`))
		case strings.HasPrefix(r.URL.Path, "/product/"):
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Path == "/products":
			w.Write([]byte(fixture))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(be.Close)

	client := backend.NewClient(be.URL)
	resolver := catalog.NewResolver(client)
	store := cartService.NewStore(nil)
	s := &api.Services{
		Backend:  client,
		Catalog:  resolver,
		Cart:     store,
		Register: pos.NewController(store, resolver, nil),
	}

	e := echo.New()
	RegisterCartRoutes(e.Group("/api"), s)
	return e, s
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var parsed map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response not JSON: %v\n%s", err, rec.Body.String())
	}
	return rec, parsed
}

func TestScan_KnownBarcodeLandsInCart(t *testing.T) {
	e, s := cartTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/cart/scan", `{"code":"8690123456789"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if body["action"] != "added" {
		t.Errorf("action = %v, want added", body["action"])
	}
	if s.Cart.Total() != 49.90 {
		t.Errorf("cart total = %v, want 49.90", s.Cart.Total())
	}
}

func TestScan_SecondScanRefused(t *testing.T) {
	e, s := cartTestServer(t)

	doJSON(t, e, http.MethodPost, "/api/cart/scan", `{"code":"8690123456789"}`)
	_, body := doJSON(t, e, http.MethodPost, "/api/cart/scan", `{"code":"8690123456789"}`)
	if body["action"] != "already_in_cart" {
		t.Errorf("action = %v, want already_in_cart", body["action"])
	}
	if s.Cart.ItemCount() != 1 {
		t.Errorf("item count = %d, want 1", s.Cart.ItemCount())
	}
}

func TestScan_OutOfStockBlocked(t *testing.T) {
	e, s := cartTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/cart/scan", `{"code":"8690000000000"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if body["action"] != "blocked_stock" {
		t.Errorf("action = %v, want blocked_stock", body["action"])
	}
	if len(s.Cart.Lines()) != 0 {
		t.Error("blocked item reached the cart")
	}
}

func TestCommit_FreeTextTakesFirstRanked(t *testing.T) {
	e, s := cartTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/cart/commit", `{"q":"tee"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if body["action"] != "added" {
		t.Errorf("action = %v, want added", body["action"])
	}
	lines := s.Cart.Lines()
	if len(lines) != 1 || lines[0].Item.ID != 1 {
		t.Errorf("lines = %+v, want the ranked first match", lines)
	}
}

func TestCommit_NoMatchIs404(t *testing.T) {
	e, _ := cartTestServer(t)
	rec, body := doJSON(t, e, http.MethodPost, "/api/cart/commit", `{"q":"yok"}`)
	if rec.Code != http.StatusNotFound || body["action"] != "not_found" {
		t.Errorf("status=%d action=%v, want 404 not_found", rec.Code, body["action"])
	}
}

func TestCustomLine_ValidationAndQuantityFlow(t *testing.T) {
	e, s := cartTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/cart/custom", `{"title":"","price":10}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty title status = %d, want 422", rec.Code)
	}

	rec, body := doJSON(t, e, http.MethodPost, "/api/cart/custom", `{"title":"Tadilat","price":30,"quantity":2,"size":"XL"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	line := body["line"].(map[string]any)
	key := line["key"].(string)

	rec, _ = doJSON(t, e, http.MethodPut, "/api/cart/items/"+key, `{"quantity":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	if len(s.Cart.Lines()) != 0 {
		t.Error("quantity zero did not remove the line")
	}
}

func TestClearCart(t *testing.T) {
	e, s := cartTestServer(t)
	doJSON(t, e, http.MethodPost, "/api/cart/scan", `{"code":"8690123456789"}`)

	rec, body := doJSON(t, e, http.MethodDelete, "/api/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["item_count"].(float64) != 0 || len(s.Cart.Lines()) != 0 {
		t.Error("cart not cleared")
	}
}
