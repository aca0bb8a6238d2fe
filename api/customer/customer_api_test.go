package customer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"meezy.GO/api"
	"meezy.GO/service/backend"
	customerService "meezy.GO/service/customer"
)

func customerTestServer(t *testing.T, handler http.HandlerFunc) (*echo.Echo, *api.Services) {
	t.Helper()
	be := httptest.NewServer(handler)
	t.Cleanup(be.Close)

	client := backend.NewClient(be.URL)
	s := &api.Services{
		Backend:   client,
		Customers: customerService.NewResolver(client),
	}
	e := echo.New()
	RegisterCustomerRoutes(e.Group("/api"), s)
	return e, s
}

func getPicker(t *testing.T, e *echo.Echo, email string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/customers/search?email="+email, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var parsed map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response not JSON: %v\n%s", err, rec.Body.String())
	}
	return parsed
}

func TestSearch_SingleMatchAutoSelects(t *testing.T) {
	e, _ := customerTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 7, "first_name": "Ayşe", "last_name": "Yılmaz", "email": "ayse@x.com"}]`))
	})

	body := getPicker(t, e, "ayse@x.com")
	if body["state"] != "matched" {
		t.Errorf("state = %v, want matched", body["state"])
	}
	selected, ok := body["selected"].(map[string]any)
	if !ok || selected["email"] != "ayse@x.com" {
		t.Errorf("selected = %v, want ayse@x.com in the slot", body["selected"])
	}
}

func TestSearch_ShortQueryGoesInactive(t *testing.T) {
	e, _ := customerTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend reached for a below-minimum query")
	})

	body := getPicker(t, e, "ay")
	if body["state"] != "inactive" {
		t.Errorf("state = %v, want inactive", body["state"])
	}
}

func TestSearch_BackendFailureIsNotNoMatch(t *testing.T) {
	e, _ := customerTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	body := getPicker(t, e, "ayse@x.com")
	if body["state"] != "failed" {
		t.Errorf("state = %v, want failed for a broken lookup", body["state"])
	}
	if body["error"] == nil || body["error"] == "" {
		t.Error("failure not reported in the picker view")
	}
}
