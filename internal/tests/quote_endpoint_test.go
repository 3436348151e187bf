package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"rental/internal/handler"
	"rental/internal/service"
)

// ──────────────────────────────────────────────
// QUOTE ENDPOINT
// ──────────────────────────────────────────────

func quoteRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewPricingHandler(service.NewPricingService(service.DefaultRateTable()))
	r := gin.New()
	r.POST("/v1/pricing/quote", h.Quote)
	return r
}

func postQuote(t *testing.T, r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/pricing/quote", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuoteEndpoint_PricesTimeWindow(t *testing.T) {
	t.Parallel()

	r := quoteRouter()
	w := postQuote(t, r, map[string]any{
		"vehicle_class": "STANDARD",
		"planned_start": "2026-03-14T10:00:00Z",
		"planned_end":   "2026-03-14T12:00:00Z",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var quote handler.QuoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &quote); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !almostEqual(quote.Hours, 2.0) {
		t.Errorf("expected 2 hours from the window, got %v", quote.Hours)
	}
	if !almostEqual(quote.TotalAmount, 51.15) {
		t.Errorf("expected total 51.15, got %v", quote.TotalAmount)
	}
	if !almostEqual(quote.SecurityDeposit, 50.0) {
		t.Errorf("expected deposit 50.0, got %v", quote.SecurityDeposit)
	}
}

func TestQuoteEndpoint_RejectsMalformedWindow(t *testing.T) {
	t.Parallel()

	r := quoteRouter()

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing start", map[string]any{"vehicle_class": "STANDARD", "planned_end": "2026-03-14T12:00:00Z"}},
		{"garbage start", map[string]any{"vehicle_class": "STANDARD", "planned_start": "tomorrow", "planned_end": "2026-03-14T12:00:00Z"}},
		{"end before start", map[string]any{"vehicle_class": "STANDARD", "planned_start": "2026-03-14T12:00:00Z", "planned_end": "2026-03-14T10:00:00Z"}},
	}

	for _, tc := range cases {
		if w := postQuote(t, r, tc.body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Code)
		}
	}
}

func TestQuoteEndpoint_UnknownClassPricedAsStandard(t *testing.T) {
	t.Parallel()

	r := quoteRouter()
	w := postQuote(t, r, map[string]any{
		"vehicle_class": "HOVERCRAFT",
		"planned_start": "2026-03-14T10:00:00Z",
		"planned_end":   "2026-03-14T12:00:00Z",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var quote handler.QuoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &quote); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if quote.VehicleClass != "STANDARD" {
		t.Errorf("expected STANDARD fallback, got %s", quote.VehicleClass)
	}
}
