package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boddenberg/boleto-decoder-go/internal/domain"
)

const testLine = "23793.38128 86000.000009 00000.000380 1 84660000012345"

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDecodeEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	rec := postJSON(t, router, "/v1/boletos/decode", domain.DecodeRequest{DigitableLine: testLine})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var details domain.BoletoDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if details.BankName != "Bradesco" {
		t.Errorf("expected Bradesco, got %s", details.BankName)
	}
	if details.Barcode != "23791846600000123453381286000000000000000038" {
		t.Errorf("unexpected barcode %q", details.Barcode)
	}
	if details.PrettyLine != testLine {
		t.Errorf("unexpected pretty line %q", details.PrettyLine)
	}
	if details.Amount != "123.45" {
		t.Errorf("unexpected amount %q", details.Amount)
	}
	if details.Image != "" {
		t.Error("expected no image by default")
	}
}

func TestDecodeEndpoint_WithImage(t *testing.T) {
	router := newTestRouter(nil)

	rec := postJSON(t, router, "/v1/boletos/decode", domain.DecodeRequest{
		DigitableLine: testLine,
		IncludeImage:  true,
		StripeWidth:   2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var details domain.BoletoDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !strings.HasPrefix(details.Image, "<svg ") {
		t.Errorf("expected inline SVG, got %q", details.Image)
	}
}

func TestDecodeEndpoint_Invalid(t *testing.T) {
	router := newTestRouter(nil)

	rec := postJSON(t, router, "/v1/boletos/decode", domain.DecodeRequest{DigitableLine: "1234567890"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDecodeEndpoint_BadBody(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/boletos/decode", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestDecodeBatchEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	rec := postJSON(t, router, "/v1/boletos/decode-batch", domain.DecodeBatchRequest{
		DigitableLines: []string{testLine, "garbage"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []domain.BatchItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].Valid || items[1].Valid {
		t.Errorf("unexpected batch validity: %+v", items)
	}
}

func TestDecodeBatchEndpoint_Empty(t *testing.T) {
	router := newTestRouter(nil)

	rec := postJSON(t, router, "/v1/boletos/decode-batch", domain.DecodeBatchRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty batch, got %d", rec.Code)
	}
}

func TestValidateEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	rec := postJSON(t, router, "/v1/boletos/validate", map[string]string{"digitable_line": testLine})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.ValidationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Valid || resp.Data == nil {
		t.Errorf("expected valid response with data, got %+v", resp)
	}

	rec = postJSON(t, router, "/v1/boletos/validate", map[string]string{"digitable_line": "123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for invalid line, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Valid || resp.ErrorMessage == "" {
		t.Errorf("expected invalid response with message, got %+v", resp)
	}
}

func TestBarcodeSVGEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/boletos/23793381288600000000900000000380184660000012345/barcode.svg?stripe_width=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("expected image/svg+xml, got %s", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg ") {
		t.Errorf("expected SVG body, got %q", rec.Body.String()[:40])
	}
}

func TestBarcodeSVGEndpoint_BadWidth(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/boletos/23793381288600000000900000000380184660000012345/barcode.svg?stripe_width=-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad stripe width, got %d", rec.Code)
	}
}

func TestBankLookupEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/banks/341", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var info domain.BankInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if info.Name != "Itaú" {
		t.Errorf("expected Itaú, got %s", info.Name)
	}
}

func TestDecoderMetricsEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	// Generate some traffic first.
	postJSON(t, router, "/v1/boletos/decode", domain.DecodeRequest{DigitableLine: testLine})
	postJSON(t, router, "/v1/boletos/decode", domain.DecodeRequest{DigitableLine: "junk"})

	req := httptest.NewRequest(http.MethodGet, "/v1/metrics/decoder", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var snapshot domain.DecoderMetrics
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if snapshot.TotalDecodes != 2 {
		t.Errorf("expected 2 decodes, got %d", snapshot.TotalDecodes)
	}
	if snapshot.ErrorRate != 0.5 {
		t.Errorf("expected error rate 0.5, got %f", snapshot.ErrorRate)
	}
}
