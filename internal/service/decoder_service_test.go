package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/boddenberg/boleto-decoder-go/internal/domain"
	"github.com/boddenberg/boleto-decoder-go/internal/infra/cache"
	"github.com/boddenberg/boleto-decoder-go/internal/infra/observability"
	"github.com/boddenberg/boleto-decoder-go/internal/service"

	"go.uber.org/zap"
)

const validLine = "23793.38128 86000.000009 00000.000380 1 84660000012345"

func newDecoder(svgCache *cache.InMemory[string]) *service.DecoderService {
	return service.NewDecoderService(svgCache, observability.NewMetrics(), zap.NewNop(), 4, 4)
}

func TestDecode_Success(t *testing.T) {
	svc := newDecoder(cache.New[string](5 * time.Minute))

	details, err := svc.Decode(context.Background(), &domain.DecodeRequest{DigitableLine: validLine})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if details.ID == "" {
		t.Error("expected a decode id")
	}
	if details.Barcode != "23791846600000123453381286000000000000000038" {
		t.Errorf("unexpected barcode %q", details.Barcode)
	}
	if details.BankName != "Bradesco" {
		t.Errorf("expected Bradesco, got %s", details.BankName)
	}
	if details.Currency == nil || details.Currency.Code != "BRL" {
		t.Errorf("expected BRL currency, got %+v", details.Currency)
	}
	if details.Amount != "123.45" || details.PrettyAmount != "R$ 123,45" {
		t.Errorf("unexpected amounts: %q / %q", details.Amount, details.PrettyAmount)
	}
	if details.Image != "" {
		t.Error("expected no image without include_image")
	}
}

func TestDecode_IncludeImage(t *testing.T) {
	svc := newDecoder(cache.New[string](5 * time.Minute))

	details, err := svc.Decode(context.Background(), &domain.DecodeRequest{
		DigitableLine: validLine,
		IncludeImage:  true,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.HasPrefix(details.Image, "<svg ") {
		t.Errorf("expected inline SVG image, got %q", details.Image)
	}
}

func TestDecode_Invalid(t *testing.T) {
	svc := newDecoder(cache.New[string](5 * time.Minute))

	_, err := svc.Decode(context.Background(), &domain.DecodeRequest{DigitableLine: "1234567890"})

	var invalid *domain.ErrInvalidBoleto
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidBoleto, got %v", err)
	}
	if invalid.Digits != "1234567890" {
		t.Errorf("expected offending digits in error, got %q", invalid.Digits)
	}
}

func TestDecode_MissingLine(t *testing.T) {
	svc := newDecoder(cache.New[string](5 * time.Minute))

	_, err := svc.Decode(context.Background(), &domain.DecodeRequest{})

	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDecodeBatch_PreservesOrder(t *testing.T) {
	svc := newDecoder(cache.New[string](5 * time.Minute))

	lines := []string{validLine, "not-a-boleto", validLine}
	items := svc.DecodeBatch(context.Background(), lines)

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if !items[0].Valid || items[0].Data == nil {
		t.Errorf("expected first item valid, got %+v", items[0])
	}
	if items[1].Valid || items[1].ErrorMessage == "" {
		t.Errorf("expected second item invalid with message, got %+v", items[1])
	}
	if items[1].DigitableLine != "not-a-boleto" {
		t.Errorf("expected input order preserved, got %q", items[1].DigitableLine)
	}
	if !items[2].Valid {
		t.Errorf("expected third item valid, got %+v", items[2])
	}
}

func TestValidate(t *testing.T) {
	svc := newDecoder(cache.New[string](5 * time.Minute))

	ok, err := svc.Validate(context.Background(), validLine)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok.Valid || ok.Data == nil || ok.Data.BankCode != "237" {
		t.Errorf("unexpected validation result: %+v", ok)
	}

	bad, err := svc.Validate(context.Background(), strings.Repeat("1", 47))
	if err != nil {
		t.Fatalf("expected no error for checksum failure, got %v", err)
	}
	if bad.Valid || bad.ErrorMessage == "" {
		t.Errorf("expected invalid result with message, got %+v", bad)
	}
}

func TestRenderBarcode_Caches(t *testing.T) {
	svgCache := cache.New[string](5 * time.Minute)
	svc := newDecoder(svgCache)

	first, err := svc.RenderBarcode(context.Background(), validLine, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.RenderBarcode(context.Background(), validLine, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first != second {
		t.Error("expected identical cached render")
	}
	if svgCache.Len() != 1 {
		t.Errorf("expected a single cache entry, got %d", svgCache.Len())
	}

	// A different stripe width is a distinct cache entry.
	if _, err := svc.RenderBarcode(context.Background(), validLine, 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if svgCache.Len() != 2 {
		t.Errorf("expected two cache entries, got %d", svgCache.Len())
	}
}

func TestBankByCode(t *testing.T) {
	svc := newDecoder(cache.New[string](5 * time.Minute))

	info, err := svc.BankByCode(context.Background(), "104")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if info.Name != "Caixa Econômica Federal" {
		t.Errorf("unexpected bank name %q", info.Name)
	}

	unknown, err := svc.BankByCode(context.Background(), "000")
	if err != nil {
		t.Fatalf("expected lookup miss to succeed, got %v", err)
	}
	if unknown.Name != "Unknown" {
		t.Errorf("expected Unknown for unlisted code, got %q", unknown.Name)
	}

	_, err = svc.BankByCode(context.Background(), "10")
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation for short code, got %v", err)
	}
}
