// Package service provides the business logic layer (use cases).
// DecoderService handles digitable-line decoding, validation and
// barcode rendering.
package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/boddenberg/boleto-decoder-go/internal/boleto"
	"github.com/boddenberg/boleto-decoder-go/internal/domain"
	"github.com/boddenberg/boleto-decoder-go/internal/infra/cache"
	"github.com/boddenberg/boleto-decoder-go/internal/infra/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var decoderTracer = otel.Tracer("service/decoder")

// DecoderService orchestrates the boleto decode/validate/render core.
type DecoderService struct {
	svgCache       *cache.InMemory[string]
	metrics        *observability.Metrics
	logger         *zap.Logger
	stripeWidth    int
	maxConcurrency int
}

// NewDecoderService creates a new decoder service. stripeWidth is the
// default narrow-bar width; maxConcurrency bounds batch fan-out.
func NewDecoderService(svgCache *cache.InMemory[string], metrics *observability.Metrics, logger *zap.Logger, stripeWidth, maxConcurrency int) *DecoderService {
	if stripeWidth <= 0 {
		stripeWidth = 4
	}
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &DecoderService{
		svgCache:       svgCache,
		metrics:        metrics,
		logger:         logger,
		stripeWidth:    stripeWidth,
		maxConcurrency: maxConcurrency,
	}
}

// Decode validates a digitable line and returns its decoded fields,
// optionally with the rendered barcode SVG.
func (s *DecoderService) Decode(ctx context.Context, req *domain.DecodeRequest) (*domain.BoletoDetails, error) {
	_, span := decoderTracer.Start(ctx, "DecoderService.Decode")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("decode", time.Since(start)) }()

	if req.DigitableLine == "" {
		return nil, &domain.ErrValidation{Field: "digitable_line", Message: "required"}
	}

	b, err := boleto.New(req.DigitableLine)
	if err != nil {
		s.metrics.IncrDecode("invalid")
		var invalid *domain.ErrInvalidBoleto
		if errors.As(err, &invalid) {
			s.logger.Warn("digitable line rejected",
				zap.String("digits", invalid.Digits),
				zap.String("reason", invalid.Reason),
			)
		}
		return nil, err
	}
	s.metrics.IncrDecode("success")
	span.SetAttributes(attribute.String("boleto.bank_code", b.BankCode()))

	details := s.details(b)
	if req.IncludeImage {
		details.Image = s.svgFor(b, s.width(req.StripeWidth))
	}

	s.logger.Info("digitable line decoded",
		zap.String("decode_id", details.ID),
		zap.String("bank_code", details.BankCode),
		zap.String("amount", details.Amount),
	)

	return details, nil
}

// DecodeBatch decodes multiple lines with bounded concurrency and
// returns one result per line, in input order. Invalid lines produce
// an error message instead of failing the batch.
func (s *DecoderService) DecodeBatch(ctx context.Context, lines []string) []domain.BatchItem {
	_, span := decoderTracer.Start(ctx, "DecoderService.DecodeBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(lines)))

	items := make([]domain.BatchItem, len(lines))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			item := domain.BatchItem{DigitableLine: line}
			b, err := boleto.New(line)
			if err != nil {
				s.metrics.IncrDecode("invalid")
				item.ErrorMessage = err.Error()
			} else {
				s.metrics.IncrDecode("success")
				item.Valid = true
				item.Data = s.details(b)
			}
			items[i] = item
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	return items
}

// Validate checks a digitable line and reports the result in the
// valid/data/error_message response shape.
func (s *DecoderService) Validate(ctx context.Context, line string) (*domain.ValidationResponse, error) {
	_, span := decoderTracer.Start(ctx, "DecoderService.Validate")
	defer span.End()

	if line == "" {
		return nil, &domain.ErrValidation{Field: "digitable_line", Message: "required"}
	}

	b, err := boleto.New(line)
	if err != nil {
		s.metrics.IncrDecode("invalid")
		return &domain.ValidationResponse{Valid: false, ErrorMessage: err.Error()}, nil
	}
	s.metrics.IncrDecode("success")

	return &domain.ValidationResponse{Valid: true, Data: s.details(b)}, nil
}

// RenderBarcode returns the SVG document for a digitable line's
// barcode. Rendered images are cached by barcode and stripe width.
func (s *DecoderService) RenderBarcode(ctx context.Context, line string, stripeWidth int) (string, error) {
	_, span := decoderTracer.Start(ctx, "DecoderService.RenderBarcode")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("render", time.Since(start)) }()

	b, err := boleto.New(line)
	if err != nil {
		s.metrics.IncrDecode("invalid")
		return "", err
	}

	return s.svgFor(b, s.width(stripeWidth)), nil
}

// BankByCode resolves a 3-digit bank code. Directory misses resolve to
// the explicit unknown name rather than an error.
func (s *DecoderService) BankByCode(ctx context.Context, code string) (*domain.BankInfo, error) {
	_, span := decoderTracer.Start(ctx, "DecoderService.BankByCode")
	defer span.End()

	if len(code) != 3 {
		return nil, &domain.ErrValidation{Field: "code", Message: "must be 3 digits"}
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return nil, &domain.ErrValidation{Field: "code", Message: "must be 3 digits"}
		}
	}

	return &domain.BankInfo{Code: code, Name: boleto.BankName(code)}, nil
}

func (s *DecoderService) details(b *boleto.Boleto) *domain.BoletoDetails {
	d := &domain.BoletoDetails{
		ID:            uuid.New().String(),
		DigitableLine: b.Number(),
		PrettyLine:    b.PrettyNumber(),
		Barcode:       b.Barcode(),
		BankCode:      b.BankCode(),
		BankName:      b.Bank(),
		ChecksumDigit: b.ChecksumDigit(),
		DueDate:       b.ExpirationDate().Format(time.RFC3339),
		Amount:        b.Amount(),
		PrettyAmount:  b.PrettyAmount(),
	}
	if cur, ok := b.Currency(); ok {
		d.Currency = &domain.CurrencyInfo{Code: cur.Code, Symbol: cur.Symbol, Decimal: cur.Decimal}
	}
	return d
}

func (s *DecoderService) svgFor(b *boleto.Boleto, stripeWidth int) string {
	key := b.Barcode() + ":" + strconv.Itoa(stripeWidth)
	if img, ok := s.svgCache.Get(key); ok {
		s.metrics.IncrCacheHit("svg")
		return img
	}
	s.metrics.IncrCacheMiss("svg")

	img := b.ToSVG(stripeWidth)
	s.svgCache.Set(key, img)
	s.metrics.IncrRender("svg")
	return img
}

func (s *DecoderService) width(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.stripeWidth
}
