package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/boddenberg/boleto-decoder-go/internal/domain"
	"github.com/boddenberg/boleto-decoder-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBatchSize bounds decode-batch requests; larger batches should be
// split by the caller.
const maxBatchSize = 100

func decodeHandler(decoderSvc *service.DecoderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/boletos/decode")
		defer span.End()

		var req domain.DecodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		details, err := decoderSvc.Decode(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, details)
	}
}

func decodeBatchHandler(decoderSvc *service.DecoderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/boletos/decode-batch")
		defer span.End()

		var req domain.DecodeBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.DigitableLines) == 0 {
			handleServiceError(w, &domain.ErrValidation{Field: "digitable_lines", Message: "required"}, logger)
			return
		}
		if len(req.DigitableLines) > maxBatchSize {
			handleServiceError(w, &domain.ErrValidation{
				Field:   "digitable_lines",
				Message: "batch too large, max " + strconv.Itoa(maxBatchSize),
			}, logger)
			return
		}

		items := decoderSvc.DecodeBatch(ctx, req.DigitableLines)
		writeJSON(w, http.StatusOK, items)
	}
}

func validateHandler(decoderSvc *service.DecoderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/boletos/validate")
		defer span.End()

		var body struct {
			DigitableLine string `json:"digitable_line"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := decoderSvc.Validate(ctx, body.DigitableLine)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func barcodeSVGHandler(decoderSvc *service.DecoderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/boletos/{digits}/barcode.svg")
		defer span.End()

		digits := chi.URLParam(r, "digits")

		stripeWidth := 0
		if v := r.URL.Query().Get("stripe_width"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > 100 {
				handleServiceError(w, &domain.ErrValidation{Field: "stripe_width", Message: "must be a positive integer"}, logger)
				return
			}
			stripeWidth = n
		}

		img, err := decoderSvc.RenderBarcode(ctx, digits, stripeWidth)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, img)
	}
}

func bankLookupHandler(decoderSvc *service.DecoderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/banks/{code}")
		defer span.End()

		info, err := decoderSvc.BankByCode(ctx, chi.URLParam(r, "code"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, info)
	}
}
