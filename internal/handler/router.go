package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/boleto-decoder-go/internal/domain"
	"github.com/boddenberg/boleto-decoder-go/internal/infra/observability"
	"github.com/boddenberg/boleto-decoder-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// healthCheckLine is a known-valid digitable line used by the liveness
// probe to exercise the whole decode pipeline.
const healthCheckLine = "23793381288600000000900000000380184660000012345"

// NewRouter creates the HTTP router with all routes and middleware.
// authSvc may be nil, which leaves /v1 unauthenticated (dev mode).
func NewRouter(decoderSvc *service.DecoderService, authSvc *service.AuthService, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(decoderSvc))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		if authSvc != nil {
			r.Use(JWTAuthMiddleware(authSvc, logger))
		}

		// Decode & validation
		r.Post("/boletos/decode", decodeHandler(decoderSvc, logger))
		r.Post("/boletos/decode-batch", decodeBatchHandler(decoderSvc, logger))
		r.Post("/boletos/validate", validateHandler(decoderSvc, logger))

		// Rendering
		r.Get("/boletos/{digits}/barcode.svg", barcodeSVGHandler(decoderSvc, logger))

		// Lookups & metrics
		r.Get("/banks/{code}", bankLookupHandler(decoderSvc, logger))
		r.Get("/metrics/decoder", decoderMetricsHandler(metrics))
	})

	return r
}

// ============================================================
// Probes
// ============================================================

func healthzHandler(decoderSvc *service.DecoderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "boleto-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if decoderSvc != nil {
			start := time.Now()
			_, err := decoderSvc.Validate(ctx, healthCheckLine)
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "decoder", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func decoderMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetDecoderSnapshot())
	}
}
