package httpapi

import (
	"net/http"

	"github.com/riskibarqy/spl-fantasy/internal/platform/logging"
	"golang.org/x/time/rate"
)

type routerOptions struct {
	limiter *ipRateLimiter
	metrics *Metrics
}

type RouterOption func(*routerOptions)

// WithRateLimit limits each client address to rps requests per second with
// the given burst. rps <= 0 leaves requests unlimited.
func WithRateLimit(rps float64, burst int) RouterOption {
	return func(o *routerOptions) {
		if rps <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = newIPRateLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics records request metrics and serves them on GET /metrics.
func WithMetrics(m *Metrics) RouterOption {
	return func(o *routerOptions) {
		o.metrics = m
	}
}

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	opts ...RouterOption,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("http")

	var options routerOptions
	for _, opt := range opts {
		opt(&options)
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier)
	if options.metrics != nil {
		mux.Handle("GET /metrics", options.metrics.Handler())
	}

	// Instrument sits directly on the mux so it sees the matched pattern.
	routed := options.metrics.Instrument(mux)
	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, RateLimit(options.limiter, recoverPanic(logger, routed)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
