package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Tenchi88/flask-shop/internal/config"
	"github.com/Tenchi88/flask-shop/internal/errors"
	"github.com/Tenchi88/flask-shop/internal/ratelimit"
	repository "github.com/Tenchi88/flask-shop/internal/repositories"
	"github.com/Tenchi88/flask-shop/internal/utils/response"
)

// APIKeyHeader carries the access-gate credential.
const APIKeyHeader = "X-API-KEY"

// Gate guards routes with two independently togglable checks: the key must
// exist in the api_keys allow-list, and the key's cumulative request count
// must stay within the configured ceiling. The counter increments on every
// gated request, including ones that fail the key check.
type Gate struct {
	keys    repository.APIKeyRepository
	counter *ratelimit.Counter
	cfg     *config.Gate
}

func NewGate(keys repository.APIKeyRepository, counter *ratelimit.Counter, cfg *config.Gate) *Gate {
	return &Gate{keys: keys, counter: counter, cfg: cfg}
}

func (g *Gate) Guard(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		apiKey := r.Header.Get(APIKeyHeader)
		count := g.counter.Incr(apiKey)

		if g.cfg.ValidateAPIKey {
			exists, err := g.keys.Exists(r.Context(), apiKey)
			if err != nil {
				logger.Error("API key lookup failed", slog.String("error", err.Error()))
				response.Error(w, errors.DatabaseError("Failed to verify API key").WithError(err))

				return
			}

			if !exists {
				logger.Warn("Rejected request with unknown API key")
				response.Error(w, errors.UnauthorizedError("Wrong API key"))

				return
			}
		}

		if g.cfg.ValidateRate && count > g.cfg.MaxRequests {
			logger.Warn("Rate limit exceeded", slog.Int64("count", count))
			response.Error(w, errors.TooManyRequestsError("Rate limit exceeded"))

			return
		}

		next.ServeHTTP(w, r)
	}
}
