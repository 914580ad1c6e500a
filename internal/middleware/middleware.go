package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/mmoldabe-dev/ListingSubscriptions/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LogginMiddleware(log *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := time.Now() // засекаем время старта
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			took := time.Since(t)
			if m != nil {
				route := r.Pattern
				if route == "" {
					route = "unmatched"
				}
				m.ObserveRequest(route, rec.status, took)
			}

			log.Info("request processed",
				slog.String("method", r.Method), slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Duration("duration", took),
			)
		})
	}
}

func RecoverMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					// если все упало — пишем в логи чтоб не пропустить
					log.Error("panic recovered",
						slog.Any("err", err),
						slog.String("url", r.URL.Path))

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func JSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ставим заголовок для всех ответов
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

var corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}

// CORS открытый для любых origin, preflight отвечает 200.
// Заголовки ставим на каждый ответ, даже без Origin в запросе.
func CORS(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       corsMethods,
		AllowedHeaders:       []string{"*"},
		OptionsSuccessStatus: http.StatusOK,
	})
	h := c.Handler(next)
	methods := strings.Join(corsMethods, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("Access-Control-Allow-Origin", "*")
		hdr.Set("Access-Control-Allow-Methods", methods)
		hdr.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		h.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
