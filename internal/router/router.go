package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/internal/auth"
	"github.com/Mystick682/ExTremeData/internal/handler"
)

func SetupRoutes(
	purchaseHandler *handler.PurchaseHandler,
	verifyHandler *handler.VerifyHandler,
	authMiddleware *auth.Middleware,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS; preflight OPTIONS requests are acknowledged here.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Spends: everything behind identity resolution.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/purchase-airtime", purchaseHandler.HandleAirtime)
			r.Post("/purchase-data", purchaseHandler.HandleData)
			r.Post("/purchase-cable", purchaseHandler.HandleCable)
			r.Post("/purchase-electricity", purchaseHandler.HandleElectricity)
			r.Post("/purchase-betting", purchaseHandler.HandleBetting)
			r.Post("/purchase-education", purchaseHandler.HandleEducation)
			r.Post("/process-transfer", purchaseHandler.HandleTransfer)
		})

		// Read-only verification proxies.
		r.Post("/verify-meter", verifyHandler.HandleVerifyMeter)
		r.Post("/verify-smartcard", verifyHandler.HandleVerifySmartcard)
		r.Post("/verify-betting-account", verifyHandler.HandleVerifyBettingAccount)
		r.Post("/verify-bank-account", verifyHandler.HandleVerifyBankAccount)
		r.Post("/get-service-variations", verifyHandler.HandleServiceVariations)
	})

	return r
}

// LoggerMiddleware logs HTTP requests
func LoggerMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr))
		})
	}
}
