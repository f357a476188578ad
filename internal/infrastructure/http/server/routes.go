package server

import (
	"net/http"

	"github.com/yuzvak/pos-service/internal/infrastructure/http/middleware"
	"github.com/yuzvak/pos-service/internal/infrastructure/monitoring"
)

const checkoutPath = "/checkout"

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	monitoring.RegisterMetricsEndpoint(mux)

	mux.HandleFunc("GET /health", s.healthHandler.HandleHealth())

	mux.HandleFunc("GET /catalog", s.catalogHandler.HandleList)
	mux.HandleFunc("POST /catalog/refresh", s.catalogHandler.HandleRefresh)

	mux.HandleFunc("GET /cart", s.cartHandler.HandleGetCart)
	mux.HandleFunc("POST /cart/items", s.cartHandler.HandleAddItem)
	mux.HandleFunc("PUT /cart/items/{id}/quantity", s.cartHandler.HandleSetQuantity)
	mux.HandleFunc("PUT /cart/items/{id}/discount", s.cartHandler.HandleSetDiscount)
	mux.HandleFunc("DELETE /cart/items/{id}", s.cartHandler.HandleRemoveItem)
	mux.HandleFunc("PUT /cart/tender", s.cartHandler.HandleSetTender)

	mux.HandleFunc("POST "+checkoutPath, s.checkoutHandler.HandleCheckout())
	mux.HandleFunc("GET /checkouts/{id}", s.checkoutHandler.HandleGetCheckout)

	mux.HandleFunc("POST /stock/purchases", s.stockHandler.HandleRestock)
	mux.HandleFunc("POST /stock/items", s.stockHandler.HandleCreateItem)

	mux.HandleFunc("GET /reports/rekapitulasi", s.reportHandler.HandleRekapitulasi)
	mux.HandleFunc("GET /reports/transactions", s.reportHandler.HandleTransactionHistory)
	mux.HandleFunc("GET /reports/dashboard", s.reportHandler.HandleDashboard)

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger, s.ids)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// timeoutMiddleware bounds every route except POST /checkout. A checkout
// sends its lines one by one and must always report which of them committed,
// so it is only bounded by the per-call inventory client timeout.
func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	bounded := http.TimeoutHandler(next, s.requestTimeout, "Request timeout")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == checkoutPath {
			next.ServeHTTP(w, r)
			return
		}
		bounded.ServeHTTP(w, r)
	})
}
