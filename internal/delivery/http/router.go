package httpapi

import (
	"net/http"

	"github.com/LavaJover/cruise-commission-service/internal/delivery/http/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Commission     *handlers.CommissionHandler
	Relations      *handlers.RelationsHandler
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		if deps.Commission != nil {
			r.Post("/leads/{leadID}/purchases", deps.Commission.LeadPurchased)
			r.Route("/sales/{saleID}", func(r chi.Router) {
				r.Get("/", deps.Commission.GetSale)
				r.Post("/ledger-sync", deps.Commission.RetryLedgerSync)
			})
		}
		if deps.Relations != nil {
			r.Route("/partners/relations", func(r chi.Router) {
				r.Post("/", deps.Relations.AssignAgent)
				r.Get("/{agentID}", deps.Relations.GetActiveManager)
				r.Delete("/{agentID}", deps.Relations.DisconnectAgent)
			})
			r.Get("/partners/{managerID}/agents", deps.Relations.ListAgents)
		}
	})

	return r
}
