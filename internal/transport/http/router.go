package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles everything the router serves.
type Services struct {
	Catalog       EventCatalog
	EventAdmin    EventAdmin
	Admission     RegistrationAdmission
	Registrations RegistrationQueries
	Approvals     ApprovalWorkflow
	Reports       ReportProvider
	Letters       LetterProvider
}

// NewRouter assembles the chi router with the shared middleware stack.
func NewRouter(svcs Services, logger *log.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(func(next http.Handler) http.Handler {
		return RequestLogger(next, logger)
	})
	r.Use(func(next http.Handler) http.Handler {
		return CORS(corsOrigins, next)
	})
	r.Use(WithActor)

	r.Get("/health", HealthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/events", func(r chi.Router) {
		r.Get("/", HandleListEvents(svcs.Catalog))
		r.Post("/", HandleCreateEvent(svcs.EventAdmin))
		r.Get("/{id}", HandleGetEvent(svcs.Catalog))
		r.Put("/{id}", HandleUpdateEvent(svcs.EventAdmin))
		r.Delete("/{id}", HandleDeleteEvent(svcs.EventAdmin))
		r.Put("/{id}/capacity", HandleEditCapacity(svcs.EventAdmin))
		r.Put("/{id}/release-slot", HandleReleaseSlot(svcs.Approvals))
	})

	r.Route("/registrations", func(r chi.Router) {
		r.Post("/", HandleSubmitRegistration(svcs.Admission))
		r.Get("/", HandleListRegistrations(svcs.Registrations))
		r.Get("/all", HandleListByStatus(svcs.Registrations))
		r.Get("/my-status", HandleStatusMap(svcs.Registrations))
		r.Get("/{id}", HandleGetRegistration(svcs.Registrations))
		r.Put("/{id}/approve", HandleApproveRegistration(svcs.Approvals))
		r.Put("/{id}/reject", HandleRejectRegistration(svcs.Approvals))
	})

	r.Get("/letters/{id}", HandleLetterData(svcs.Letters))

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/stats", HandleStatistics(svcs.Reports))
		r.Get("/event-registrations", HandleEventRegistrations(svcs.Reports))
		r.Get("/category-distribution", HandleCategoryDistribution(svcs.Reports))
		r.Get("/monthly-growth", HandleMonthlyGrowth(svcs.Reports))
	})

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return r
}
