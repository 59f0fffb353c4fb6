package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stevedao0/contract-service/internal/controllers"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Health    *controllers.HealthController
	Contracts *controllers.ContractsController
	Annexes   *controllers.AnnexesController
	Works     *controllers.WorksController
	Audit     *controllers.AuditController
	Stats     *controllers.StatsController
}

// NewRouter mounts the public health check and the /api/v1 routes behind
// auth.
func NewRouter(c Controllers, auth mux.MiddlewareFunc) *mux.Router {
	router := mux.NewRouter()

	// Public Routes
	router.HandleFunc(Health, c.Health.HealthCheckHandler).Methods(http.MethodGet)

	// Secured routes
	secured := router.NewRoute().Subrouter()
	secured.Use(auth)

	secured.HandleFunc(Contracts, c.Contracts.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(Contracts, c.Contracts.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(ContractsDetail, c.Contracts.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(ContractsUpdate, c.Contracts.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(ContractsDelete, c.Contracts.DeleteHandler).Methods(http.MethodDelete)

	secured.HandleFunc(Annexes, c.Annexes.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(Annexes, c.Annexes.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(AnnexesDetail, c.Annexes.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(AnnexesUpdate, c.Annexes.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(AnnexesDelete, c.Annexes.DeleteHandler).Methods(http.MethodDelete)

	secured.HandleFunc(Works, c.Works.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(WorksImport, c.Works.ImportHandler).Methods(http.MethodPost)

	secured.HandleFunc(Audit, c.Audit.ListHandler).Methods(http.MethodGet)

	secured.HandleFunc(Stats, c.Stats.DashboardHandler).Methods(http.MethodGet)
	secured.HandleFunc(StatsReport, c.Stats.ReportHandler).Methods(http.MethodGet)

	return router
}
