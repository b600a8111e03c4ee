package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"assay-backend/internal/handlers"
	"assay-backend/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Customer          *handlers.CustomerHandler
	CreditHistory     *handlers.CreditHistoryHandler
	GoldCertificate   *handlers.CertificateHandler
	SilverCertificate *handlers.CertificateHandler
	PhotoCertificate  *handlers.CertificateHandler
	GoldTest          *handlers.GoldTestHandler
	WeightLoss        *handlers.WeightLossHandler
	GlobalSetting     *handlers.GlobalSettingHandler
	Health            *handlers.HealthHandler
	LedgerEvents      http.HandlerFunc
}

// NewRouter wires all routes. authMiddleware may be nil, in which case the
// API is open.
func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Public routes
	r.HandleFunc("/", h.Health.Root).Methods("GET")
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	if authMiddleware != nil {
		api.Use(authMiddleware.Authenticate)
	}

	// Customers
	api.HandleFunc("/customers", h.Customer.CreateCustomer).Methods("POST")
	api.HandleFunc("/customers", h.Customer.ListCustomers).Methods("GET")
	api.HandleFunc("/customers/search", h.Customer.SearchCustomers).Methods("GET")
	api.HandleFunc("/customers/{id}", h.Customer.GetCustomer).Methods("GET")
	api.HandleFunc("/customers/{id}", h.Customer.UpdateCustomer).Methods("PUT")
	api.HandleFunc("/customers/{id}", h.Customer.DeleteCustomer).Methods("DELETE")
	api.HandleFunc("/customers/{id}/credithistory", h.CreditHistory.ListCustomerEntries).Methods("GET")
	api.HandleFunc("/customers/{id}/weightlosshistory", h.WeightLoss.ListCustomerWeightLoss).Methods("GET")

	// Credit history (ledger)
	api.HandleFunc("/credithistory", h.CreditHistory.CreateEntry).Methods("POST")
	api.HandleFunc("/credithistory", h.CreditHistory.ListEntries).Methods("GET")
	api.HandleFunc("/credithistory/{id}", h.CreditHistory.GetEntry).Methods("GET")
	api.HandleFunc("/credithistory/{id}", h.CreditHistory.DeleteEntry).Methods("DELETE")

	// Certificates
	for _, ch := range []*handlers.CertificateHandler{h.GoldCertificate, h.SilverCertificate, h.PhotoCertificate} {
		base := "/" + ch.Kind.Table()
		api.HandleFunc(base, ch.CreateCertificate).Methods("POST")
		api.HandleFunc(base, ch.ListCertificates).Methods("GET")
		api.HandleFunc(base+"/{id}", ch.GetCertificate).Methods("GET")
		api.HandleFunc(base+"/{id}", ch.UpdateCertificate).Methods("PUT")
		api.HandleFunc(base+"/{id}", ch.DeleteCertificate).Methods("DELETE")
		api.HandleFunc(base+"/{id}/pdf", ch.DownloadPDF).Methods("GET")
	}
	api.HandleFunc("/photocertificate/{id}/media", h.PhotoCertificate.UploadMedia).Methods("POST")
	api.HandleFunc("/photocertificate/{id}/media", h.PhotoCertificate.MediaRedirect).Methods("GET")

	// Gold tests
	api.HandleFunc("/goldtest", h.GoldTest.CreateGoldTest).Methods("POST")
	api.HandleFunc("/goldtest", h.GoldTest.ListGoldTests).Methods("GET")
	api.HandleFunc("/goldtest/{id}", h.GoldTest.GetGoldTest).Methods("GET")
	api.HandleFunc("/goldtest/{id}", h.GoldTest.UpdateGoldTest).Methods("PUT")
	api.HandleFunc("/goldtest/{id}", h.GoldTest.DeleteGoldTest).Methods("DELETE")

	// Weight loss history
	api.HandleFunc("/weightlosshistory", h.WeightLoss.CreateWeightLoss).Methods("POST")
	api.HandleFunc("/weightlosshistory", h.WeightLoss.ListWeightLoss).Methods("GET")
	api.HandleFunc("/weightlosshistory/{id}", h.WeightLoss.GetWeightLoss).Methods("GET")
	api.HandleFunc("/weightlosshistory/{id}", h.WeightLoss.UpdateWeightLoss).Methods("PUT")
	api.HandleFunc("/weightlosshistory/{id}", h.WeightLoss.DeleteWeightLoss).Methods("DELETE")

	// Global settings, addressed by key
	api.HandleFunc("/globals", h.GlobalSetting.CreateSetting).Methods("POST")
	api.HandleFunc("/globals", h.GlobalSetting.ListSettings).Methods("GET")
	api.HandleFunc("/globals/{key}", h.GlobalSetting.GetSetting).Methods("GET")
	api.HandleFunc("/globals/{key}", h.GlobalSetting.UpdateSetting).Methods("PUT")
	api.HandleFunc("/globals/{key}", h.GlobalSetting.DeleteSetting).Methods("DELETE")

	// Live ledger feed
	if h.LedgerEvents != nil {
		api.HandleFunc("/events/ledger", h.LedgerEvents).Methods("GET")
	}

	return r
}
