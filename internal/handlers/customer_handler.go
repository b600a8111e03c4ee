package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"assay-backend/internal/models"
	"assay-backend/internal/services"
	"assay-backend/pkg/utils"
)

type CustomerHandler struct {
	Service *services.CustomerService
	Log     logrus.FieldLogger
}

func NewCustomerHandler(s *services.CustomerService, log logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{Service: s, Log: log}
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	customer, err := h.Service.CreateCustomer(r.Context(), &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.Service.GetCustomer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	p, err := utils.PageRequest(r)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	page, err := h.Service.ListCustomers(r.Context(), p)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *CustomerHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	p, err := utils.PageRequest(r)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	page, err := h.Service.SearchCustomers(r.Context(), r.URL.Query().Get("q"), p)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCustomerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	customer, err := h.Service.UpdateCustomer(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	changed, err := h.Service.DeleteCustomer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	writeDeleted(w, changed, "Customer")
}
