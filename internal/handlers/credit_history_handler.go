package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"assay-backend/internal/models"
	"assay-backend/internal/services"
	"assay-backend/pkg/utils"
)

type CreditHistoryHandler struct {
	Service *services.CreditHistoryService
	Log     logrus.FieldLogger
}

func NewCreditHistoryHandler(s *services.CreditHistoryService, log logrus.FieldLogger) *CreditHistoryHandler {
	return &CreditHistoryHandler{Service: s, Log: log}
}

// CreateEntry applies a credit or debit and returns the entry with the
// customer's new balance.
func (h *CreditHistoryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCreditHistoryRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	result, err := h.Service.CreateEntry(r.Context(), req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, result)
}

func (h *CreditHistoryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	p, err := utils.PageRequest(r)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	page, err := h.Service.ListEntries(r.Context(), p)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *CreditHistoryHandler) ListCustomerEntries(w http.ResponseWriter, r *http.Request) {
	p, err := utils.PageRequest(r)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	page, err := h.Service.ListCustomerEntries(r.Context(), mux.Vars(r)["id"], p)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *CreditHistoryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Service.GetEntry(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

func (h *CreditHistoryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	changed, err := h.Service.DeleteEntry(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	writeDeleted(w, changed, "Credit history record")
}
