package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"assay-backend/internal/models"
	"assay-backend/internal/services"
	"assay-backend/pkg/utils"
)

type WeightLossHandler struct {
	Service *services.WeightLossService
	Log     logrus.FieldLogger
}

func NewWeightLossHandler(s *services.WeightLossService, log logrus.FieldLogger) *WeightLossHandler {
	return &WeightLossHandler{Service: s, Log: log}
}

func (h *WeightLossHandler) CreateWeightLoss(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWeightLossRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	entry, err := h.Service.CreateWeightLoss(r.Context(), &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, entry)
}

func (h *WeightLossHandler) GetWeightLoss(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Service.GetWeightLoss(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

func (h *WeightLossHandler) ListWeightLoss(w http.ResponseWriter, r *http.Request) {
	p, err := utils.PageRequest(r)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	page, err := h.Service.ListWeightLoss(r.Context(), p)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *WeightLossHandler) ListCustomerWeightLoss(w http.ResponseWriter, r *http.Request) {
	p, err := utils.PageRequest(r)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	page, err := h.Service.ListCustomerWeightLoss(r.Context(), mux.Vars(r)["id"], p)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *WeightLossHandler) UpdateWeightLoss(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateWeightLossRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	entry, err := h.Service.UpdateWeightLoss(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

func (h *WeightLossHandler) DeleteWeightLoss(w http.ResponseWriter, r *http.Request) {
	changed, err := h.Service.DeleteWeightLoss(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	writeDeleted(w, changed, "Weight loss history record")
}
