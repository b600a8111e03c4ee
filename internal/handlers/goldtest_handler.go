package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"assay-backend/internal/models"
	"assay-backend/internal/services"
	"assay-backend/pkg/utils"
)

type GoldTestHandler struct {
	Service *services.GoldTestService
	Log     logrus.FieldLogger
}

func NewGoldTestHandler(s *services.GoldTestService, log logrus.FieldLogger) *GoldTestHandler {
	return &GoldTestHandler{Service: s, Log: log}
}

func (h *GoldTestHandler) CreateGoldTest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGoldTestRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	test, err := h.Service.CreateGoldTest(r.Context(), &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, test)
}

func (h *GoldTestHandler) GetGoldTest(w http.ResponseWriter, r *http.Request) {
	test, err := h.Service.GetGoldTest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, test)
}

func (h *GoldTestHandler) ListGoldTests(w http.ResponseWriter, r *http.Request) {
	p, err := utils.PageRequest(r)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	page, err := h.Service.ListGoldTests(r.Context(), p)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *GoldTestHandler) UpdateGoldTest(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateGoldTestRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	test, err := h.Service.UpdateGoldTest(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, test)
}

func (h *GoldTestHandler) DeleteGoldTest(w http.ResponseWriter, r *http.Request) {
	changed, err := h.Service.DeleteGoldTest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	writeDeleted(w, changed, "Gold test")
}
