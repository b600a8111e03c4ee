package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"assay-backend/internal/models"
	"assay-backend/internal/services"
	"assay-backend/pkg/utils"
)

// GlobalSettingHandler addresses settings by key rather than id.
type GlobalSettingHandler struct {
	Service *services.GlobalSettingService
	Log     logrus.FieldLogger
}

func NewGlobalSettingHandler(s *services.GlobalSettingService, log logrus.FieldLogger) *GlobalSettingHandler {
	return &GlobalSettingHandler{Service: s, Log: log}
}

func (h *GlobalSettingHandler) CreateSetting(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGlobalSettingRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	setting, err := h.Service.CreateSetting(r.Context(), &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, setting)
}

func (h *GlobalSettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.Service.GetSetting(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, setting)
}

func (h *GlobalSettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	p, err := utils.PageRequest(r)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	page, err := h.Service.ListSettings(r.Context(), p)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *GlobalSettingHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateGlobalSettingRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		fail(w, h.Log, r, err)
		return
	}

	setting, err := h.Service.UpdateSetting(r.Context(), mux.Vars(r)["key"], &req)
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, setting)
}

func (h *GlobalSettingHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	changed, err := h.Service.DeleteSetting(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		fail(w, h.Log, r, err)
		return
	}
	writeDeleted(w, changed, "Global setting")
}
