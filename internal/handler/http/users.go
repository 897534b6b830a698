package http

import (
	"encoding/json"
	"net/http"

	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/utils"
	"github.com/hirepath/hirepath-server/models"
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: "unauthorized"}, http.StatusUnauthorized)
		return
	}

	foundUser, err := h.services.AuthService.GetUser(ctx, userID)
	if err != nil {
		h.writeError(w, r, err, "user lookup failed")
		return
	}

	utils.WriteJSON(w, foundUser.Public(), http.StatusOK)
}

func (h *Handler) updateKPISettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: "unauthorized"}, http.StatusUnauthorized)
		return
	}

	var update models.KPISettingsUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updatedUser, err := h.services.StatsService.UpdateKPISettings(ctx, userID, update)
	if err != nil {
		h.writeError(w, r, err, "kpi settings update failed")
		return
	}

	utils.WriteJSON(w, models.KPISettingsResponse{
		Message:     "KPI settings updated",
		KPISettings: updatedUser.KPISettings,
	}, http.StatusOK)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: "unauthorized"}, http.StatusUnauthorized)
		return
	}

	statsResponse, err := h.services.StatsService.GetStats(ctx, userID)
	if err != nil {
		h.writeError(w, r, err, "stats lookup failed")
		return
	}

	utils.WriteJSON(w, statsResponse, http.StatusOK)
}
