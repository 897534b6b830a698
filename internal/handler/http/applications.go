package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/utils"
	"github.com/hirepath/hirepath-server/models"
	"github.com/go-chi/chi/v5"
)

// applicationIDFromRequest parses the {id} route parameter.
func applicationIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) createApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: "unauthorized"}, http.StatusUnauthorized)
		return
	}

	var application models.JobApplication
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&application); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	createdApplication, err := h.services.ApplicationService.Create(ctx, userID, application)
	if err != nil {
		h.writeError(w, r, err, "application creation failed")
		return
	}

	utils.WriteJSON(w, createdApplication, http.StatusCreated)
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: "unauthorized"}, http.StatusUnauthorized)
		return
	}

	applicationID, err := applicationIDFromRequest(r)
	if err != nil {
		utils.WriteJSON(w, models.ErrorResponse{Message: "invalid application id"}, http.StatusBadRequest)
		return
	}

	foundApplication, err := h.services.ApplicationService.Get(ctx, userID, applicationID)
	if err != nil {
		h.writeError(w, r, err, "application not found")
		return
	}

	utils.WriteJSON(w, foundApplication, http.StatusOK)
}

// filterFromQuery assembles an ApplicationFilter from the list endpoint's
// query parameters. The deadline bucket is read from submissionDeadline,
// with deadline accepted as a shorthand alias.
func filterFromQuery(r *http.Request) (models.ApplicationFilter, error) {
	query := r.URL.Query()

	deadline := query.Get("submissionDeadline")
	if deadline == "" {
		deadline = query.Get("deadline")
	}

	filter := models.ApplicationFilter{
		Status:      query.Get("status"),
		CompanyName: query.Get("companyName"),
		Deadline:    deadline,
		Sort:        query.Get("sort"),
	}

	if raw := query.Get("isDreamCompany"); raw != "" {
		isDream, err := strconv.ParseBool(raw)
		if err != nil {
			return models.ApplicationFilter{}, err
		}
		filter.IsDreamCompany = &isDream
	}

	return filter, nil
}

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: "unauthorized"}, http.StatusUnauthorized)
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		utils.WriteJSON(w, models.ErrorResponse{Message: "invalid isDreamCompany value"}, http.StatusBadRequest)
		return
	}

	applications, err := h.services.ApplicationService.List(ctx, userID, filter)
	if err != nil {
		h.writeError(w, r, err, "listing applications failed")
		return
	}

	if applications == nil {
		applications = []models.JobApplication{}
	}

	utils.WriteJSON(w, applications, http.StatusOK)
}

func (h *Handler) updateApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: "unauthorized"}, http.StatusUnauthorized)
		return
	}

	applicationID, err := applicationIDFromRequest(r)
	if err != nil {
		utils.WriteJSON(w, models.ErrorResponse{Message: "invalid application id"}, http.StatusBadRequest)
		return
	}

	var update models.ApplicationUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updatedApplication, err := h.services.ApplicationService.Update(ctx, userID, applicationID, update)
	if err != nil {
		h.writeError(w, r, err, "application update failed")
		return
	}

	utils.WriteJSON(w, updatedApplication, http.StatusOK)
}

func (h *Handler) deleteApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: "unauthorized"}, http.StatusUnauthorized)
		return
	}

	applicationID, err := applicationIDFromRequest(r)
	if err != nil {
		utils.WriteJSON(w, models.ErrorResponse{Message: "invalid application id"}, http.StatusBadRequest)
		return
	}

	if err := h.services.ApplicationService.Delete(ctx, userID, applicationID); err != nil {
		h.writeError(w, r, err, "application deletion failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Job application deleted"}, http.StatusOK)
}

func (h *Handler) ingestCapture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: "unauthorized"}, http.StatusUnauthorized)
		return
	}

	var capture models.Capture
	if err := json.NewDecoder(r.Body).Decode(&capture); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	createdApplication, err := h.services.ApplicationService.Ingest(ctx, userID, capture)
	if err != nil {
		h.writeError(w, r, err, "capture ingestion failed")
		return
	}

	utils.WriteJSON(w, createdApplication, http.StatusCreated)
}
