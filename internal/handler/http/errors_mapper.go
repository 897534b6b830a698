package http

import (
	"errors"
	"net/http"

	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/service"
	"github.com/hirepath/hirepath-server/internal/store"
	"github.com/hirepath/hirepath-server/internal/utils"
	"github.com/hirepath/hirepath-server/models"
)

// errorStatusMap translates service and store sentinel errors into HTTP
// status codes. A missing record never reveals whether the row exists under
// another user: both cases map to 404.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:      http.StatusBadRequest,
	service.ErrAccountConflict:          http.StatusBadRequest,
	service.ErrInvalidCredentials:       http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid:  http.StatusUnauthorized,
	service.ErrTokenCreationFailed:      http.StatusInternalServerError,
	service.ErrGoogleExchangeFailed:     http.StatusBadRequest,
	service.ErrGoogleProfileFetchFailed: http.StatusBadGateway,

	store.ErrEmailAlreadyExists:   http.StatusConflict,
	store.ErrUserNotFound:         http.StatusNotFound,
	store.ErrApplicationNotFound:  http.StatusNotFound,
	store.ErrApplicationNotSaved:  http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to a status code and writes the uniform JSON error
// body. The underlying error detail is only exposed in development mode.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(message)
	} else {
		log.Warn().Err(err).Int("status", status).Msg(message)
	}

	response := models.ErrorResponse{Message: message}
	if h.config.App.DevelopmentMode {
		response.Details = err.Error()
	}

	utils.WriteJSON(w, response, status)
}
