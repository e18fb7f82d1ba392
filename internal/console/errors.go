package console

import (
	"errors"
	"net/http"

	"ims/internal/core/config"
	"ims/internal/table"
	custom_error "ims/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InputError is a malformed request or command line, rejected before validation.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// StatusOf maps err onto the console API status code and response body.
func StatusOf(err error) (int, gin.H) {
	var (
		validationErr *custom_error.ValidationError
		expired       *custom_error.SessionExpiredError
		timeout       *custom_error.TimeoutError
		httpErr       *custom_error.HttpError
		networkErr    *custom_error.NetworkError
		inputErr      *InputError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": validationErr.Fields}
	case errors.Is(err, custom_error.ErrUnauthenticated):
		return http.StatusUnauthorized, gin.H{"error": custom_error.Notification(err), "code": "unauthenticated"}
	case errors.As(err, &expired):
		return http.StatusUnauthorized, gin.H{"error": custom_error.Notification(err), "code": "session_expired"}
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout, gin.H{"error": timeout.Error()}
	case errors.As(err, &httpErr):
		return http.StatusBadGateway, gin.H{"error": httpErr.Message, "status": httpErr.Status}
	case errors.As(err, &networkErr):
		return http.StatusBadGateway, gin.H{"error": custom_error.Notification(err)}
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, gin.H{"error": inputErr.Message}
	case errors.Is(err, table.ErrBusy), errors.Is(err, table.ErrModalOpen), errors.Is(err, table.ErrModalClosed):
		return http.StatusConflict, gin.H{"error": err.Error()}
	case errors.Is(err, table.ErrNotConfirmed):
		return http.StatusBadRequest, gin.H{"error": err.Error(), "details": "repeat with ?confirm=yes"}
	case errors.Is(err, table.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": err.Error()}
	case errors.Is(err, table.ErrClosed), errors.Is(err, config.ErrMissingBaseURL):
		return http.StatusServiceUnavailable, gin.H{"error": err.Error()}
	default:
		return http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()}
	}
}

// resyncWarning tells a change the upstream applied from one that failed. It
// returns accepted for a nil err and for a failed list refresh afterwards, the
// latter with a warning for the operator.
func (h *ResourceHandler[T, F]) resyncWarning(err error) (warning string, accepted bool) {
	if err == nil {
		return "", true
	}
	var resyncErr *table.ResyncError
	if !errors.As(err, &resyncErr) {
		return "", false
	}
	h.logger.Warn("Change applied but the list was not refreshed", zap.String("operation", string(resyncErr.Op)), zap.Error(resyncErr.Err))
	return custom_error.Notification(resyncErr.Err), true
}

func (h *ResourceHandler[T, F]) respondError(c *gin.Context, err error) {
	status, body := StatusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.logger.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, body)
}
