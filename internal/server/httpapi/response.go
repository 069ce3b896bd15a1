package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/freelancehub/internal/common"
)

func jsonOK(w http.ResponseWriter, v any) {
	jsonStatus(w, http.StatusOK, v)
}

func jsonStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	jsonStatus(w, code, map[string]string{"error": msg})
}

// writeError maps a service error onto a status code. msg is the public
// message used for unexpected failures; the cause goes into details.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		jsonError(w, strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": "), http.StatusBadRequest)
	case errors.Is(err, common.ErrorNotFound):
		jsonStatus(w, http.StatusNotFound, map[string]any{"error": msg, "success": false})
	case errors.Is(err, common.ErrorAlreadyExists):
		jsonError(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error(r.Context(), msg, "error", err, "path", r.URL.Path)
		jsonStatus(w, http.StatusInternalServerError, map[string]any{"error": msg, "details": err.Error()})
	}
}

func loginFailure(err error) string {
	if errors.Is(err, common.ErrorNotFound) {
		return "User not found with this mobile number"
	}
	return "Login failed - server error"
}
