package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/capitrack/engine/internal/api/middleware"
	"github.com/capitrack/engine/internal/api/types"
	"github.com/capitrack/engine/internal/services"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, types.HTTPStatus(err), types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

func writeErrorStr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.APIResponse{Success: false, Error: &types.APIError{Code: "invalid", Message: msg}})
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// actor builds the workflow actor from the authenticated request context.
func actor(r *http.Request) (services.Actor, bool) {
	id, err := uuid.Parse(middleware.GetUserID(r.Context()))
	if err != nil {
		return services.Actor{}, false
	}
	role := middleware.GetUserRole(r.Context())
	if !role.Valid() {
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: role}, true
}
