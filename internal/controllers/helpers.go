package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stevedao0/contract-service/internal/middleware"
	"github.com/stevedao0/contract-service/internal/utils"
)

var validate = validator.New()

// maxBodyBytes caps request bodies; works imports are the largest.
const maxBodyBytes = 8 << 20

// decodeAndValidate reads a JSON body into dst and runs the validator.
// It writes the error response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return false
	}

	if err := validate.StructCtx(r.Context(), dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			details := make([]string, len(validationErrors))
			for i, fe := range validationErrors {
				details[i] = fe.Error()
			}
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", details, err)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return false
	}
	return true
}

// requireActor returns the authenticated actor, or writes 401.
func requireActor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == "" {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No actor in context", nil)
		return "", false
	}
	return actor, true
}

// requireQuery reads a mandatory query parameter, or writes 400.
func requireQuery(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Missing query parameter: "+name, nil)
		return "", false
	}
	return v, true
}

// optionalIntQuery returns 0 when the parameter is absent.
func optionalIntQuery(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Query parameter "+name+" must be a non-negative integer", nil, err)
		return 0, false
	}
	return n, true
}
