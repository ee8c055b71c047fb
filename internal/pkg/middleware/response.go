package middleware

import (
	"encoding/json"
	"net/http"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
)

// writeError responde com o ErrorResponse padronizado da API.
func writeError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}
