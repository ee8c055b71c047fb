// Package respond concentra a escrita das respostas JSON dos handlers.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
)

// maxBodyBytes limita o tamanho dos payloads aceitos.
const maxBodyBytes = 1 << 20

// ServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func ServiceResponse(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				log.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	// TRATAMENTO DE ERROS
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// DecodeJSON lê o corpo da requisição em dst. Corpo vazio é aceito quando allowEmpty.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}
