package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/usecase"
)

const (
	maxBodyBytes = 1 << 20

	msgInvalidJSON = "El cuerpo de la petición no es un JSON válido"
	msgInternal    = "Ocurrió un error inesperado"
)

type errorResponse struct {
	Error  string                    `json:"error"`
	Fields []usecase.ValidationError `json:"fields,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeUsecaseError is the single place where use case errors become HTTP
// statuses. Technical errors are logged with their cause and answered with
// their generic message only.
func writeUsecaseError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, domainStatus(de.Code), errorResponse{Error: de.Message, Fields: de.Fields})
		return
	}

	message := msgInternal
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		message = te.Message
	}
	log.Error("request failed", zap.String("operation", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, message)
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// decodeBody reads a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
