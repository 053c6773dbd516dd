package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"user-api/internal/usecase"
	"user-api/pkg/apperror"
	"user-api/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Auth *AuthHandler
	User *UserHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	detail := config.App.IsDevelopment()

	return &Handler{
		Auth: NewAuthHandler(service.Auth, detail, log),
		User: NewUserHandler(service.User, detail, log),
	}
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("Request body is required")
		}
		return &apperror.Error{Kind: apperror.KindValidation, Message: "Invalid request body", Err: err}
	}
	return nil
}

// writeError logs err at a level matching its kind and writes the envelope.
// detail exposes the cause of internal failures, for development only.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, operation string, detail bool) {
	switch apperror.KindOf(apperror.Translate(err)) {
	case apperror.KindInternal:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	case apperror.KindValidation, apperror.KindNotFound, apperror.KindConflict:
		log.Info(operation+" rejected", zap.Error(err))
	default:
		log.Warn(operation+" denied", zap.Error(err))
	}

	utils.ResponseError(w, err, detail)
}
