package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rkanno/craftline/internal/domain/activity"
	"github.com/rkanno/craftline/internal/domain/artifact"
	"github.com/rkanno/craftline/internal/domain/project"
	"github.com/rkanno/craftline/internal/pipeline"
	"github.com/rkanno/craftline/internal/repository"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
}

// statusFor maps domain errors onto HTTP status codes. Provider and
// validation failures never surface here: the pipeline converts those
// into fallback artifacts before the response is built.
func statusFor(err error) int {
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, artifact.ErrArtifactNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrUnknownStage),
		errors.Is(err, pipeline.ErrInvalidParams),
		errors.Is(err, pipeline.ErrPreconditionFailed),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, repository.ErrForeignKeyViolation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
