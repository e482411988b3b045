package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
	"github.com/riskibarqy/hockey-league/internal/usecase"
)

type Handler struct {
	jobOrchestrator *usecase.JobOrchestratorService
	statsQuery      *usecase.StatsQueryService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	jobOrchestrator *usecase.JobOrchestratorService,
	statsQuery *usecase.StatsQueryService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		jobOrchestrator: jobOrchestrator,
		statsQuery:      statsQuery,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJobInput reads the optional JSON body of a job trigger. An empty body
// means "run with defaults".
func (h *Handler) decodeJobInput(r *http.Request) (usecase.JobInput, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var input usecase.JobInput
	if err := decoder.Decode(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return usecase.JobInput{}, nil
		}
		return usecase.JobInput{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	if err := h.validator.Struct(input); err != nil {
		return usecase.JobInput{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return input, nil
}
