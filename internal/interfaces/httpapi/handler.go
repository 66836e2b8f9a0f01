package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/spl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/spl-fantasy/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	playerService  *usecase.PlayerService
	fixtureService *usecase.FixtureService
	squadService   *usecase.SquadService
	scoringService *usecase.ScoringService
	leagueService  *usecase.LeagueService
	adminService   *usecase.AdminService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	fixtureService *usecase.FixtureService,
	squadService *usecase.SquadService,
	scoringService *usecase.ScoringService,
	leagueService *usecase.LeagueService,
	adminService *usecase.AdminService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:  playerService,
		fixtureService: fixtureService,
		squadService:   squadService,
		scoringService: scoringService,
		leagueService:  leagueService,
		adminService:   adminService,
		logger:         logger.Named("handler"),
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body strictly and runs struct validation.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
