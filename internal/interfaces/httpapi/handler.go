package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/leetstreak/internal/platform/cache"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/riskibarqy/leetstreak/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// CacheHealthReporter exposes the leaderboard cache state on /healthz.
type CacheHealthReporter interface {
	Health() cache.Health
}

type Handler struct {
	leaderboardService *usecase.LeaderboardService
	leaderboardWarmer  *usecase.LeaderboardWarmer
	progressService    *usecase.ProgressService
	dashboardService   *usecase.DashboardService
	heatmapService     *usecase.HeatmapService
	resultService      *usecase.ResultService
	cacheHealth        CacheHealthReporter
	location           *time.Location
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	leaderboardService *usecase.LeaderboardService,
	leaderboardWarmer *usecase.LeaderboardWarmer,
	progressService *usecase.ProgressService,
	dashboardService *usecase.DashboardService,
	heatmapService *usecase.HeatmapService,
	resultService *usecase.ResultService,
	cacheHealth CacheHealthReporter,
	location *time.Location,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if location == nil {
		location = time.UTC
	}

	return &Handler{
		leaderboardService: leaderboardService,
		leaderboardWarmer:  leaderboardWarmer,
		progressService:    progressService,
		dashboardService:   dashboardService,
		heatmapService:     heatmapService,
		resultService:      resultService,
		cacheHealth:        cacheHealth,
		location:           location,
		logger:             logger.Named("httpapi"),
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a strict JSON body. An empty body leaves dst untouched
// when allowEmpty is set.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			if allowEmpty {
				return nil
			}
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %s must be an integer", usecase.ErrInvalidInput, key)
	}

	return value, nil
}

func (h *Handler) parseDay(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(dayLayout, strings.TrimSpace(raw), h.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be formatted as %s", usecase.ErrInvalidInput, dayLayout)
	}
	return day, nil
}

// logFailure logs server-side failures loudly and client errors quietly.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
