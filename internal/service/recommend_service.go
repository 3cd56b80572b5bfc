package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/menupick/internal/domain"
	"github.com/vbonduro/menupick/internal/input"
	"github.com/vbonduro/menupick/internal/recommend"
)

// historyRepository is the subset of store.RecommendationStore the service
// requires.
type historyRepository interface {
	Create(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Recommendation, error)
}

type RecommendService struct {
	recommender recommend.Recommender
	backend     string
	model       string
	timeout     time.Duration
	history     historyRepository
	logger      *slog.Logger
}

// NewRecommendService wires the model adapter. history may be nil, in which
// case nothing is persisted.
func NewRecommendService(
	recommender recommend.Recommender,
	backend, model string,
	timeout time.Duration,
	history historyRepository,
	logger *slog.Logger,
) *RecommendService {
	return &RecommendService{
		recommender: recommender,
		backend:     backend,
		model:       model,
		timeout:     timeout,
		history:     history,
		logger:      logger,
	}
}

// HistoryEnabled reports whether successful recommendations are recorded.
func (s *RecommendService) HistoryEnabled() bool {
	return s.history != nil
}

// Recommend validates sub, builds the prompt and makes one model call.
// Invalid input never reaches the model.
func (s *RecommendService) Recommend(ctx context.Context, sub domain.Submission) *recommend.Result {
	logger := s.logger.With("submission_id", uuid.NewString(), "backend", s.backend)

	imageBytes := 0
	if sub.Image != nil {
		imageBytes = sub.Image.Size()
	}
	logger.Info("submission received", "image_bytes", imageBytes, "has_image", sub.Image != nil, "text_bytes", len(sub.MenuText))

	if v := input.ValidateSubmission(sub); !v.Accepted {
		logger.Info("submission rejected", "reason", v.Reason)
		return recommend.InvalidInput(v.Reason)
	}

	req := recommend.Build(sub.Image, sub.MenuText)

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result := recommend.Submit(callCtx, s.recommender, req)
	duration := time.Since(start).Milliseconds()

	if !result.OK() {
		logger.Error("recommendation failed",
			"error_kind", result.Err.Kind,
			"error", result.Err.Unwrap(),
			"duration_ms", duration,
		)
		return result
	}
	logger.Info("recommendation complete", "duration_ms", duration, "response_chars", len(result.Text))

	s.record(ctx, logger, req, result)
	return result
}

// record stores a successful result. Failures are logged and swallowed so a
// history problem never costs the user their recommendation.
func (s *RecommendService) record(ctx context.Context, logger *slog.Logger, req *recommend.Request, result *recommend.Result) {
	if s.history == nil {
		return
	}

	rec := &domain.Recommendation{
		MenuText: req.MenuText,
		Backend:  s.backend,
		Model:    s.model,
		Text:     result.Text,
	}
	if req.Image != nil {
		rec.ImageMIME = req.Image.MediaType
		rec.ImageBytes = req.Image.Bytes
	}

	stored, err := s.history.Create(ctx, rec)
	if err != nil {
		logger.Error("failed to record recommendation", "error", err)
		return
	}
	logger.Debug("recommendation recorded", "history_id", stored.ID)
}

// ListHistory returns recent recommendations, or nil when history is off.
func (s *RecommendService) ListHistory(ctx context.Context, limit int) ([]*domain.Recommendation, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListRecent(ctx, limit)
}
