// Package drafting writes post copy and review replies through a text-generation model.
package drafting

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	apperrors "business-dashboard/internal/common/errors"
	"business-dashboard/internal/common/logger"
	"business-dashboard/internal/common/metrics"
)

// Shown in place of a draft whenever generation fails.
const (
	PostFallback  = "Sorry, I couldn't generate a post right now. Please try again."
	ReplyFallback = "Sorry, I couldn't generate a reply right now. Please try again."
)

const (
	kindPost  = "post"
	kindReply = "reply"
)

// Drafter never fails: on any error it returns the matching fallback text.
type Drafter interface {
	DraftPost(ctx context.Context, topic string) string
	DraftReply(ctx context.Context, reviewText string, rating int) string
}

// TextGenerator makes one model call. system may be empty.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

type Option func(*Service)

// WithRequestsPerMinute gates model calls client-side. Zero or less disables the limit.
func WithRequestsPerMinute(rpm int) Option {
	return func(s *Service) {
		if rpm > 0 {
			s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
		}
	}
}

func WithLimiter(l *rate.Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

type Service struct {
	gen     TextGenerator
	logger  logger.Logger
	limiter *rate.Limiter
	timeout time.Duration
}

var _ Drafter = (*Service)(nil)

// NewService returns a Drafter. A nil generator yields the fallback for every draft.
func NewService(gen TextGenerator, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		gen:    gen,
		logger: logger.Component(log, "drafting"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if gen == nil {
		s.logger.Warn("no text generator configured, drafts will return the fallback text", nil)
	}
	return s
}

func (s *Service) DraftPost(ctx context.Context, topic string) string {
	return s.draft(ctx, kindPost, PostPrompt(topic), "", PostFallback)
}

func (s *Service) DraftReply(ctx context.Context, reviewText string, rating int) string {
	s.logger.Debug("drafting review reply", map[string]interface{}{
		"rating": rating,
		"tone":   string(ToneFor(rating)),
	})
	return s.draft(ctx, kindReply, ReplyPrompt(reviewText, rating), ReplySystemInstruction(), ReplyFallback)
}

func (s *Service) draft(ctx context.Context, kind, prompt, system, fallback string) string {
	if s.gen == nil {
		metrics.DraftsTotal.WithLabelValues(kind, metrics.OutcomeFallback).Inc()
		return fallback
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return s.fail(kind, err, fallback)
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(ctx, prompt, system)
	if err != nil {
		return s.fail(kind, err, fallback)
	}
	text = cleanDraft(text)
	if text == "" {
		return s.fail(kind, errEmptyDraft, fallback)
	}

	metrics.DraftsTotal.WithLabelValues(kind, metrics.OutcomeSuccess).Inc()
	return text
}

func (s *Service) fail(kind string, err error, fallback string) string {
	stdErr := apperrors.NewGenerationFailedError(kind, err)
	s.logger.Error("draft generation failed", map[string]interface{}{
		"kind":      kind,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	})
	metrics.DraftsTotal.WithLabelValues(kind, metrics.OutcomeFailure).Inc()
	return fallback
}
