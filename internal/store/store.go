// Package store holds the business data snapshot for one signed-in session.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "business-dashboard/internal/common/errors"
	"business-dashboard/internal/common/logger"
	"business-dashboard/internal/models"
	"business-dashboard/internal/session"
)

// Operation names for logs and recorded metrics.
const (
	OpLoad           = "load"
	OpUpdateProfile  = "update_profile"
	OpAddPost        = "add_post"
	OpAddReviewReply = "add_review_reply"
)

const (
	loadFailedPrefix = "Failed to fetch business data."
	unknownError     = "An unknown error occurred."
)

// Remote is the subset of the API client the store calls.
type Remote interface {
	FetchSnapshot(ctx context.Context) (models.Snapshot, error)
	UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
	CreatePost(ctx context.Context, content string) (models.Post, error)
	ReplyToReview(ctx context.Context, reviewID int, reply string) (models.Review, error)
}

// Recorder receives one call per store operation.
type Recorder interface {
	RecordOperation(ctx context.Context, operation, status string, d time.Duration)
}

type Option func(*Store)

func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// State describes the initial bulk fetch. Mutator failures never touch it.
type State struct {
	Loading bool
	Loaded  bool
	Err     string
}

// Store is safe for concurrent use. Mutator results merge into the snapshot
// current at merge time. Concurrent profile updates are last response wins.
// Results that arrive after Reset are not merged.
type Store struct {
	remote     Remote
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
	recorder   Recorder

	mu      sync.Mutex
	snap    models.Snapshot
	loading bool
	loaded  bool
	errMsg  string
	// generation changes on every Reset. Results of calls started in an
	// earlier generation are dropped.
	generation uint64
}

func New(remote Remote, log logger.Logger, opts ...Option) *Store {
	l := logger.Component(log, "store")
	s := &Store{
		remote:     remote,
		logger:     l,
		errHandler: apperrors.NewErrorHandler(l),
		snap:       models.EmptySnapshot(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load performs the bulk fetch for an authenticated session. For any other
// session it clears the store without calling the server. On failure the
// previous data is kept, the error message is set and the error is returned.
// A fetch that completes after Reset leaves the store untouched.
func (s *Store) Load(ctx context.Context, auth session.Result) error {
	if !auth.Authenticated() {
		s.Reset()
		return nil
	}

	s.mu.Lock()
	gen := s.generation
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	start := time.Now()
	snap, err := s.remote.FetchSnapshot(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		s.logger.Debug("discarding load result from a reset session", nil)
		return err
	}
	s.loading = false

	if err != nil {
		s.errMsg = LoadErrorMessage(err)
		s.errHandler.Handle(OpLoad, err)
		s.record(ctx, OpLoad, err, start)
		return err
	}

	snap.Normalize()
	s.snap = snap
	s.loaded = true
	s.logger.Info("business data loaded", map[string]interface{}{
		"posts":     len(snap.Posts),
		"reviews":   len(snap.Reviews),
		"locations": len(snap.Locations),
	})
	s.record(ctx, OpLoad, nil, start)
	return nil
}

// LoadErrorMessage renders a load failure for the full-page error panel.
func LoadErrorMessage(err error) string {
	stdErr, ok := apperrors.AsStandard(err)
	if !ok || stdErr.Message == "" {
		return unknownError
	}
	switch stdErr.Code {
	case apperrors.ErrCodeUnexpectedStatus:
		return fmt.Sprintf("%s Server responded with %d.", loadFailedPrefix, stdErr.StatusCode)
	case apperrors.ErrCodeInternal:
		return unknownError
	default:
		return fmt.Sprintf("%s %s.", loadFailedPrefix, stdErr.Message)
	}
}

// UpdateProfile replaces the held profile with the server's copy.
func (s *Store) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	gen := s.currentGeneration()
	start := time.Now()
	updated, err := s.remote.UpdateProfile(ctx, profile)
	if err != nil {
		s.errHandler.Handle(OpUpdateProfile, err)
		s.record(ctx, OpUpdateProfile, err, start)
		return models.Profile{}, err
	}

	s.mu.Lock()
	if s.generation == gen {
		p := updated.Clone()
		s.snap.Profile = &p
	}
	s.mu.Unlock()

	s.record(ctx, OpUpdateProfile, nil, start)
	return updated, nil
}

// AddPost creates a post and puts it first.
func (s *Store) AddPost(ctx context.Context, content string) (models.Post, error) {
	gen := s.currentGeneration()
	start := time.Now()
	post, err := s.remote.CreatePost(ctx, content)
	if err != nil {
		s.errHandler.Handle(OpAddPost, err)
		s.record(ctx, OpAddPost, err, start)
		return models.Post{}, err
	}

	s.mu.Lock()
	if s.generation == gen {
		posts := make([]models.Post, 0, len(s.snap.Posts)+1)
		posts = append(posts, post)
		for _, p := range s.snap.Posts {
			if p.ID != post.ID {
				posts = append(posts, p)
			}
		}
		s.snap.Posts = posts
	}
	s.mu.Unlock()

	s.record(ctx, OpAddPost, nil, start)
	return post, nil
}

// AddReviewReply posts a reply and swaps the server's review in place.
func (s *Store) AddReviewReply(ctx context.Context, reviewID int, reply string) (models.Review, error) {
	gen := s.currentGeneration()
	start := time.Now()
	review, err := s.remote.ReplyToReview(ctx, reviewID, reply)
	if err != nil {
		s.errHandler.Handle(OpAddReviewReply, err)
		s.record(ctx, OpAddReviewReply, err, start)
		return models.Review{}, err
	}

	s.mu.Lock()
	if s.generation != gen {
		s.logger.Debug("discarding reply result from a reset session", map[string]interface{}{"reviewId": reviewID})
	} else if i := s.snap.FindReview(reviewID); i >= 0 {
		reviews := append([]models.Review(nil), s.snap.Reviews...)
		reviews[i] = review
		s.snap.Reviews = reviews
	} else {
		s.logger.Warn("replied review not in snapshot", map[string]interface{}{"reviewId": reviewID})
	}
	s.mu.Unlock()

	s.record(ctx, OpAddReviewReply, nil, start)
	return review, nil
}

// Snapshot returns a deep copy of the held data.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Loading: s.loading, Loaded: s.loaded, Err: s.errMsg}
}

// Reset empties the store, as at session start.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = models.EmptySnapshot()
	s.loading = false
	s.loaded = false
	s.errMsg = ""
	s.generation++
}

func (s *Store) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Store) record(ctx context.Context, op string, err error, start time.Time) {
	if s.recorder == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	s.recorder.RecordOperation(ctx, op, status, time.Since(start))
}
