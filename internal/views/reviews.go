package views

import (
	"context"
	"strings"

	apperrors "business-dashboard/internal/common/errors"
	"business-dashboard/internal/drafting"
	"business-dashboard/internal/models"
)

type ReviewsView struct {
	store   ReviewStore
	drafter drafting.Drafter
}

func NewReviewsView(store ReviewStore, drafter drafting.Drafter) *ReviewsView {
	return &ReviewsView{store: store, drafter: drafter}
}

// Partition splits reviews into unanswered and answered, keeping stored order.
func (v *ReviewsView) Partition() (unreplied, replied []models.Review) {
	return PartitionReviews(v.store.Snapshot().Reviews)
}

func PartitionReviews(reviews []models.Review) (unreplied, replied []models.Review) {
	unreplied = []models.Review{}
	replied = []models.Review{}
	for _, r := range reviews {
		if r.Replied() {
			replied = append(replied, r)
		} else {
			unreplied = append(unreplied, r)
		}
	}
	return unreplied, replied
}

// Draft suggests a reply for the review, matching its rating.
func (v *ReviewsView) Draft(ctx context.Context, reviewID int) (string, error) {
	review, err := v.find(reviewID)
	if err != nil {
		return "", err
	}
	if v.drafter == nil {
		return drafting.ReplyFallback, nil
	}
	return v.drafter.DraftReply(ctx, review.Content, review.Rating), nil
}

// Tone reports the reply tier a draft for the review is written in.
func (v *ReviewsView) Tone(reviewID int) (drafting.Tone, error) {
	review, err := v.find(reviewID)
	if err != nil {
		return "", err
	}
	return drafting.ToneFor(review.Rating), nil
}

// Reply sends reply for the review. A blank reply is rejected without a request.
func (v *ReviewsView) Reply(ctx context.Context, reviewID int, reply string) (models.Review, error) {
	if strings.TrimSpace(reply) == "" {
		return models.Review{}, apperrors.NewInvalidInputError("reply", "reply must not be empty")
	}
	return v.store.AddReviewReply(ctx, reviewID, reply)
}

func (v *ReviewsView) find(reviewID int) (models.Review, error) {
	snap := v.store.Snapshot()
	if i := snap.FindReview(reviewID); i >= 0 {
		return snap.Reviews[i], nil
	}
	return models.Review{}, apperrors.NewInvalidInputError("reviewId", "no such review")
}
