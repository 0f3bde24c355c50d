// Package views turns the business data snapshot into presentation-neutral
// view models for the dashboard, profile, posts and reviews pages.
package views

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"business-dashboard/internal/models"
)

// SnapshotSource is satisfied by *store.Store.
type SnapshotSource interface {
	Snapshot() models.Snapshot
}

type ProfileStore interface {
	SnapshotSource
	UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
}

type PostStore interface {
	SnapshotSource
	AddPost(ctx context.Context, content string) (models.Post, error)
}

type ReviewStore interface {
	SnapshotSource
	AddReviewReply(ctx context.Context, reviewID int, reply string) (models.Review, error)
}

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 12,345.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// StarRating renders a 1..5 rating as five stars.
func StarRating(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
