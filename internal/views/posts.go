package views

import (
	"context"
	"strings"

	"business-dashboard/internal/drafting"
	"business-dashboard/internal/models"
)

// PostComposer backs the "create post" dialog: an optional AI topic and the post text.
type PostComposer struct {
	store   PostStore
	drafter drafting.Drafter
	open    bool
	topic   string
	content string
}

func NewPostComposer(store PostStore, drafter drafting.Drafter) *PostComposer {
	return &PostComposer{store: store, drafter: drafter}
}

// Posts returns the stored posts, newest first.
func (c *PostComposer) Posts() []models.Post {
	return c.store.Snapshot().Posts
}

func (c *PostComposer) Open() {
	c.open = true
}

// Close hides the dialog and clears both inputs.
func (c *PostComposer) Close() {
	c.open = false
	c.topic = ""
	c.content = ""
}

func (c *PostComposer) IsOpen() bool        { return c.open }
func (c *PostComposer) Topic() string       { return c.topic }
func (c *PostComposer) Content() string     { return c.content }
func (c *PostComposer) SetTopic(t string)   { c.topic = t }
func (c *PostComposer) SetContent(s string) { c.content = s }

func (c *PostComposer) CanGenerate() bool {
	return strings.TrimSpace(c.topic) != "" && c.drafter != nil
}

func (c *PostComposer) CanPublish() bool {
	return strings.TrimSpace(c.content) != ""
}

// Generate replaces the content with a drafted post. It does nothing without a topic.
func (c *PostComposer) Generate(ctx context.Context) bool {
	if !c.CanGenerate() {
		return false
	}
	c.content = c.drafter.DraftPost(ctx, c.topic)
	return true
}

// Publish creates the post and closes the composer. Empty content is ignored and
// returns nil, nil. On failure the content is kept so the user can retry.
func (c *PostComposer) Publish(ctx context.Context) (*models.Post, error) {
	if !c.CanPublish() {
		return nil, nil
	}
	post, err := c.store.AddPost(ctx, c.content)
	if err != nil {
		return nil, err
	}
	c.Close()
	return &post, nil
}
