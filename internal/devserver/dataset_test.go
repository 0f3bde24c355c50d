package devserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-dashboard/internal/models"
)

func TestLoadDataset(t *testing.T) {
	d, err := LoadDataset(filepath.Join("testdata", "fixtures.yaml"))
	require.NoError(t, err)

	snap := d.Snapshot()
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "Harbor Books", snap.Profile.Name)
	assert.Equal(t, "555-0142", snap.Profile.Phone)
	assert.Len(t, snap.Reviews, 2)
	assert.Equal(t, "Sorry about that!", snap.Reviews[1].Reply)
	require.NotNil(t, snap.Analytics)
	assert.Equal(t, 5, snap.Analytics.Performance.CustomerActions.WebsiteVisits)
	assert.Equal(t, 300, snap.Analytics.TotalViews())
}

func TestLoadDataset_Errors(t *testing.T) {
	_, err := LoadDataset(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	dir := t.TempDir()
	noProfile := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(noProfile, []byte("posts: []\n"), 0o600))
	_, err = LoadDataset(noProfile)
	assert.ErrorContains(t, err, "profile is required")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("profile: [\n"), 0o600))
	_, err = LoadDataset(broken)
	assert.Error(t, err)
}

func TestDataset_AddPost(t *testing.T) {
	d, err := LoadDataset(filepath.Join("testdata", "fixtures.yaml"))
	require.NoError(t, err)
	d.now = func() time.Time { return time.Date(2024, 7, 4, 15, 0, 0, 0, time.UTC) }

	first := d.AddPost("Summer sale")
	second := d.AddPost("Author talk")

	assert.Equal(t, 6, first.ID)
	assert.Equal(t, 7, second.ID)
	assert.Equal(t, "2024-07-04", first.Date)
	assert.Equal(t, "https://picsum.photos/seed/post6/600/400", first.Image)
	assert.Zero(t, first.Views)

	posts := d.Snapshot().Posts
	require.Len(t, posts, 3)
	assert.Equal(t, []int{7, 6, 5}, []int{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestDataset_ReplaceProfileKeepsHours(t *testing.T) {
	d := DefaultDataset()
	before := d.Snapshot().Profile.Hours

	got := d.ReplaceProfile(models.Profile{Name: "Renamed", Phone: "1"})
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, before, got.Hours)

	got = d.ReplaceProfile(models.Profile{Name: "No hours", Hours: []models.HoursEntry{}})
	assert.Empty(t, got.Hours)
}

func TestDataset_Reply(t *testing.T) {
	d := DefaultDataset()

	review, ok := d.Reply(2, "Thanks Mike!")
	require.True(t, ok)
	assert.Equal(t, "Thanks Mike!", review.Reply)
	assert.Equal(t, "Thanks Mike!", d.Snapshot().Reviews[1].Reply)

	_, ok = d.Reply(404, "?")
	assert.False(t, ok)
}

func TestDataset_SnapshotIsolated(t *testing.T) {
	d := DefaultDataset()
	snap := d.Snapshot()
	snap.Profile.Name = "mutated"
	snap.Reviews[0].Reply = "mutated"

	fresh := d.Snapshot()
	assert.Equal(t, "The Daily Grind", fresh.Profile.Name)
	assert.Empty(t, fresh.Reviews[0].Reply)
}
