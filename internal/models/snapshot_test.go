package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_CloneIsDeep(t *testing.T) {
	orig := Snapshot{
		Profile:   &Profile{Name: "Cafe", Hours: []HoursEntry{{Day: "Mon", Time: "8-5"}}},
		Posts:     []Post{{ID: 1, Content: "a"}},
		Reviews:   []Review{{ID: 7, Rating: 5}},
		Analytics: &Analytics{Queries: []QueryCount{{Query: "coffee", Count: 3}}},
	}

	c := orig.Clone()
	if diff := cmp.Diff(orig.Profile, c.Profile); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}

	c.Profile.Hours[0].Time = "closed"
	c.Posts[0].Content = "b"
	c.Reviews[0].Reply = "thanks"
	c.Analytics.Queries[0].Count = 99

	assert.Equal(t, "8-5", orig.Profile.Hours[0].Time)
	assert.Equal(t, "a", orig.Posts[0].Content)
	assert.False(t, orig.Reviews[0].Replied())
	assert.Equal(t, 3, orig.Analytics.Queries[0].Count)
	assert.NotNil(t, c.Locations)
}

func TestSnapshot_DecodeAndNormalize(t *testing.T) {
	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"profile":{"name":"Cafe"},"posts":null}`), &s))
	s.Normalize()

	assert.Equal(t, "Cafe", s.Profile.Name)
	assert.Empty(t, s.Posts)
	assert.NotNil(t, s.Posts)
	assert.NotNil(t, s.LocationGroups)
	assert.Nil(t, s.Analytics)
}

func TestReview_ReplyOmittedWhenEmpty(t *testing.T) {
	b, err := json.Marshal(Review{ID: 1, Rating: 4})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "reply")
	assert.Equal(t, -1, Snapshot{}.FindReview(1))
}

func TestAnalytics_TotalViews(t *testing.T) {
	a := Analytics{Performance: Performance{ViewsMaps: 1200, ViewsSearch: 800}}
	assert.Equal(t, 2000, a.TotalViews())
}
