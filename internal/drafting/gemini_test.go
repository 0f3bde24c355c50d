package drafting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-dashboard/internal/common/logger"
)

func newGeminiServer(t *testing.T, status int, reply string, seen *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error": {"code": 500, "message": "internal", "status": "INTERNAL"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []interface{}{
				map[string]interface{}{
					"content": map[string]interface{}{
						"role":  "model",
						"parts": []interface{}{map[string]interface{}{"text": reply}},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), GeminiConfig{}, nil)
	assert.Error(t, err)
}

func TestGeminiGenerator_Reply(t *testing.T) {
	var seen map[string]interface{}
	server := newGeminiServer(t, http.StatusOK, "We're so sorry, Bo.", &seen)
	defer server.Close()

	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}, server.Client())
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, gen.Model())

	s := NewService(gen, logger.NewTestLogger(t))
	got := s.DraftReply(context.Background(), "Slow service", 2)

	assert.Equal(t, "We're so sorry, Bo.", got)
	assert.Contains(t, seen, "systemInstruction")
	assert.Contains(t, seen, "contents")
}

func TestGeminiGenerator_ServerErrorFallsBack(t *testing.T) {
	server := newGeminiServer(t, http.StatusInternalServerError, "", nil)
	defer server.Close()

	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}, server.Client())
	require.NoError(t, err)

	s := NewService(gen, logger.NewTestLogger(t))
	assert.Equal(t, PostFallback, s.DraftPost(context.Background(), "new menu"))
}
