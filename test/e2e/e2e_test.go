// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"business-dashboard/internal/api"
	"business-dashboard/internal/common/config"
	"business-dashboard/internal/common/database"
	httpclient "business-dashboard/internal/common/http"
	"business-dashboard/internal/common/logger"
	"business-dashboard/internal/dashboard"
	"business-dashboard/internal/devserver"
	"business-dashboard/internal/drafting"
	"business-dashboard/internal/models"
)

var (
	cfg     *config.Config
	baseURL string
	zapLog  *zap.Logger
)

// TestMain runs against DASHBOARD_E2E_BASE_URL when set, otherwise against a
// dev server on a real socket with an embedded redis.
func TestMain(m *testing.M) {
	var err error
	zapLog, _ = zap.NewDevelopment()

	cfg, err = config.Load("")
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	baseURL = os.Getenv("DASHBOARD_E2E_BASE_URL")
	if baseURL == "" {
		baseURL, err = startDevServer(ctx, done)
		if err != nil {
			panic(fmt.Sprintf("failed to start dev server: %v", err))
		}
	} else {
		close(done)
	}

	code := m.Run()

	cancel()
	if err := <-done; err != nil {
		zapLog.Error("dev server stopped with error", zap.Error(err))
	}
	_ = zapLog.Sync()
	os.Exit(code)
}

func startDevServer(ctx context.Context, done chan<- error) (string, error) {
	rc, err := database.NewRedis(config.RedisConfig{})
	if err != nil {
		return "", err
	}
	if err := rc.Ping(ctx); err != nil {
		return "", err
	}

	ttl := config.GetDuration(cfg.DevServer.SessionTTL)
	srv := devserver.New(devserver.Config{
		SessionCookieName: cfg.API.SessionCookieName,
		SessionTTL:        ttl,
		DemoUser: models.User{
			Name:  cfg.DevServer.DemoUser.Name,
			Email: cfg.DevServer.DemoUser.Email,
			Photo: cfg.DevServer.DemoUser.Photo,
		},
	}, devserver.DefaultDataset(), devserver.NewRedisSessions(rc, ttl), logger.NewZapAdapter(zapLog))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	go func() {
		err := srv.Serve(ctx, ln)
		_ = rc.Close()
		done <- err
	}()
	return "http://" + ln.Addr().String(), nil
}

func newClient(t *testing.T) *api.Client {
	t.Helper()
	c, err := api.NewClient(api.Config{
		BaseURL:           baseURL,
		SessionCookieName: cfg.API.SessionCookieName,
	}, httpclient.NewClient(10*time.Second), logger.NewZapAdapter(zapLog))
	require.NoError(t, err)
	return c
}

func TestFullE2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	t.Logf("running against %s", baseURL)
	client := newClient(t)

	// 1. Anonymous callers see the sign-in link and no data.
	anon := dashboard.Open(ctx, client, nil, logger.NewZapAdapter(zapLog))
	require.False(t, anon.Authenticated())
	assert.Equal(t, baseURL+api.PathAuthStart, anon.LoginURL())

	// 2. Sign in.
	redirect, err := client.StartAuth(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, redirect.SessionCookie, "backend did not issue a session")

	// 3. Open the dashboard and build the overview.
	s := dashboard.Open(ctx, client, drafting.NewService(nil, logger.NewZapAdapter(zapLog)), logger.NewZapAdapter(zapLog))
	require.True(t, s.Authenticated())
	_, failed := s.ErrorPanel()
	require.False(t, failed)

	overview, ok := s.Dashboard.Build()
	require.True(t, ok)
	assert.NotEmpty(t, overview.Greeting)
	assert.Len(t, overview.Cards, 9)

	// 4. Publish a post and reply to the first unanswered review.
	s.Posts.Open()
	s.Posts.SetContent(fmt.Sprintf("E2E post %d", time.Now().UnixNano()))
	post, err := s.Posts.Publish(ctx)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, post.ID, s.Posts.Posts()[0].ID)

	unreplied, _ := s.Reviews.Partition()
	if len(unreplied) > 0 {
		reviewed, err := s.Reviews.Reply(ctx, unreplied[0].ID, "Thanks for stopping by!")
		require.NoError(t, err)
		assert.True(t, reviewed.Replied())
	}

	// 5. A fresh load sees the same data the store merged locally.
	require.NoError(t, s.Reload(ctx))
	assert.Equal(t, post.ID, s.Store().Snapshot().Posts[0].ID)

	// 6. Sign out.
	require.NoError(t, s.Logout(ctx))
	status, err := client.AuthStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsAuthenticated)

	t.Log("✅ E2E flow complete")
}
