// cmd/dashboard/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"business-dashboard/internal/api"
	"business-dashboard/internal/common/config"
	apperrors "business-dashboard/internal/common/errors"
	httpclient "business-dashboard/internal/common/http"
	"business-dashboard/internal/common/logger"
	"business-dashboard/internal/common/observability"
	"business-dashboard/internal/dashboard"
	"business-dashboard/internal/drafting"
	"business-dashboard/internal/store"
)

var (
	configPath string
	logLevel   string
	outputFmt  string
)

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	zap    *zap.Logger
	log    logger.Logger
	obs    *observability.Observability
	client *api.Client
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Business dashboard client",
	Long: `Manage a business listing from the command line: profile, posts,
reviews and performance numbers, with AI-drafted post copy and review replies.

The session cookie is read from api.session_cookie (env API_SESSION_COOKIE).
Run "dashboard login" against the dev server to obtain one.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if outputFmt != "text" && outputFmt != "yaml" {
			return fmt.Errorf("unsupported output format %q (text|yaml)", outputFmt)
		}

		zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
		a := &app{cfg: cfg, zap: zapLog, log: logger.NewZapAdapter(zapLog)}
		if cfg.Metrics.Enabled {
			a.obs = observability.New(cfg.Metrics.ServiceName)
		}

		a.client, err = api.NewClient(api.Config{
			BaseURL:           cfg.API.BaseURL,
			SessionCookieName: cfg.API.SessionCookieName,
			SessionCookie:     cfg.API.SessionCookie,
		}, httpclient.NewClient(config.GetDuration(cfg.API.Timeout)), a.log)
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current == nil {
			return
		}
		current.obs.Shutdown()
		_ = current.zap.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format: text or yaml")

	rootCmd.AddCommand(statusCmd, loginCmd, logoutCmd)
	rootCmd.AddCommand(overviewCmd, profileCmd, postsCmd, reviewsCmd)
	rootCmd.AddCommand(devserverCmd)
}

// drafter builds the text-generation collaborator. Without an API key every
// draft is the fallback text.
func (a *app) drafter(ctx context.Context) drafting.Drafter {
	opts := []drafting.Option{
		drafting.WithTimeout(config.GetDuration(a.cfg.GenAI.Timeout)),
		drafting.WithRequestsPerMinute(a.cfg.GenAI.RequestsPerMinute),
	}
	if a.cfg.GenAI.APIKey == "" {
		return drafting.NewService(nil, a.log, opts...)
	}
	gen, err := drafting.NewGeminiGenerator(ctx, drafting.GeminiConfig{
		APIKey:  a.cfg.GenAI.APIKey,
		Model:   a.cfg.GenAI.Model,
		BaseURL: a.cfg.GenAI.BaseURL,
	}, nil)
	if err != nil {
		a.log.Warn("text generation unavailable", map[string]interface{}{"error": err})
		return drafting.NewService(nil, a.log, opts...)
	}
	return drafting.NewService(gen, a.log, opts...)
}

// open resolves the session and loads business data. It fails when the
// session is not authenticated or the data could not be loaded.
func (a *app) open(ctx context.Context) (*dashboard.Session, error) {
	var opts []store.Option
	if a.obs != nil {
		opts = append(opts, store.WithRecorder(a.obs))
	}
	s := dashboard.Open(ctx, a.client, a.drafter(ctx), a.log, opts...)
	if !s.Authenticated() {
		return nil, fmt.Errorf("not signed in; sign in at %s: %w", s.LoginURL(),
			apperrors.NewNotAuthenticatedError("login required at "+s.LoginURL()))
	}
	if panel, failed := s.ErrorPanel(); failed {
		return nil, fmt.Errorf("%s: %s %s", panel.Title, panel.Message, panel.Hint)
	}
	return s, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
