// Package dashboard wires the session gate, the business data store and the
// view models together for one signed-in owner.
package dashboard

import (
	"context"

	"business-dashboard/internal/common/logger"
	"business-dashboard/internal/drafting"
	"business-dashboard/internal/models"
	"business-dashboard/internal/session"
	"business-dashboard/internal/store"
	"business-dashboard/internal/views"
)

const (
	errorPanelTitle  = "Failed to Load Business Data"
	missingProfile   = "Could not retrieve profile information from the server."
	errorPanelHint   = "Please try refreshing the page or check if the backend server is running correctly."
	defaultAvatarURL = "https://i.pravatar.cc/150?u=admin"
)

// Remote is the full set of backend calls a dashboard session makes. *api.Client implements it.
type Remote interface {
	session.StatusChecker
	store.Remote
	Logout(ctx context.Context) error
	LoginURL() string
	LogoutURL() string
}

// Session is one opened dashboard.
type Session struct {
	remote Remote
	store  *store.Store
	auth   session.Result
	logger logger.Logger

	Dashboard *views.Dashboard
	Profile   *views.ProfileEditor
	Posts     *views.PostComposer
	Reviews   *views.ReviewsView
}

// ErrorPanel is the full-page message shown instead of the dashboard.
type ErrorPanel struct {
	Title   string
	Message string
	Hint    string
}

// Header is the signed-in identity shown at the top of every page.
type Header struct {
	DisplayName  string
	DisplayImage string
}

// Open resolves the session and, when authenticated, loads the business data.
// A load failure is reported through ErrorPanel, not as an error.
func Open(ctx context.Context, remote Remote, drafter drafting.Drafter, log logger.Logger, opts ...store.Option) *Session {
	l := logger.Component(log, "dashboard")
	if drafter == nil {
		drafter = drafting.NewService(nil, log)
	}

	gate := session.NewGate(remote, log)
	auth := gate.Resolve(ctx)

	st := store.New(remote, log, opts...)
	if err := st.Load(ctx, auth); err != nil {
		l.Warn("dashboard opened without business data", map[string]interface{}{"error": err})
	}

	return &Session{
		remote:    remote,
		store:     st,
		auth:      auth,
		logger:    l,
		Dashboard: views.NewDashboard(st),
		Profile:   views.NewProfileEditor(st),
		Posts:     views.NewPostComposer(st, drafter),
		Reviews:   views.NewReviewsView(st, drafter),
	}
}

func (s *Session) Authenticated() bool {
	return s.auth.Authenticated()
}

func (s *Session) Auth() session.Result {
	return s.auth
}

// User is the signed-in account, or nil.
func (s *Session) User() *models.User {
	return s.auth.User
}

func (s *Session) Store() *store.Store {
	return s.store
}

// LoginURL is where an unauthenticated caller should sign in.
func (s *Session) LoginURL() string {
	return s.remote.LoginURL()
}

// Reload repeats the bulk fetch for the current session.
func (s *Session) Reload(ctx context.Context) error {
	err := s.store.Load(ctx, s.auth)
	s.Profile.Sync()
	return err
}

// ErrorPanel returns the panel to show when an authenticated session has no usable
// data: the load failed or the server sent no profile.
func (s *Session) ErrorPanel() (ErrorPanel, bool) {
	if !s.Authenticated() {
		return ErrorPanel{}, false
	}
	state := s.store.State()
	if state.Err == "" && s.store.Snapshot().Profile != nil {
		return ErrorPanel{}, false
	}
	msg := state.Err
	if msg == "" {
		msg = missingProfile
	}
	return ErrorPanel{Title: errorPanelTitle, Message: msg, Hint: errorPanelHint}, true
}

// Header prefers the signed-in user and falls back to the business name and a
// placeholder avatar, field by field.
func (s *Session) Header() Header {
	var h Header
	if u := s.auth.User; u != nil {
		h = Header{DisplayName: u.Name, DisplayImage: u.Photo}
	}
	if h.DisplayName == "" {
		if p := s.store.Snapshot().Profile; p != nil {
			h.DisplayName = p.Name
		}
	}
	if h.DisplayImage == "" {
		h.DisplayImage = defaultAvatarURL
	}
	return h
}

// Logout ends the session on the server and clears all held data. The local
// state is cleared even when the server call fails.
func (s *Session) Logout(ctx context.Context) error {
	err := s.remote.Logout(ctx)
	s.store.Reset()
	s.auth = session.Unauthenticated()
	s.Profile.Sync()
	if err != nil {
		s.logger.Warn("logout request failed", map[string]interface{}{"error": err})
	}
	return err
}
