// Package session resolves whether the current caller has an authenticated session.
package session

import (
	"context"

	apperrors "business-dashboard/internal/common/errors"
	"business-dashboard/internal/common/logger"
	"business-dashboard/internal/models"
)

type State string

const (
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
	// StateIndeterminate means the status call failed. It is treated as unauthenticated.
	StateIndeterminate State = "indeterminate"
)

// Result is the resolved authentication, passed by value to the data store.
type Result struct {
	State State
	User  *models.User
	// Err holds the status call failure when State is StateIndeterminate.
	Err error
}

// Authenticated reports whether business data may be loaded.
func (r Result) Authenticated() bool {
	return r.State == StateAuthenticated
}

func AuthenticatedAs(user models.User) Result {
	return Result{State: StateAuthenticated, User: &user}
}

func Unauthenticated() Result {
	return Result{State: StateUnauthenticated}
}

// StatusChecker is the remote call behind the gate.
type StatusChecker interface {
	AuthStatus(ctx context.Context) (models.AuthStatus, error)
}

type Gate struct {
	checker StatusChecker
	logger  logger.Logger
}

func NewGate(checker StatusChecker, log logger.Logger) *Gate {
	return &Gate{checker: checker, logger: logger.Component(log, "session")}
}

// Resolve makes one status call. Any failure resolves to not authenticated.
func (g *Gate) Resolve(ctx context.Context) Result {
	status, err := g.checker.AuthStatus(ctx)
	if err != nil {
		stdErr := apperrors.Normalize(err)
		g.logger.Warn("failed to fetch auth status", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"message":   stdErr.Message,
			"details":   stdErr.Details,
		})
		return Result{State: StateIndeterminate, Err: err}
	}

	if !status.IsAuthenticated {
		g.logger.Debug("no authenticated session", nil)
		return Unauthenticated()
	}

	var user models.User
	if status.User != nil {
		user = *status.User
	}
	g.logger.Info("session authenticated", map[string]interface{}{"email": user.Email})
	return AuthenticatedAs(user)
}

// Links is implemented by checkers that know the sign-in and sign-out endpoints.
type Links interface {
	LoginURL() string
	LogoutURL() string
}

// LoginURL returns where the browser sign-in flow starts, or "" if unknown.
func (g *Gate) LoginURL() string {
	if l, ok := g.checker.(Links); ok {
		return l.LoginURL()
	}
	return ""
}

// LogoutURL returns the sign-out endpoint, or "" if unknown.
func (g *Gate) LogoutURL() string {
	if l, ok := g.checker.(Links); ok {
		return l.LogoutURL()
	}
	return ""
}
