// Package gate is the access-gate state machine: it tracks whether the
// caller is anonymous or authenticated with a role, guards navigation to the
// submission and management surfaces, and runs sign-in/registration against
// whichever authenticator is configured (remote authority or the offline
// credential store).
package gate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/civicsense/backend/internal/models"
	"github.com/civicsense/backend/internal/session"
)

// Destination is a navigable surface of the shell.
type Destination string

const (
	DestReport      Destination = "report"
	DestFeed        Destination = "feed"
	DestLeaderboard Destination = "leaderboard"
	DestAdmin       Destination = "admin"
)

// ParseDestination maps a raw tab name to a Destination.
func ParseDestination(raw string) (Destination, bool) {
	switch Destination(raw) {
	case DestReport, DestFeed, DestLeaderboard, DestAdmin:
		return Destination(raw), true
	}
	return "", false
}

// requiredRole maps guarded destinations to the role they demand. Feed and
// leaderboard are unguarded and absent.
var requiredRole = map[Destination]models.Role{
	DestReport: models.RoleUser,
	DestAdmin:  models.RoleMunicipal,
}

// State is the gate's tagged variant: Anonymous, or Authenticated with a
// session. Callers check Authenticated before reading Session — the zero
// Session means nothing when anonymous.
type State struct {
	Authenticated bool
	Session       models.Session
}

// Role returns the authenticated role, or "" when anonymous.
func (s State) Role() models.Role {
	if !s.Authenticated {
		return ""
	}
	return s.Session.Role
}

// Authenticator is the sign-in surface the gate drives. The remote client
// and the offline credential store both satisfy it; the gate does not know
// which it holds.
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.Session, error)
}

// Gate guards the report-producing and report-managing surfaces.
type Gate struct {
	mu    sync.Mutex
	state State
	authn Authenticator
	store session.Store
	log   *slog.Logger
}

// New builds a gate and restores any persisted session. A store error or
// corrupt persisted state degrades to anonymous rather than failing — the
// user just signs in again.
func New(authn Authenticator, store session.Store, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}
	g := &Gate{authn: authn, store: store, log: log}

	sess, err := store.Load()
	if err != nil {
		log.Warn("gate: could not load persisted session, starting anonymous", "error", err)
		return g
	}
	if sess != nil {
		g.state = State{Authenticated: true, Session: *sess}
		log.Debug("gate: restored session", "role", sess.Role, "email", sess.Email)
	}
	return g
}

// Current returns the gate's state.
func (g *Gate) Current() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Session returns the active session, or nil when anonymous. Convenience for
// engine calls that take *models.Session.
func (g *Gate) Session() *models.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.Authenticated {
		return nil
	}
	copied := g.state.Session
	return &copied
}

// Navigate applies the guard rule for dest. Navigation itself is never
// blocked — the active destination always becomes dest — but reaching a
// guarded destination without its role additionally opens the sign-in
// prompt, preset to the role the destination implies.
func (g *Gate) Navigate(dest Destination) models.NavigateResponse {
	resp := models.NavigateResponse{Active: string(dest)}

	role, guarded := requiredRole[dest]
	if !guarded {
		return resp
	}
	if g.Current().Role() == role {
		return resp
	}
	resp.PromptOpen = true
	resp.PromptMode = role
	return resp
}

// SignIn authenticates and, on success, transitions to Authenticated and
// persists the session. On failure the state is left exactly as it was; the
// returned error carries the authenticator's detail for the prompt.
func (g *Gate) SignIn(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	sess, err := g.authn.Login(ctx, req)
	if err != nil {
		return models.Session{}, err
	}
	g.adopt(sess)
	return sess, nil
}

// Register creates an account and signs it in.
func (g *Gate) Register(ctx context.Context, req models.RegisterRequest) (models.Session, error) {
	sess, err := g.authn.Register(ctx, req)
	if err != nil {
		return models.Session{}, err
	}
	g.adopt(sess)
	return sess, nil
}

// SignOut transitions to anonymous unconditionally and clears persistence.
func (g *Gate) SignOut() {
	g.mu.Lock()
	g.state = State{}
	g.mu.Unlock()
	if err := g.store.Clear(); err != nil {
		g.log.Warn("gate: could not clear persisted session", "error", err)
	}
}

// adopt installs a session and persists it. Persistence is best-effort: a
// write failure costs the user a restart survival, not their sign-in.
func (g *Gate) adopt(sess models.Session) {
	g.mu.Lock()
	g.state = State{Authenticated: true, Session: sess}
	g.mu.Unlock()
	if err := g.store.Save(sess); err != nil {
		g.log.Warn("gate: could not persist session", "error", err)
	}
}
