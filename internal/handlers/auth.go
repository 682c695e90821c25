package handlers

import (
	"errors"
	"net/http"

	"github.com/civicsense/backend/internal/gate"
	"github.com/civicsense/backend/internal/localauth"
	"github.com/civicsense/backend/internal/models"
	"github.com/civicsense/backend/internal/remote"
)

// Register handles POST /api/auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sess, err := s.Gate.Register(r.Context(), req)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	respond(w, http.StatusCreated, sess)
}

// Login handles POST /api/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sess, err := s.Gate.SignIn(r.Context(), req)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	respond(w, http.StatusOK, sess)
}

// Logout handles POST /api/auth/logout. Always succeeds.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Gate.SignOut()
	respond(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// Me handles GET /api/auth/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	sess := s.Gate.Session()
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	respond(w, http.StatusOK, sess)
}

// Navigate handles POST /api/navigate. The response tells the shell which
// tab is now active and whether the sign-in prompt should open, preset to the
// role the destination demands.
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	var req models.NavigateRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	dest, ok := gate.ParseDestination(req.Destination)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown destination")
		return
	}
	respond(w, http.StatusOK, s.Gate.Navigate(dest))
}

// respondAuthError translates authenticator failures into HTTP statuses. The
// prompt shows the message verbatim, so the authority's detail is passed
// through when it gave one.
func respondAuthError(w http.ResponseWriter, err error) {
	var authErr *remote.AuthError
	switch {
	case errors.As(err, &authErr):
		respondError(w, http.StatusUnauthorized, authErr.Detail)
	case errors.Is(err, localauth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, localauth.ErrEmailTaken):
		respondError(w, http.StatusConflict, "an account with this email already exists")
	case errors.Is(err, localauth.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "authentication failed")
	}
}
