package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"business-dashboard/internal/common/metrics"
	"business-dashboard/internal/models"
)

const maxRequestBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(v)
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(s.cfg.SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) currentUser(r *http.Request) (models.User, bool, error) {
	return s.sessions.Lookup(r.Context(), s.sessionID(r))
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok, err := s.currentUser(r)
		if err != nil {
			s.logger.Error("session lookup failed", map[string]interface{}{"error": err})
			writeError(w, http.StatusInternalServerError, "session lookup failed")
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	user, ok, err := s.currentUser(r)
	if err != nil {
		s.logger.Error("session lookup failed", map[string]interface{}{"error": err})
		writeError(w, http.StatusInternalServerError, "session lookup failed")
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, models.AuthStatus{IsAuthenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, models.AuthStatus{IsAuthenticated: true, User: &user})
}

// handleAuthStart signs the demo user in directly; there is no identity provider.
func (s *Server) handleAuthStart(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessions.Create(r.Context(), s.cfg.DemoUser)
	if err != nil {
		s.logger.Error("session create failed", map[string]interface{}{"error": err})
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	metrics.DevServerSessionsActive.Inc()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.cfg.SessionTTL.Seconds()),
	})
	s.logger.Info("demo session created", map[string]interface{}{"email": s.cfg.DemoUser.Email})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if id := s.sessionID(r); id != "" {
		existed, err := s.sessions.Delete(r.Context(), id)
		if err != nil {
			s.logger.Error("session delete failed", map[string]interface{}{"error": err})
			writeError(w, http.StatusInternalServerError, "could not end session")
			return
		}
		if existed {
			metrics.DevServerSessionsActive.Dec()
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Snapshot())
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := decodeBody(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile body")
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	writeJSON(w, http.StatusOK, s.data.ReplaceProfile(p))
}

type createPostBody struct {
	Content string `json:"content"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var body createPostBody
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid post body")
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	writeJSON(w, http.StatusCreated, s.data.AddPost(body.Content))
}

type replyBody struct {
	Reply string `json:"reply"`
}

func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}
	var body replyBody
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid reply body")
		return
	}
	if strings.TrimSpace(body.Reply) == "" {
		writeError(w, http.StatusBadRequest, "reply is required")
		return
	}
	review, ok := s.data.Reply(id, body.Reply)
	if !ok {
		writeError(w, http.StatusNotFound, "review not found")
		return
	}
	writeJSON(w, http.StatusOK, review)
}
