package api

import (
	"net/http"
	"strconv"

	"github.com/opentocoder/docker-panel/internal/auth"
	"github.com/opentocoder/docker-panel/internal/metrics"
	"github.com/opentocoder/docker-panel/internal/users"
)

type userInfo struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Role     users.Role `json:"role"`
}

func userInfoFromSession(s *auth.Session) userInfo {
	return userInfo{ID: s.UserID, Username: s.Username, Role: s.Role}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	key := clientKey(r)
	limit := s.loginLimiter.Check(key)
	if !limit.Allowed {
		metrics.Get().RateLimited.Inc()
		w.Header().Set("Retry-After", strconv.Itoa(limit.RetryAfter))
		WriteJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":             "too many login attempts, please try again later",
			"retryAfterSeconds": limit.RetryAfter,
		})
		return
	}

	var req loginRequest
	if err := BindJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	u, found, err := s.users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		s.logger.Error("user lookup failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "login unavailable")
		return
	}
	if !found || !auth.CheckPassword(u.PasswordHash, req.Password) {
		metrics.Get().LoginFailures.Inc()
		s.logger.Warn("login failed", "username", req.Username, "client", key)
		WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"error":             "invalid username or password",
			"remainingAttempts": limit.Remaining,
		})
		return
	}

	token, err := s.tokens.Sign(u)
	if err != nil {
		s.logger.Error("token signing failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "login unavailable")
		return
	}

	s.loginLimiter.Reset(key)
	metrics.Get().LoginSuccesses.Inc()
	auth.SetSessionCookie(w, token, s.cfg.Dev)
	s.logger.Info("login", "username", u.Username, "role", u.Role)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    userInfo{ID: u.ID, Username: u.Username, Role: u.Role},
	})
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := BindJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, _ := s.gate.Session(r)
	u, message, denial := s.registration.Register(r.Context(), sess, req.Username, req.Password, req.ConfirmPassword)
	if denial != nil {
		writeDenial(w, denial)
		return
	}

	s.logger.Info("user registered", "username", u.Username, "role", u.Role)
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": message,
		"user":    userInfo{ID: u.ID, Username: u.Username, Role: u.Role},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess, denial := s.gate.RequireAuth(r)
	if denial != nil {
		writeDenial(w, denial)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": userInfoFromSession(sess),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
