package api

import (
	"net/http"
	"strings"
)

// Security-relevant events are logged with a stable action name so they can
// be filtered downstream. The generic client responses never change based on
// these; only the log carries the detail.

func (h *Handler) auditRegister(r *http.Request, userID int64, username string) {
	h.audit(r, "auth.register", "user_id", userID, "username", username)
}

func (h *Handler) auditLoginSuccess(r *http.Request, userID int64, username string) {
	h.audit(r, "auth.login.success", "user_id", userID, "username", username)
}

func (h *Handler) auditLoginFailed(r *http.Request, username, reason string) {
	h.audit(r, "auth.login.failed", "username", username, "reason", reason)
}

func (h *Handler) auditLogout(r *http.Request, userID int64) {
	h.audit(r, "auth.logout", "user_id", userID)
}

func (h *Handler) auditCredentialChange(r *http.Request, userID int64) {
	h.audit(r, "auth.password.changed", "user_id", userID)
}

func (h *Handler) audit(r *http.Request, action string, args ...any) {
	base := []any{"remote", r.RemoteAddr}
	if ua := strings.TrimSpace(r.UserAgent()); ua != "" {
		base = append(base, "user_agent", ua)
	}
	h.log.Info(action, append(base, args...)...)
}
