package api

import (
	"log/slog"
	"net/http"
	"time"
)

// AuditEvent identifies the type of security-relevant action being logged.
type AuditEvent string

const (
	AuditCodeRequested     AuditEvent = "code_requested"
	AuditLoginFailure      AuditEvent = "login_failure"
	AuditLoginSuccess      AuditEvent = "login_success"
	AuditVerifyFailure     AuditEvent = "verify_failure"
	AuditLogout            AuditEvent = "logout"
	AuditAdminDenied       AuditEvent = "admin_denied"
	AuditUserCreated       AuditEvent = "user_created"
	AuditUserStatusChanged AuditEvent = "user_status_changed"
	AuditUserDeleted       AuditEvent = "user_deleted"
	AuditDatabaseViewed    AuditEvent = "database_viewed"
)

// auditLogger wraps slog.Logger for structured security audit logging.
// Entries carry operation context (email, user id) but never raw passwords
// or passcodes.
type auditLogger struct {
	logger *slog.Logger
}

func newAuditLogger(logger *slog.Logger) *auditLogger {
	return &auditLogger{
		logger: logger.With("component", "audit"),
	}
}

func (al *auditLogger) log(event AuditEvent, r *http.Request, attrs ...slog.Attr) {
	baseAttrs := []slog.Attr{
		slog.String("event", string(event)),
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	baseAttrs = append(baseAttrs, attrs...)
	al.logger.LogAttrs(r.Context(), slog.LevelInfo, "audit", baseAttrs...)
}

// logEvent is a convenience for events tied to an account email.
func (al *auditLogger) logEvent(event AuditEvent, r *http.Request, email string, extra ...slog.Attr) {
	attrs := []slog.Attr{
		slog.String("email", email),
	}
	attrs = append(attrs, extra...)
	al.log(event, r, attrs...)
}

// logFailure logs a rejected request with its reason.
func (al *auditLogger) logFailure(event AuditEvent, r *http.Request, reason string, extra ...slog.Attr) {
	attrs := []slog.Attr{
		slog.String("reason", reason),
	}
	attrs = append(attrs, extra...)
	al.log(event, r, attrs...)
}
