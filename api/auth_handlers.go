package api

import (
	"log/slog"
	"net/http"

	"github.com/docsgate/docsgate/directory"
)

// Login handles POST /auth/login: password check plus passcode dispatch. The
// response never distinguishes unknown accounts from wrong passwords.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[LoginRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if err := a.auth.RequestCode(r.Context(), req.Email, req.Password); err != nil {
		a.audit.logEvent(AuditLoginFailure, r, req.Email)
		mapError(w, err)
		return
	}

	a.audit.logEvent(AuditCodeRequested, r, req.Email)
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "verification code sent to your email",
	})
}

// Verify handles POST /auth/verify: exchanges the passcode for a session
// token and sets the session cookie.
func (a *API) Verify(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[VerifyRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "email and code are required")
		return
	}

	token, user, err := a.auth.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		a.audit.logEvent(AuditVerifyFailure, r, req.Email)
		mapError(w, err)
		return
	}

	writeSessionCookie(w, r, token, a.sessionTTL())
	a.audit.logEvent(AuditLoginSuccess, r, user.Email, slog.String("user_id", user.ID))
	writeJSON(w, http.StatusOK, VerifyResponse{
		Success: true,
		Message: "login successful",
		Token:   token,
		User:    user,
	})
}

// Logout handles POST /auth/logout. It always succeeds: clearing the cookie
// is safe whether or not a valid session was presented.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := claimsFromContext(r.Context()); claims != nil {
		a.audit.logEvent(AuditLogout, r, claims.Email)
	}
	clearSessionCookie(w, r)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "logged out"})
}

// Whoami handles GET /auth/whoami: returns the live directory record for the
// session holder, rejecting sessions whose account has since been removed.
func (a *API) Whoami(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	user, ok := a.dir.FindByID(r.Context(), claims.UserID)
	if !ok {
		clearSessionCookie(w, r)
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	writeJSON(w, http.StatusOK, WhoamiResponse{
		Success: true,
		User:    user.Public(),
	})
}

func callerRole(r *http.Request) directory.Role {
	if claims := claimsFromContext(r.Context()); claims != nil {
		return claims.Role
	}
	return ""
}
