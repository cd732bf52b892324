package api

import (
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/go-chi/chi/v5"

	"github.com/docsgate/docsgate/directory"
)

// ListUsers handles GET /admin/users.
func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.dir.List(r.Context(), callerRole(r))
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListUsersResponse{
		Success: true,
		Users:   users,
	})
}

// CreateUser handles POST /admin/users. The password field is optional; a
// generated credential is emailed to the new account when omitted.
func (a *API) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[CreateUserRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if req.Email == "" || req.Name == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "email, name, and role are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	user, err := a.dir.Create(r.Context(), callerRole(r), req.Email, req.Name, directory.Role(req.Role), req.Password)
	if err != nil {
		mapError(w, err)
		return
	}

	a.audit.logEvent(AuditUserCreated, r, user.Email,
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)))
	writeJSON(w, http.StatusCreated, UserResponse{
		Success: true,
		Message: "user created",
		User:    user,
	})
}

// SetUserActive handles PATCH /admin/users/{userID}. Only the active flag is
// mutable after creation.
func (a *API) SetUserActive(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[SetActiveRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if req.Active == nil {
		writeError(w, http.StatusBadRequest, "isActive is required")
		return
	}

	id := chi.URLParam(r, "userID")
	user, err := a.dir.SetActive(r.Context(), callerRole(r), id, *req.Active)
	if err != nil {
		mapError(w, err)
		return
	}

	a.audit.logEvent(AuditUserStatusChanged, r, user.Email,
		slog.String("user_id", user.ID),
		slog.Bool("active", *req.Active))
	writeJSON(w, http.StatusOK, UserResponse{
		Success: true,
		User:    user,
	})
}

// DeleteUser handles DELETE /admin/users/{userID}.
func (a *API) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")
	if err := a.dir.Delete(r.Context(), callerRole(r), id); err != nil {
		mapError(w, err)
		return
	}

	a.audit.log(AuditUserDeleted, r, slog.String("user_id", id))
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "user deleted"})
}
