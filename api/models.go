package api

import "github.com/docsgate/docsgate/directory"

// Response is the uniform envelope for operations without a payload.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest is the JSON body for POST /auth/verify.
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyResponse is returned from POST /auth/verify on success. The token is
// also set as the session cookie.
type VerifyResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Token   string               `json:"token"`
	User    directory.PublicUser `json:"user"`
}

// WhoamiResponse is returned from GET /auth/whoami.
type WhoamiResponse struct {
	Success bool                 `json:"success"`
	User    directory.PublicUser `json:"user"`
}

// ListUsersResponse is returned from GET /admin/users.
type ListUsersResponse struct {
	Success bool                   `json:"success"`
	Users   []directory.PublicUser `json:"users"`
}

// CreateUserRequest is the JSON body for POST /admin/users.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// UserResponse is returned from user create and update operations.
type UserResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	User    directory.PublicUser `json:"user"`
}

// SetActiveRequest is the JSON body for PATCH /admin/users/{userID}.
type SetActiveRequest struct {
	Active *bool `json:"isActive"`
}

// DatabaseDumpResponse is the redacted diagnostic view of both collections.
type DatabaseDumpResponse struct {
	Success bool         `json:"success"`
	Data    DatabaseDump `json:"data"`
}

// DatabaseDump carries the redacted records plus aggregate stats.
type DatabaseDump struct {
	Users       []directory.PublicUser `json:"users"`
	OTPs        []RedactedOTP          `json:"otps"`
	Stats       DatabaseStats          `json:"stats"`
	StorageType string                 `json:"storageType"`
	LastUpdated string                 `json:"lastUpdated"`
}

// RedactedOTP is a passcode record with the code replaced by a state marker.
type RedactedOTP struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expiresAt"`
	Attempts  int    `json:"attempts"`
	Used      bool   `json:"isUsed"`
	CreatedAt string `json:"createdAt"`
}

// DatabaseStats summarizes both collections.
type DatabaseStats struct {
	TotalUsers    int            `json:"totalUsers"`
	ActiveUsers   int            `json:"activeUsers"`
	InactiveUsers int            `json:"inactiveUsers"`
	UsersByRole   map[string]int `json:"usersByRole"`
	TotalOTPs     int            `json:"totalOTPs"`
	ActiveOTPs    int            `json:"activeOTPs"`
	UsedOTPs      int            `json:"usedOTPs"`
	ExpiredOTPs   int            `json:"expiredOTPs"`
}
