package api

import (
	"net/http"
	"time"

	"github.com/docsgate/docsgate/auth"
	"github.com/docsgate/docsgate/directory"
)

// otpDumpWindow bounds how far back passcode records appear in the dump.
const otpDumpWindow = 24 * time.Hour

// DatabaseDump handles GET /admin/database: a redacted diagnostic view of
// both collections. Password hashes are dropped with the rest of the private
// fields, and passcode digits are replaced by a state marker.
func (a *API) DatabaseDump(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()

	users := a.users.All(ctx)
	stats := DatabaseStats{
		TotalUsers:  len(users),
		UsersByRole: make(map[string]int),
	}
	publicUsers := make([]directory.PublicUser, 0, len(users))
	for _, u := range users {
		if u.Active {
			stats.ActiveUsers++
		} else {
			stats.InactiveUsers++
		}
		stats.UsersByRole[string(u.Role)]++
		publicUsers = append(publicUsers, u.Public())
	}

	otps := a.otps.All(ctx)
	stats.TotalOTPs = len(otps)
	recent := make([]RedactedOTP, 0, len(otps))
	for _, o := range otps {
		switch {
		case o.Used:
			stats.UsedOTPs++
		case o.Expired(now):
			stats.ExpiredOTPs++
		default:
			stats.ActiveOTPs++
		}
		if now.Sub(o.CreatedAt) > otpDumpWindow {
			continue
		}
		recent = append(recent, redactOTP(o, now))
	}

	a.audit.logEvent(AuditDatabaseViewed, r, claimsFromContext(ctx).Email)
	writeJSON(w, http.StatusOK, DatabaseDumpResponse{
		Success: true,
		Data: DatabaseDump{
			Users:       publicUsers,
			OTPs:        recent,
			Stats:       stats,
			StorageType: a.backend,
			LastUpdated: now.Format(time.RFC3339),
		},
	})
}

// redactOTP replaces the passcode digits with a state marker before the
// record leaves the server.
func redactOTP(o *auth.OTP, now time.Time) RedactedOTP {
	marker := "ACTIVE"
	switch {
	case o.Used:
		marker = "USED"
	case o.Expired(now):
		marker = "EXPIRED"
	}
	return RedactedOTP{
		ID:        o.ID,
		Email:     o.Email,
		Code:      marker,
		ExpiresAt: o.ExpiresAt.UTC().Format(time.RFC3339),
		Attempts:  o.Attempts,
		Used:      o.Used,
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
