package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsgate/docsgate/auth"
	"github.com/docsgate/docsgate/directory"
	"github.com/docsgate/docsgate/storage"
	"github.com/docsgate/docsgate/storage/memory"
)

// codeMailer captures issued verification codes instead of sending them.
type codeMailer struct {
	codes []string
}

func (m *codeMailer) SendOTP(ctx context.Context, to, name, code string) error {
	m.codes = append(m.codes, code)
	return nil
}

func (m *codeMailer) SendWelcome(ctx context.Context, to, name, role, password string) error {
	return nil
}

func (m *codeMailer) lastCode() string {
	return m.codes[len(m.codes)-1]
}

func newTestServer(t *testing.T) (*httptest.Server, *codeMailer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	mailer := &codeMailer{}

	users := storage.NewCollection[*directory.User](store, directory.UsersCollection, logger)
	otps := storage.NewCollection[*auth.OTP](store, auth.OTPCollection, logger)

	dir := directory.NewService(users, mailer, logger)
	_, err := dir.Seed(context.Background())
	require.NoError(t, err)

	codec := auth.NewTokenCodec([]byte("test-secret"), auth.DefaultSessionTTL)
	authSvc := auth.NewService(dir, otps, mailer, codec, logger)

	a := New(authSvc, dir, users, otps, "memory", WithLogger(logger))
	ts := httptest.NewServer(a.Router())
	t.Cleanup(ts.Close)
	return ts, mailer
}

func postJSON(t *testing.T, url string, body any, token string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func doRequest(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// loginAs runs the full two-step flow and returns the session token.
func loginAs(t *testing.T, ts *httptest.Server, mailer *codeMailer, email, password string) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/auth/login", LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/auth/verify", VerifyRequest{Email: email, Code: mailer.lastCode()}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody[VerifyResponse](t, resp)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestLoginFlow(t *testing.T) {
	ts, mailer := newTestServer(t)

	resp := postJSON(t, ts.URL+"/auth/login", LoginRequest{Email: "admin@example.com", Password: "admin123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody[Response](t, resp)
	assert.True(t, out.Success)
	require.Len(t, mailer.codes, 1)

	resp = postJSON(t, ts.URL+"/auth/verify", VerifyRequest{Email: "admin@example.com", Code: mailer.lastCode()}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The session is set both as cookie and in the body.
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "docsgate_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)

	verified := decodeBody[VerifyResponse](t, resp)
	assert.True(t, verified.Success)
	assert.Equal(t, sessionCookie.Value, verified.Token)
	assert.Equal(t, "admin@example.com", verified.User.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts, mailer := newTestServer(t)

	for _, req := range []LoginRequest{
		{Email: "admin@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "admin123"},
	} {
		resp := postJSON(t, ts.URL+"/auth/login", req, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		out := decodeBody[Response](t, resp)
		// Same message for unknown accounts and wrong passwords.
		assert.Equal(t, "invalid email or password", out.Message)
	}
	assert.Empty(t, mailer.codes)
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	ts, mailer := newTestServer(t)

	resp := postJSON(t, ts.URL+"/auth/login", LoginRequest{Email: "admin@example.com", Password: "admin123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	wrong := "000000"
	if mailer.lastCode() == wrong {
		wrong = "000001"
	}
	resp = postJSON(t, ts.URL+"/auth/verify", VerifyRequest{Email: "admin@example.com", Code: wrong}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestWhoami(t *testing.T) {
	ts, mailer := newTestServer(t)
	token := loginAs(t, ts, mailer, "admin@example.com", "admin123")

	resp := doRequest(t, http.MethodGet, ts.URL+"/auth/whoami", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody[WhoamiResponse](t, resp)
	assert.Equal(t, "admin@example.com", out.User.Email)
	assert.Equal(t, directory.RoleAdmin, out.User.Role)

	resp = doRequest(t, http.MethodGet, ts.URL+"/auth/whoami", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestLogout(t *testing.T) {
	ts, mailer := newTestServer(t)
	token := loginAs(t, ts, mailer, "admin@example.com", "admin123")

	resp := doRequest(t, http.MethodPost, ts.URL+"/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cleared *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "docsgate_session" {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
	resp.Body.Close()

	// Logout without a session still succeeds.
	resp = doRequest(t, http.MethodPost, ts.URL+"/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminUserManagement(t *testing.T) {
	ts, mailer := newTestServer(t)
	token := loginAs(t, ts, mailer, "admin@example.com", "admin123")

	resp := doRequest(t, http.MethodGet, ts.URL+"/admin/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed := decodeBody[ListUsersResponse](t, resp)
	require.Len(t, listed.Users, 3)

	resp = postJSON(t, ts.URL+"/admin/users", CreateUserRequest{
		Email: "new@example.com",
		Name:  "New User",
		Role:  "member",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[UserResponse](t, resp)
	assert.Equal(t, "new@example.com", created.User.Email)
	assert.True(t, created.User.Active)

	// Duplicate email conflicts.
	resp = postJSON(t, ts.URL+"/admin/users", CreateUserRequest{
		Email: "new@example.com",
		Name:  "Dup",
		Role:  "member",
	}, token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/admin/users", CreateUserRequest{
		Email: "bad@example.com",
		Name:  "Bad Role",
		Role:  "superuser",
	}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/admin/users", CreateUserRequest{
		Email: "not-an-email",
		Name:  "Bad Email",
		Role:  "member",
	}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	userURL := fmt.Sprintf("%s/admin/users/%s", ts.URL, created.User.ID)

	active := false
	resp = doRequest(t, http.MethodPatch, userURL, token, SetActiveRequest{Active: &active})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decodeBody[UserResponse](t, resp)
	assert.False(t, patched.User.Active)

	// The active flag is required in the patch body.
	resp = doRequest(t, http.MethodPatch, userURL, token, map[string]string{"name": "renamed"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, http.MethodDelete, userURL, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, http.MethodDelete, userURL, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	ts, mailer := newTestServer(t)

	// No session at all.
	resp := doRequest(t, http.MethodGet, ts.URL+"/admin/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// A member session is rejected with 403 everywhere under /admin.
	token := loginAs(t, ts, mailer, "member@example.com", "member123")
	for _, probe := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/users"},
		{http.MethodPost, "/admin/users"},
		{http.MethodDelete, "/admin/users/some-id"},
		{http.MethodGet, "/admin/database"},
	} {
		resp := doRequest(t, probe.method, ts.URL+probe.path, token, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", probe.method, probe.path)
		resp.Body.Close()
	}
}

func TestDatabaseDumpIsRedacted(t *testing.T) {
	ts, mailer := newTestServer(t)
	token := loginAs(t, ts, mailer, "admin@example.com", "admin123")

	// Leave a second, unused code behind for another account.
	resp := postJSON(t, ts.URL+"/auth/login", LoginRequest{Email: "member@example.com", Password: "member123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	pendingCode := mailer.lastCode()

	resp = doRequest(t, http.MethodGet, ts.URL+"/admin/database", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	// Password hashes never leak.
	assert.NotContains(t, string(raw), "$2a$")

	var out DatabaseDumpResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "memory", out.Data.StorageType)
	assert.Equal(t, 3, out.Data.Stats.TotalUsers)
	assert.Equal(t, 2, out.Data.Stats.TotalOTPs)
	assert.Equal(t, 1, out.Data.Stats.UsedOTPs)
	assert.Equal(t, 1, out.Data.Stats.ActiveOTPs)

	// Every passcode entry carries a state marker in place of the digits.
	markers := map[string]bool{}
	for _, o := range out.Data.OTPs {
		assert.NotEqual(t, pendingCode, o.Code)
		assert.Contains(t, []string{"USED", "ACTIVE", "EXPIRED"}, o.Code)
		markers[o.Code] = true
	}
	assert.True(t, markers["USED"])
	assert.True(t, markers["ACTIVE"])
}

func TestOpenAPISpecIsServed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "DocsGate API")
}
