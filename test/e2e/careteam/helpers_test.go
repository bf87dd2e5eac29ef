package careteam_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/careteamhq/careteam/internal/careteam/email"
	careteamhttp "github.com/careteamhq/careteam/internal/careteam/http"
	"github.com/careteamhq/careteam/internal/careteam/rbac"
	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/internal/careteam/store/drivers/sqlite"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
	"github.com/careteamhq/careteam/pkg/jwtx"
	"github.com/careteamhq/careteam/pkg/slogx"
)

/*
 * Common helpers for careteam service end-to-end tests. The service is run
 * in-process behind an httptest server with a recording mailer, so tests can
 * capture the invitation tokens that production only ever sends by email.
 */

const (
	testIssuer    = "careteam-e2e"
	testAppOrigin = "https://careteam.test"

	coordinatorEmail    = "coordinator@example.com"
	coordinatorName     = "Casey Coordinator"
	caregiverEmail      = "caregiver@example.com"
	caregiverName       = "Riley Caregiver"
	defaultTestPassword = "correct-horse-battery"
)

// TestMain relaxes the rate limit profiles before any server is built.
// Every request in this suite arrives from the loopback address, so the
// production per-IP limits would trip after a handful of tests.
func TestMain(m *testing.M) {
	relaxed := httpx.RateLimitConfig{
		RequestsPerWindow: 10000,
		Window:            time.Minute,
		Burst:             10000,
	}
	httpx.StrictLimit = relaxed
	httpx.ModerateLimit = relaxed
	httpx.LenientLimit = relaxed

	os.Exit(m.Run())
}

// recordingMailer captures invitation emails instead of sending them.
type recordingMailer struct {
	mu   sync.Mutex
	sent []email.InvitationEmail
	done chan struct{}
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{done: make(chan struct{}, 64)}
}

func (m *recordingMailer) SendInvitation(_ context.Context, msg email.InvitationEmail) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

// waitForEmail blocks until the next invitation email is dispatched and
// returns it. Delivery runs on a background goroutine, so tests must not
// read m.sent directly.
func (m *recordingMailer) waitForEmail(t *testing.T) email.InvitationEmail {
	t.Helper()

	select {
	case <-m.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for invitation email")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

// tokenFromLink extracts the raw invitation token from an acceptance link.
func tokenFromLink(t *testing.T, link string) string {
	t.Helper()

	u, err := url.Parse(link)
	require.NoError(t, err)

	token := u.Query().Get("token")
	require.NotEmpty(t, token, "acceptance link should carry a token")
	return token
}

// testServer is an in-process careteam service instance.
type testServer struct {
	URL    string
	Mailer *recordingMailer
	Store  *sqlite.Store
}

// setupServer starts a service instance with the default invitation TTL.
func setupServer(t *testing.T) *testServer {
	t.Helper()
	return setupServerWithTTL(t, 0)
}

// setupServerWithTTL starts a service instance with the given invitation
// TTL. A negative TTL issues invitations that are already expired, which is
// how the expiry tests exercise lazy expiry end to end.
func setupServerWithTTL(t *testing.T, ttl time.Duration) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "careteam.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), testIssuer)
	require.NoError(t, err)

	resolver := rbac.NewResolver(rbac.DefaultCatalog())
	mailer := newRecordingMailer()

	logger := slogx.New(slogx.Config{
		Service: "careteam",
		Env:     "test",
		Level:   "error",
		Format:  "text",
	})

	router := careteamhttp.NewRouter(signer, "e2e", st, logger)
	router.UserService = &service.UserService{
		Store:    st,
		Resolver: resolver,
		Signer:   signer,
		Issuer:   testIssuer,
	}
	router.InvitationService = &service.InvitationService{
		Store:     st,
		Mailer:    mailer,
		Resolver:  resolver,
		AppOrigin: testAppOrigin,
		TTL:       ttl,
	}
	router.ClientService = &service.ClientService{Store: st}
	router.RelationshipService = &service.RelationshipService{Store: st}
	router.AccessService = &service.AccessService{Store: st, Resolver: resolver}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{
		URL:    server.URL,
		Mailer: mailer,
		Store:  st,
	}
}

// registerUser registers an account and returns an authenticated SDK client
// alongside the account info.
func registerUser(t *testing.T, ts *testServer, userEmail, displayName string) (*careteamsdk.Client, careteamsdk.UserInfo) {
	t.Helper()

	sdk := careteamsdk.NewClient(ts.URL)
	resp, err := sdk.Register(t.Context(), careteamsdk.RegisterRequest{
		Email:       userEmail,
		DisplayName: displayName,
		Password:    defaultTestPassword,
	})
	require.NoError(t, err, "registration should succeed")
	require.NotEmpty(t, resp.AccessToken, "registration should issue an access token")
	require.NotEmpty(t, resp.User.ID)

	return sdk, resp.User
}

// createClient creates a care recipient through the given session.
func createClient(t *testing.T, sdk *careteamsdk.Client, fullName string) careteamsdk.ClientResponse {
	t.Helper()

	client, err := sdk.CreateClient(t.Context(), careteamsdk.ClientRequest{FullName: fullName})
	require.NoError(t, err, "client creation should succeed")
	require.NotEmpty(t, client.ID)
	return client
}

// sendInvitation issues an invitation and returns the invitation record plus
// the raw token captured from the dispatched email.
func sendInvitation(t *testing.T, ts *testServer, sdk *careteamsdk.Client, clientID, invitee, role string, perms []string) (careteamsdk.InvitationResponse, string) {
	t.Helper()

	inv, err := sdk.SendInvitation(t.Context(), careteamsdk.InvitationRequest{
		ClientID:    clientID,
		Email:       invitee,
		Role:        role,
		Permissions: perms,
	})
	require.NoError(t, err, "invitation should be issued")
	require.Equal(t, "pending", inv.Status)

	msg := ts.Mailer.waitForEmail(t)
	require.Equal(t, invitee, msg.To)

	return inv, tokenFromLink(t, msg.InvitationLink)
}

// requireAPIError asserts that err is an API error carrying the given wire
// code and HTTP status.
func requireAPIError(t *testing.T, err error, code string, status int) {
	t.Helper()

	require.Error(t, err)
	var apiErr *careteamsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected an API error, got: %v", err)
	require.Equal(t, code, apiErr.Code, "unexpected error code")
	require.Equal(t, status, apiErr.StatusCode, fmt.Sprintf("unexpected status for %s", code))
}
