package service

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/email"
	"github.com/careteamhq/careteam/internal/careteam/rbac"
	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/internal/careteam/store/drivers/sqlite"
	"github.com/careteamhq/careteam/pkg/idx"
)

// recordingMailer captures outbound invitation emails so tests can
// observe delivery and recover the raw token from the link.
type recordingMailer struct {
	mu   sync.Mutex
	sent []email.InvitationEmail
	done chan struct{}
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{done: make(chan struct{}, 16)}
}

func (m *recordingMailer) SendInvitation(_ context.Context, msg email.InvitationEmail) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

// waitForEmail blocks until the async dispatch lands and returns the
// latest message.
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

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()

	u, err := url.Parse(link)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

type testEnv struct {
	store         store.Store
	mailer        *recordingMailer
	resolver      *rbac.Resolver
	invitations   *InvitationService
	clients       *ClientService
	relationships *RelationshipService
	access        *AccessService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "careteam.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	resolver := rbac.NewResolver(rbac.DefaultCatalog())
	mailer := newRecordingMailer()

	return &testEnv{
		store:    st,
		mailer:   mailer,
		resolver: resolver,
		invitations: &InvitationService{
			Store:     st,
			Mailer:    mailer,
			Resolver:  resolver,
			AppOrigin: "https://careteam.test",
		},
		clients:       &ClientService{Store: st},
		relationships: &RelationshipService{Store: st},
		access:        &AccessService{Store: st, Resolver: resolver},
	}
}

func (e *testEnv) seedUser(t *testing.T, roles ...string) domain.User {
	t.Helper()

	if len(roles) == 0 {
		roles = []string{rbac.RoleCaregiver}
	}
	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        strings.ToLower(idx.New().String()) + "@example.com",
		DisplayName:  "Taylor Reed",
		PasswordHash: "x",
		Roles:        roles,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.store.Users().CreateUser(context.Background(), u))
	return u
}

// seedClient creates a client through the service so the creator's
// primary relationship exists too.
func (e *testEnv) seedClient(t *testing.T, createdBy string) domain.Client {
	t.Helper()

	c, err := e.clients.CreateClient(context.Background(), createdBy, "Jordan Hale", "")
	require.NoError(t, err)
	return c
}
