package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/pkg/httpx"
	"github.com/careteamhq/careteam/pkg/jwtx"
	"github.com/careteamhq/careteam/pkg/slogx"

	_ "github.com/careteamhq/careteam/api/careteam" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	UserService         *service.UserService
	InvitationService   *service.InvitationService
	ClientService       *service.ClientService
	RelationshipService *service.RelationshipService
	AccessService       *service.AccessService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvitations()
	r.registerClients()
	r.registerRelationships()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CareTeam Coordination Service API
//	@version		0.1.0
//	@description	Caregiver coordination service: secure care-team invitations, role-based permissions and
//	@description	per-client capability flags. Invitation tokens are single-use and travel only by email.
//
//	@contact.name				CareTeam Maintainers
//	@contact.url				https://github.com/careteamhq/careteam
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{UserService: r.UserService}

	// Credential endpoints get strict per-IP limits to slow down
	// enumeration and brute force.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	sendHandler := &InvitationSendHandler{InvitationService: r.InvitationService}
	validateHandler := &InvitationValidateHandler{
		InvitationService: r.InvitationService,
		ClientService:     r.ClientService,
	}
	acceptHandler := &InvitationAcceptHandler{InvitationService: r.InvitationService}
	lifecycleHandler := &InvitationLifecycleHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /v1/invitations",
		httpx.Chain(sendHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Token validation is public (the invitee has no account yet) and
	// strictly limited by IP to make token guessing impractical.
	r.Mux.Handle("GET /v1/invitations/validate",
		httpx.Chain(validateHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/invitations/accept",
		httpx.Chain(acceptHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/invitations/{id}/decline",
		httpx.Chain(http.HandlerFunc(lifecycleHandler.HandleDecline),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{id}/cancel",
		httpx.Chain(http.HandlerFunc(lifecycleHandler.HandleCancel),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{id}/resend",
		httpx.Chain(http.HandlerFunc(lifecycleHandler.HandleResend),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{
		ClientService:       r.ClientService,
		AccessService:       r.AccessService,
		InvitationService:   r.InvitationService,
		RelationshipService: r.RelationshipService,
	}

	// Creating client records takes an edit-capable account; view-only
	// roles (family member, client) never hold the edit scope.
	r.Mux.Handle("POST /v1/clients",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.PermEdit, domain.PermAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/clients/{id}/access",
		httpx.Chain(http.HandlerFunc(h.HandleAccess),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/clients/{id}/caregivers",
		httpx.Chain(http.HandlerFunc(h.HandleCaregivers),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.PermView),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/clients/{id}/invitations",
		httpx.Chain(http.HandlerFunc(h.HandleInvitations),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.PermView),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRelationships() {
	h := &RelationshipsHandler{
		RelationshipService: r.RelationshipService,
		AccessService:       r.AccessService,
	}

	r.Mux.Handle("PATCH /v1/relationships/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/relationships/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminUsersHandler{UserService: r.UserService}

	// Role, permission and account-state assignment is platform
	// administration; the admin scope gates the whole surface.
	r.Mux.Handle("PUT /v1/admin/users/{id}/access",
		httpx.Chain(http.HandlerFunc(h.HandleAssignAccess),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.PermAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/admin/users/{id}/active",
		httpx.Chain(http.HandlerFunc(h.HandleSetActive),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.PermAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
