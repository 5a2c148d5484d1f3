package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	Teams          *handlers.TeamsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	authenticated := cfg.AuthMiddleware.Authenticate()

	tickets := app.Group("/tickets", authenticated)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/number/:number", cfg.Tickets.GetTicketByNumber)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/assign", auth.RequireRole(domain.RoleAdministrator), cfg.Tickets.AssignTicket)
	tickets.Post("/:id/status", cfg.Tickets.ChangeStatus)
	tickets.Post("/:id/ready", auth.RequireRole(domain.RoleSpecialist), cfg.Tickets.MarkReady)
	tickets.Post("/:id/escalate", cfg.Tickets.EscalateTicket)
	tickets.Post("/:id/review", cfg.Tickets.ReviewResolution)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/attachments", cfg.Tickets.AddAttachment)
	tickets.Post("/:id/satisfaction", cfg.Tickets.RecordSatisfaction)

	teams := app.Group("/teams", authenticated)
	teams.Get("", cfg.Teams.ListTeams)
	teams.Get("/:id", cfg.Teams.GetTeam)

	adminOnly := auth.RequireRole(domain.RoleAdministrator)
	teams.Post("", adminOnly, cfg.Teams.CreateTeam)
	teams.Post("/:id/members", adminOnly, cfg.Teams.AddMember)
	teams.Delete("/:id/members/:specialistId", adminOnly, cfg.Teams.RemoveMember)

	users := app.Group("/users", authenticated)
	users.Get("/specialists", cfg.Users.ListSpecialists)
	users.Get("/:id", cfg.Users.GetUser)
	users.Patch("/:id/status", adminOnly, cfg.Users.UpdateAccountStatus)
}
