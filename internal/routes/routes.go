package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/studyhub/backend/internal/config"
	"github.com/studyhub/backend/internal/handlers"
	"github.com/studyhub/backend/internal/middleware"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/services"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Org        *handlers.OrgHandler
	User       *handlers.UserHandler
	Course     *handlers.CourseHandler
	Note       *handlers.NoteHandler
	Moderation *handlers.ModerationHandler
	Message    *handlers.MessageHandler
	Payment    *handlers.PaymentHandler
	Search     *handlers.SearchHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	registry *org.Registry,
	gate *services.AuthorizationGate,
	jwks *services.ProviderJWKSClient,
	h Handlers,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health and org info (no org header required)
	api.Get("/health", h.Health.Check)
	api.Get("/orgs/:id", h.Org.Info)

	// Webhooks use shared-secret auth, no session token
	webhooks := api.Group("/webhooks")
	webhooks.Post("/payments", h.Payment.HandleWebhook)

	session := middleware.SessionProtected(cfg, jwks)
	actor := middleware.ActorResolver(gate)
	moderator := middleware.ModeratorRequired(gate)

	// Sync runs before the local account exists, so no actor resolution.
	// Stricter limit: it fires on every login.
	api.Post("/users/sync", limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), session, h.User.Sync)

	// Authenticated routes
	auth := api.Group("", session, actor)

	// Users
	auth.Get("/users/me", h.User.Me)
	auth.Get("/users/external/:external_id", h.User.ExternalProfile)
	auth.Get("/users/:id", h.User.Profile)

	// Courses and posts
	auth.Get("/courses", h.Course.ListCourses)
	auth.Post("/courses", h.Course.AddCourse)
	auth.Get("/courses/:id/posts", h.Course.ListPosts)
	auth.Post("/courses/:id/posts", h.Course.CreatePost)
	auth.Get("/posts/:id", h.Course.GetPost)
	auth.Put("/posts/:id", h.Course.UpdatePost)
	auth.Delete("/posts/:id", h.Course.DeletePost)
	auth.Post("/posts/:id/vote", h.Course.VotePost)
	auth.Get("/posts/:id/comments", h.Course.ListComments)
	auth.Post("/posts/:id/comments", h.Course.AddComment)
	auth.Put("/comments/:id", h.Course.UpdateComment)
	auth.Delete("/comments/:id", h.Course.DeleteComment)

	// Notes
	auth.Get("/courses/:id/notes", h.Note.ListNotes)
	auth.Post("/courses/:id/notes", h.Note.Upload)
	auth.Get("/notes/:id", h.Note.GetNote)
	auth.Delete("/notes/:id", h.Note.DeleteNote)
	auth.Post("/notes/:id/vote", h.Note.VoteNote)
	auth.Get("/notes/:id/comments", h.Note.ListComments)
	auth.Post("/notes/:id/comments", h.Note.AddComment)
	auth.Delete("/notes/:id/comments/:comment_id", h.Note.DeleteComment)
	auth.Post("/notes/:id/report", h.Moderation.ReportNote)

	// Reports and role requests, user side
	auth.Post("/reports/users", h.Moderation.ReportUser)
	auth.Post("/roles/request", h.Moderation.RequestRole)

	// Messaging
	auth.Post("/conversations", h.Message.StartConversation)
	auth.Get("/conversations", h.Message.ListConversations)
	auth.Get("/conversations/:id/messages", h.Message.ListMessages)
	auth.Post("/conversations/:id/messages", h.Message.SendMessage)

	// Payments, enabled per org
	auth.Post("/payments/checkout",
		middleware.FeatureRequired(registry, "payments"),
		h.Payment.StartCheckout)

	// Search
	auth.Get("/search", h.Search.Search)

	// Moderation panel
	mod := api.Group("/moderation", session, actor, moderator)
	mod.Get("/users", h.User.ListUsers)
	mod.Get("/reports/users", h.Moderation.ListUserReports)
	mod.Put("/reports/users/:id", h.Moderation.ResolveUserReport)
	mod.Get("/reports/notes", h.Moderation.ListNoteReports)
	mod.Put("/reports/notes/:id", h.Moderation.ResolveNoteReport)
	mod.Get("/roles/requests", h.Moderation.ListRoleRequests)
	mod.Put("/roles/requests/:id", h.Moderation.DecideRoleRequest)
	mod.Get("/notes/queue", h.Note.ReviewQueue)
	mod.Put("/notes/:id/approve", h.Note.ApproveNote)
	mod.Put("/notes/:id/reject", h.Note.RejectNote)
}
