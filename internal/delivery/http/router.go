package http

import (
	"net/http"
	"time"

	"github.com/earnly/earnly-task-service/internal/delivery/http/handlers"
	"github.com/earnly/earnly-task-service/internal/delivery/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	AuthHandler    *handlers.AuthHandler
	TaskHandler    *handlers.TaskHandler
	UserHandler    *handlers.UserHandler
	ProductHandler *handlers.ProductHandler
	AdminHandler   *handlers.AdminHandler
	UploadHandler  *handlers.UploadHandler
	JWTSecret      string
	UploadDir      string
}

// NewRouter wires all API routes. Routes split into a public group, a
// user-token group and an admin-token group.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", deps.AuthHandler.Signup)
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/forgot-password", deps.AuthHandler.ForgotPassword)
			r.Post("/reset-password", deps.AuthHandler.ResetPassword)
		})

		r.Get("/products", deps.ProductHandler.GetProducts)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.JWTSecret, middleware.TokenTypeUser))

			r.Get("/me", deps.UserHandler.GetMe)
			r.Patch("/me", deps.UserHandler.UpdateProfile)
			r.Get("/me/products", deps.ProductHandler.GetProductsForUser)
			r.Get("/me/tasks", deps.TaskHandler.GetUserTasks)
			r.Post("/tasks/submit", deps.TaskHandler.SubmitTask)
			r.Post("/deposits", deps.UserHandler.CreateDeposit)
			r.Post("/withdrawals", deps.UserHandler.CreateWithdrawal)
			r.Post("/uploads", deps.UploadHandler.Upload)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/signup", deps.AdminHandler.Signup)
			r.Post("/login", deps.AdminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(deps.JWTSecret, middleware.TokenTypeAdmin))

				r.Get("/stats", deps.AdminHandler.GetDashboardStats)
				r.Get("/users", deps.AdminHandler.GetAllUsers)
				r.Get("/users/{userID}", deps.AdminHandler.GetUserDetails)
				r.Put("/users/{userID}/balance", deps.AdminHandler.SetUserBalance)
				r.Put("/users/{userID}/overrides", deps.AdminHandler.SetUserNegativeOverrides)
				r.Put("/users/{userID}/wallet", deps.AdminHandler.UpdateUserWallet)
				r.Post("/users/{userID}/reset-tasks", deps.AdminHandler.ResetUserTasks)
				r.Get("/users/{userID}/deposits", deps.AdminHandler.GetUserDeposits)
				r.Post("/deposits/{depositID}/approve", deps.AdminHandler.ApproveDeposit)
				r.Post("/deposits/{depositID}/reject", deps.AdminHandler.RejectDeposit)

				r.Post("/products", deps.ProductHandler.CreateProduct)
				r.Patch("/products/{productID}", deps.ProductHandler.UpdateProduct)
				r.Post("/uploads", deps.UploadHandler.Upload)
			})
		})
	})

	return r
}
