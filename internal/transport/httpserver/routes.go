package httpserver

import (
	"net/http"
	"time"

	"movein-app-go/internal/transport/httpserver/handler"
	authmw "movein-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(origins []string, handlers *handler.Handlers, auth *authmw.SessionAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Post("/login", handlers.Common.Login)

		// The OAuth callback is a browser redirect from Google; it reads
		// the session cookie itself and redirects with ?error= instead of
		// answering 401 JSON.
		r.Get("/auth/google/callback", handlers.Common.GoogleCallback)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/logout", handlers.Common.Logout)
			r.Get("/user", handlers.Common.Me)
			r.Get("/auth/google", handlers.Common.GoogleAuth)

			r.Get("/todos", handlers.Todos.ListTodos)
			r.Post("/todos", handlers.Todos.CreateTodo)
			r.Patch("/todos/{id}", handlers.Todos.UpdateTodo)
			r.Delete("/todos/{id}", handlers.Todos.DeleteTodo)

			r.Get("/expenses", handlers.Expenses.ListExpenses)
			r.Post("/expenses", handlers.Expenses.CreateExpense)
			r.Patch("/expenses/{id}", handlers.Expenses.UpdateExpense)
			r.Delete("/expenses/{id}", handlers.Expenses.DeleteExpense)

			r.Get("/categories", handlers.Expenses.ListCategories)
			r.Post("/categories", handlers.Expenses.CreateCategory)
			r.Delete("/categories/{id}", handlers.Expenses.DeleteCategory)
			r.Patch("/categories/{id}/reassign", handlers.Expenses.ReassignCategory)

			r.Get("/projects", handlers.Projects.ListProjects)
			r.Post("/projects", handlers.Projects.CreateProject)
			r.Patch("/projects/{id}", handlers.Projects.UpdateProject)
			r.Delete("/projects/{id}", handlers.Projects.DeleteProject)
			r.Get("/projects/{id}/members", handlers.Projects.ListMembers)
			r.Post("/projects/{id}/members", handlers.Projects.AddMember)
			r.Delete("/projects/{id}/members/{user_id}", handlers.Projects.RemoveMember)

			r.Get("/notes", handlers.Projects.ListNotes)
			r.Post("/notes", handlers.Projects.CreateNote)
			r.Patch("/notes/{id}", handlers.Projects.UpdateNote)
			r.Delete("/notes/{id}", handlers.Projects.DeleteNote)

			r.Get("/push/vapidKey", handlers.Push.VAPIDKey)
			r.Post("/push/subscribe", handlers.Push.Subscribe)
		})
	})

	return r
}
