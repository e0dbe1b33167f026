package app

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"movein-app-go/internal/calendar"
	"movein-app-go/internal/config"
	"movein-app-go/internal/db"
	categoriesdomain "movein-app-go/internal/domain/categories"
	expensesdomain "movein-app-go/internal/domain/expenses"
	projectsdomain "movein-app-go/internal/domain/projects"
	pushdomain "movein-app-go/internal/domain/push"
	todosdomain "movein-app-go/internal/domain/todos"
	userdomain "movein-app-go/internal/domain/user"
	"movein-app-go/internal/repository/inmemory"
	categoriespg "movein-app-go/internal/repository/postgres/categories"
	expensespg "movein-app-go/internal/repository/postgres/expenses"
	projectspg "movein-app-go/internal/repository/postgres/projects"
	pushpg "movein-app-go/internal/repository/postgres/push"
	todospg "movein-app-go/internal/repository/postgres/todos"
	userpg "movein-app-go/internal/repository/postgres/user"
	"movein-app-go/internal/transport/httpserver"
	"movein-app-go/internal/transport/httpserver/handler"
	commonhandler "movein-app-go/internal/transport/httpserver/handler/common"
	expenseshandler "movein-app-go/internal/transport/httpserver/handler/expenses"
	projectshandler "movein-app-go/internal/transport/httpserver/handler/projects"
	pushhandler "movein-app-go/internal/transport/httpserver/handler/push"
	todoshandler "movein-app-go/internal/transport/httpserver/handler/todos"
	authmw "movein-app-go/internal/transport/httpserver/middleware"
	"movein-app-go/internal/webpush"
	"movein-app-go/pkg/logger"
)

type repositories struct {
	todos      todosdomain.Repository
	expenses   expensesdomain.Repository
	categories categoriesdomain.Repository
	users      userdomain.Repository
	push       pushdomain.Repository
	projects   projectsdomain.Repository
}

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	sweepStop  chan struct{}
	sweepDone  chan struct{}
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}

	repos, err := a.buildRepositories()
	if err != nil {
		return nil, err
	}

	users := userdomain.NewService(repos.users)
	todos := todosdomain.NewService(repos.todos)
	expenses := expensesdomain.NewService(repos.expenses)
	categories := categoriesdomain.NewService(repos.categories)
	projects := projectsdomain.NewService(repos.projects)

	if cfg.Seed.Username != "" {
		if err := users.EnsureSeedUser(context.Background(), cfg.Seed.Username, cfg.Seed.Password); err != nil {
			return nil, err
		}
	}

	var cal *calendar.Client
	if cfg.Google.Enabled() {
		cal = calendar.New(cfg.Google)
		todos.OnCreated(a.calendarHook(cal, users))
	} else {
		log.Info("app: google calendar integration disabled")
	}

	var pushService *pushdomain.Service
	if cfg.Push.Enabled() {
		sender := webpush.NewSender(cfg.Push)
		pushService = pushdomain.NewService(repos.push, todos, sender, log, pushdomain.Options{
			DueHorizon:  cfg.Push.DueHorizon,
			DedupWindow: cfg.Push.DedupWindow,
		})
	} else {
		log.Info("app: push notifications disabled")
	}

	auth := authmw.NewSessionAuth(cfg.Session, cfg.Env == "production")

	handlers := handler.New(
		commonhandler.New(users, auth, cal, cfg.Google.AppURL, log),
		todoshandler.New(todos, expenses, log),
		expenseshandler.New(expenses, categories, todos, log),
		projectshandler.New(projects, log),
		pushhandler.New(pushService, cfg.Push.VAPIDPublicKey, log),
	)

	router := httpserver.NewRouter(cfg.CORSOrigins, handlers, auth)
	a.httpServer = httpserver.New(cfg, router)

	if pushService != nil {
		a.startSweep(pushService)
	}

	return a, nil
}

func (a *App) buildRepositories() (repositories, error) {
	if a.cfg.DB.DSN == "" {
		a.log.Info("app: using in-memory storage")
		store := inmemory.NewStore()
		return repositories{
			todos:      store.Todos(),
			expenses:   store.Expenses(),
			categories: store.Categories(),
			users:      store.Users(),
			push:       store.Subscriptions(),
			projects:   store.Projects(),
		}, nil
	}

	a.log.Info("app: using postgres storage")
	gormDB, err := db.NewPostgres(a.cfg.DB, a.log)
	if err != nil {
		return repositories{}, err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return repositories{}, err
	}
	a.db = gormDB

	return repositories{
		todos:      todospg.NewPostgres(gormDB),
		expenses:   expensespg.NewPostgres(gormDB),
		categories: categoriespg.NewPostgres(gormDB),
		users:      userpg.NewPostgres(gormDB),
		push:       pushpg.NewPostgres(gormDB),
		projects:   projectspg.NewPostgres(gormDB),
	}, nil
}

// calendarHook mirrors a freshly created todo with a due date into the
// creating user's Google calendar. Failures are logged and never surface
// to the create request.
func (a *App) calendarHook(cal *calendar.Client, users *userdomain.Service) todosdomain.CreatedHook {
	return func(ctx context.Context, userID int64, todo todosdomain.Todo) {
		if todo.DueDate == nil {
			return
		}

		owner, err := users.GetUser(ctx, userID)
		if err != nil {
			a.log.InternalError("calendar sync: load user failed", err, "user_id", userID, "todo_id", todo.ID)
			return
		}
		if !owner.HasCalendarToken() {
			return
		}

		eventID, err := cal.CreateEvent(ctx, owner, todo)
		if err != nil {
			a.log.InternalError("calendar sync: create event failed", err, "user_id", userID, "todo_id", todo.ID)
			return
		}
		a.log.Info("calendar sync: event created", "todo_id", todo.ID, "event_id", eventID)
	}
}

func (a *App) startSweep(pushService *pushdomain.Service) {
	a.sweepStop = make(chan struct{})
	a.sweepDone = make(chan struct{})
	interval := a.cfg.Push.SweepInterval

	go func() {
		defer close(a.sweepDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-a.sweepStop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				if err := pushService.Sweep(ctx, time.Now()); err != nil {
					a.log.InternalError("push sweep failed", err)
				}
				cancel()
			}
		}
	}()
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.sweepStop != nil {
		close(a.sweepStop)
		<-a.sweepDone
	}

	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
