package handler

import (
	commonhandler "movein-app-go/internal/transport/httpserver/handler/common"
	expenseshandler "movein-app-go/internal/transport/httpserver/handler/expenses"
	projectshandler "movein-app-go/internal/transport/httpserver/handler/projects"
	pushhandler "movein-app-go/internal/transport/httpserver/handler/push"
	todoshandler "movein-app-go/internal/transport/httpserver/handler/todos"
)

type Handlers struct {
	Common   *commonhandler.Handlers
	Todos    *todoshandler.Handlers
	Expenses *expenseshandler.Handlers
	Projects *projectshandler.Handlers
	Push     *pushhandler.Handlers
}

func New(common *commonhandler.Handlers, todos *todoshandler.Handlers, expenses *expenseshandler.Handlers, projects *projectshandler.Handlers, push *pushhandler.Handlers) *Handlers {
	return &Handlers{
		Common:   common,
		Todos:    todos,
		Expenses: expenses,
		Projects: projects,
		Push:     push,
	}
}
