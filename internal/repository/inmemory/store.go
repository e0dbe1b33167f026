// Package inmemory is the shipped storage engine: map-backed repositories
// sharing one store and one mutex, so multi-entity rewrites (the category
// cascade, project deletion) are atomic with respect to every reader.
package inmemory

import (
	"sort"
	"sync"

	"movein-app-go/internal/domain/categories"
	"movein-app-go/internal/domain/expenses"
	"movein-app-go/internal/domain/projects"
	"movein-app-go/internal/domain/push"
	"movein-app-go/internal/domain/todos"
	"movein-app-go/internal/domain/user"
)

type memberKey struct {
	projectID int64
	userID    int64
}

// Store owns every entity map. Identifiers are allocated from one counter
// per entity type, starting at 1, never reused within the process lifetime.
type Store struct {
	mu sync.Mutex

	todos         map[int64]*todos.Todo
	expenses      map[int64]*expenses.Expense
	categories    map[int64]*categories.Category
	users         map[int64]*user.User
	subscriptions map[int64]*push.Subscription
	projects      map[int64]*projects.Project
	members       map[memberKey]*projects.Member
	notes         map[int64]*projects.Note

	todoSeq         int64
	expenseSeq      int64
	categorySeq     int64
	userSeq         int64
	subscriptionSeq int64
	projectSeq      int64
	noteSeq         int64
}

func NewStore() *Store {
	return &Store{
		todos:         make(map[int64]*todos.Todo),
		expenses:      make(map[int64]*expenses.Expense),
		categories:    make(map[int64]*categories.Category),
		users:         make(map[int64]*user.User),
		subscriptions: make(map[int64]*push.Subscription),
		projects:      make(map[int64]*projects.Project),
		members:       make(map[memberKey]*projects.Member),
		notes:         make(map[int64]*projects.Note),
	}
}

func (s *Store) Todos() *TodosRepository             { return &TodosRepository{store: s} }
func (s *Store) Expenses() *ExpensesRepository       { return &ExpensesRepository{store: s} }
func (s *Store) Categories() *CategoriesRepository   { return &CategoriesRepository{store: s} }
func (s *Store) Users() *UsersRepository             { return &UsersRepository{store: s} }
func (s *Store) Projects() *ProjectsRepository       { return &ProjectsRepository{store: s} }
func (s *Store) Subscriptions() *PushRepository      { return &PushRepository{store: s} }

// snapshot holds deep copies of the maps a transaction may touch, for
// restore when the transaction body fails.
type snapshot struct {
	todos      map[int64]*todos.Todo
	expenses   map[int64]*expenses.Expense
	categories map[int64]*categories.Category
	projects   map[int64]*projects.Project
	members    map[memberKey]*projects.Member
	notes      map[int64]*projects.Note
}

func (s *Store) snapshotLocked() snapshot {
	snap := snapshot{
		todos:      make(map[int64]*todos.Todo, len(s.todos)),
		expenses:   make(map[int64]*expenses.Expense, len(s.expenses)),
		categories: make(map[int64]*categories.Category, len(s.categories)),
		projects:   make(map[int64]*projects.Project, len(s.projects)),
		members:    make(map[memberKey]*projects.Member, len(s.members)),
		notes:      make(map[int64]*projects.Note, len(s.notes)),
	}
	for id, todo := range s.todos {
		copied := *todo
		snap.todos[id] = &copied
	}
	for id, expense := range s.expenses {
		copied := *expense
		snap.expenses[id] = &copied
	}
	for id, category := range s.categories {
		copied := *category
		snap.categories[id] = &copied
	}
	for id, project := range s.projects {
		copied := *project
		snap.projects[id] = &copied
	}
	for key, member := range s.members {
		copied := *member
		snap.members[key] = &copied
	}
	for id, note := range s.notes {
		copied := *note
		snap.notes[id] = &copied
	}
	return snap
}

func (s *Store) restoreLocked(snap snapshot) {
	s.todos = snap.todos
	s.expenses = snap.expenses
	s.categories = snap.categories
	s.projects = snap.projects
	s.members = snap.members
	s.notes = snap.notes
}

// sameScope matches the optional project reference: both unset, or both set
// to the same project.
func sameScope(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortedIDs[T any](items map[int64]*T) []int64 {
	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
