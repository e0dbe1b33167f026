package projects

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListProjectsByUser(ctx context.Context, userID int64) ([]Project, error)
	GetProjectByID(ctx context.Context, id int64) (*Project, error)
	CreateProject(ctx context.Context, project *Project) error
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id int64) (bool, error)

	ListMembers(ctx context.Context, projectID int64) ([]Member, error)
	GetMember(ctx context.Context, projectID, userID int64) (*Member, error)
	AddMember(ctx context.Context, member *Member) error
	RemoveMember(ctx context.Context, projectID, userID int64) (bool, error)

	ListNotes(ctx context.Context, projectID *int64) ([]Note, error)
	GetNoteByID(ctx context.Context, id int64) (*Note, error)
	CreateNote(ctx context.Context, note *Note) error
	UpdateNote(ctx context.Context, note *Note) error
	DeleteNote(ctx context.Context, id int64) (bool, error)

	// Cascades used when a project is removed.
	DeleteTodosByProject(ctx context.Context, projectID int64) (int64, error)
	DeleteExpensesByProject(ctx context.Context, projectID int64) (int64, error)
	DeleteCategoriesByProject(ctx context.Context, projectID int64) (int64, error)
	DeleteNotesByProject(ctx context.Context, projectID int64) (int64, error)
}
