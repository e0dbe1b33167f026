package projects

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type memberKey struct {
	projectID int64
	userID    int64
}

type fakeProjectsRepo struct {
	projects map[int64]*Project
	members  map[memberKey]*Member
	notes    map[int64]*Note
	seq      int64
	noteSeq  int64

	// scoped entity counters standing in for the cascade targets
	todosByProject      map[int64]int64
	expensesByProject   map[int64]int64
	categoriesByProject map[int64]int64
}

func newFakeProjectsRepo() *fakeProjectsRepo {
	return &fakeProjectsRepo{
		projects:            make(map[int64]*Project),
		members:             make(map[memberKey]*Member),
		notes:               make(map[int64]*Note),
		todosByProject:      make(map[int64]int64),
		expensesByProject:   make(map[int64]int64),
		categoriesByProject: make(map[int64]int64),
	}
}

func (r *fakeProjectsRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeProjectsRepo) ListProjectsByUser(ctx context.Context, userID int64) ([]Project, error) {
	items := make([]Project, 0)
	for key, member := range r.members {
		if member.UserID != userID {
			continue
		}
		if project, ok := r.projects[key.projectID]; ok {
			items = append(items, *project)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeProjectsRepo) GetProjectByID(ctx context.Context, id int64) (*Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	copied := *project
	return &copied, nil
}

func (r *fakeProjectsRepo) CreateProject(ctx context.Context, project *Project) error {
	r.seq++
	project.ID = r.seq
	project.CreatedAt = time.Now().UTC()
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func (r *fakeProjectsRepo) UpdateProject(ctx context.Context, project *Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return ErrProjectNotFound
	}
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func (r *fakeProjectsRepo) DeleteProject(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	for key := range r.members {
		if key.projectID == id {
			delete(r.members, key)
		}
	}
	return true, nil
}

func (r *fakeProjectsRepo) ListMembers(ctx context.Context, projectID int64) ([]Member, error) {
	items := make([]Member, 0)
	for key, member := range r.members {
		if key.projectID == projectID {
			items = append(items, *member)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })
	return items, nil
}

func (r *fakeProjectsRepo) GetMember(ctx context.Context, projectID, userID int64) (*Member, error) {
	member, ok := r.members[memberKey{projectID, userID}]
	if !ok {
		return nil, ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *fakeProjectsRepo) AddMember(ctx context.Context, member *Member) error {
	stored := *member
	r.members[memberKey{member.ProjectID, member.UserID}] = &stored
	return nil
}

func (r *fakeProjectsRepo) RemoveMember(ctx context.Context, projectID, userID int64) (bool, error) {
	key := memberKey{projectID, userID}
	if _, ok := r.members[key]; !ok {
		return false, nil
	}
	delete(r.members, key)
	return true, nil
}

func (r *fakeProjectsRepo) ListNotes(ctx context.Context, projectID *int64) ([]Note, error) {
	items := make([]Note, 0)
	for _, note := range r.notes {
		items = append(items, *note)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeProjectsRepo) GetNoteByID(ctx context.Context, id int64) (*Note, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	copied := *note
	return &copied, nil
}

func (r *fakeProjectsRepo) CreateNote(ctx context.Context, note *Note) error {
	r.noteSeq++
	note.ID = r.noteSeq
	stored := *note
	r.notes[note.ID] = &stored
	return nil
}

func (r *fakeProjectsRepo) UpdateNote(ctx context.Context, note *Note) error {
	if _, ok := r.notes[note.ID]; !ok {
		return ErrNoteNotFound
	}
	stored := *note
	r.notes[note.ID] = &stored
	return nil
}

func (r *fakeProjectsRepo) DeleteNote(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.notes[id]; !ok {
		return false, nil
	}
	delete(r.notes, id)
	return true, nil
}

func (r *fakeProjectsRepo) DeleteTodosByProject(ctx context.Context, projectID int64) (int64, error) {
	count := r.todosByProject[projectID]
	delete(r.todosByProject, projectID)
	return count, nil
}

func (r *fakeProjectsRepo) DeleteExpensesByProject(ctx context.Context, projectID int64) (int64, error) {
	count := r.expensesByProject[projectID]
	delete(r.expensesByProject, projectID)
	return count, nil
}

func (r *fakeProjectsRepo) DeleteCategoriesByProject(ctx context.Context, projectID int64) (int64, error) {
	count := r.categoriesByProject[projectID]
	delete(r.categoriesByProject, projectID)
	return count, nil
}

func (r *fakeProjectsRepo) DeleteNotesByProject(ctx context.Context, projectID int64) (int64, error) {
	var count int64
	for id, note := range r.notes {
		if note.ProjectID != nil && *note.ProjectID == projectID {
			delete(r.notes, id)
			count++
		}
	}
	return count, nil
}

func TestCreateProjectAddsOwnerMembership(t *testing.T) {
	repo := newFakeProjectsRepo()
	svc := NewService(repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "New flat", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	member, err := repo.GetMember(context.Background(), project.ID, 1)
	if err != nil {
		t.Fatalf("owner membership missing: %v", err)
	}
	if member.Role != RoleOwner {
		t.Fatalf("expected owner role, got %q", member.Role)
	}
}

func TestCreateProjectNameRequired(t *testing.T) {
	svc := NewService(newFakeProjectsRepo())

	_, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "  ", OwnerID: 1})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestDeleteProjectOwnerOnly(t *testing.T) {
	repo := newFakeProjectsRepo()
	svc := NewService(repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "New flat", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteProject(context.Background(), 2, project.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, ok := repo.projects[project.ID]; !ok {
		t.Fatalf("project must survive a denied delete")
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	repo := newFakeProjectsRepo()
	svc := NewService(repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "New flat", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.todosByProject[project.ID] = 3
	repo.expensesByProject[project.ID] = 2
	repo.categoriesByProject[project.ID] = 1
	projectID := project.ID
	if _, err := svc.CreateNote(context.Background(), CreateNoteInput{Title: "Scoped", ProjectID: &projectID}); err != nil {
		t.Fatalf("note: %v", err)
	}
	if _, err := svc.CreateNote(context.Background(), CreateNoteInput{Title: "Global"}); err != nil {
		t.Fatalf("global note: %v", err)
	}

	if err := svc.DeleteProject(context.Background(), 1, project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok := repo.projects[project.ID]; ok {
		t.Fatalf("project not removed")
	}
	if len(repo.todosByProject) != 0 || len(repo.expensesByProject) != 0 || len(repo.categoriesByProject) != 0 {
		t.Fatalf("scoped entities not cascaded")
	}
	notes, _ := repo.ListNotes(context.Background(), nil)
	if len(notes) != 1 || notes[0].Title != "Global" {
		t.Fatalf("expected only the global note to survive, got %+v", notes)
	}
}

func TestAddMember(t *testing.T) {
	repo := newFakeProjectsRepo()
	svc := NewService(repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "New flat", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddMember(context.Background(), 2, project.ID, 3); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	member, err := svc.AddMember(context.Background(), 1, project.ID, 3)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if member.Role != RoleMember {
		t.Fatalf("expected member role, got %q", member.Role)
	}

	if _, err := svc.AddMember(context.Background(), 1, project.ID, 3); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestRemoveMemberGuards(t *testing.T) {
	repo := newFakeProjectsRepo()
	svc := NewService(repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "New flat", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddMember(context.Background(), 1, project.ID, 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	// The owner cannot be removed, not even by themselves.
	if err := svc.RemoveMember(context.Background(), 1, project.ID, 1); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	if err := svc.RemoveMember(context.Background(), 1, project.ID, 3); err != nil {
		t.Fatalf("remove: %v", err)
	}
	ok, err := svc.IsMember(context.Background(), project.ID, 3)
	if err != nil {
		t.Fatalf("is member: %v", err)
	}
	if ok {
		t.Fatalf("expected membership removed")
	}

	// Removing someone who is not a member reports not found.
	if err := svc.RemoveMember(context.Background(), 1, project.ID, 3); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
	if err := svc.RemoveMember(context.Background(), 1, project.ID, 99); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestUpdateNotePartialMerge(t *testing.T) {
	repo := newFakeProjectsRepo()
	svc := NewService(repo)

	note, err := svc.CreateNote(context.Background(), CreateNoteInput{Title: "Wifi setup", Body: "router arrives tuesday"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	body := "router arrived"
	updated, err := svc.UpdateNote(context.Background(), UpdateNoteInput{ID: note.ID, Body: &body})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Wifi setup" {
		t.Fatalf("title changed: %q", updated.Title)
	}
	if updated.Body != "router arrived" {
		t.Fatalf("body not updated: %q", updated.Body)
	}
}
