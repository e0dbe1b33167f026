package inmemory

import (
	"context"
	"sort"
	"time"

	"movein-app-go/internal/domain/projects"
)

type ProjectsRepository struct {
	store *Store
}

var (
	_ projects.Repository = (*ProjectsRepository)(nil)
	_ projects.Repository = (*projectsTx)(nil)
)

func (r *ProjectsRepository) Transaction(ctx context.Context, fn func(projects.Repository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshotLocked()
	if err := fn(&projectsTx{store: r.store}); err != nil {
		r.store.restoreLocked(snap)
		return err
	}
	return nil
}

func (r *ProjectsRepository) ListProjectsByUser(ctx context.Context, userID int64) ([]projects.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listProjectsByUserLocked(userID), nil
}

func (r *ProjectsRepository) GetProjectByID(ctx context.Context, id int64) (*projects.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.getProjectLocked(id)
}

func (r *ProjectsRepository) CreateProject(ctx context.Context, project *projects.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.createProjectLocked(project)
}

func (r *ProjectsRepository) UpdateProject(ctx context.Context, project *projects.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.updateProjectLocked(project)
}

func (r *ProjectsRepository) DeleteProject(ctx context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteProjectLocked(id), nil
}

func (r *ProjectsRepository) ListMembers(ctx context.Context, projectID int64) ([]projects.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listMembersLocked(projectID), nil
}

func (r *ProjectsRepository) GetMember(ctx context.Context, projectID, userID int64) (*projects.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.getMemberLocked(projectID, userID)
}

func (r *ProjectsRepository) AddMember(ctx context.Context, member *projects.Member) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.addMemberLocked(member)
}

func (r *ProjectsRepository) RemoveMember(ctx context.Context, projectID, userID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.removeMemberLocked(projectID, userID), nil
}

func (r *ProjectsRepository) ListNotes(ctx context.Context, projectID *int64) ([]projects.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listNotesLocked(projectID), nil
}

func (r *ProjectsRepository) GetNoteByID(ctx context.Context, id int64) (*projects.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.getNoteLocked(id)
}

func (r *ProjectsRepository) CreateNote(ctx context.Context, note *projects.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.createNoteLocked(note)
}

func (r *ProjectsRepository) UpdateNote(ctx context.Context, note *projects.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.updateNoteLocked(note)
}

func (r *ProjectsRepository) DeleteNote(ctx context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteNoteLocked(id), nil
}

func (r *ProjectsRepository) DeleteTodosByProject(ctx context.Context, projectID int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteTodosByProjectLocked(projectID), nil
}

func (r *ProjectsRepository) DeleteExpensesByProject(ctx context.Context, projectID int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteExpensesByProjectLocked(projectID), nil
}

func (r *ProjectsRepository) DeleteCategoriesByProject(ctx context.Context, projectID int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteCategoriesByProjectLocked(projectID), nil
}

func (r *ProjectsRepository) DeleteNotesByProject(ctx context.Context, projectID int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteNotesByProjectLocked(projectID), nil
}

// projectsTx runs inside an already-held lock.
type projectsTx struct {
	store *Store
}

func (t *projectsTx) Transaction(ctx context.Context, fn func(projects.Repository) error) error {
	return fn(t)
}

func (t *projectsTx) ListProjectsByUser(ctx context.Context, userID int64) ([]projects.Project, error) {
	return t.store.listProjectsByUserLocked(userID), nil
}

func (t *projectsTx) GetProjectByID(ctx context.Context, id int64) (*projects.Project, error) {
	return t.store.getProjectLocked(id)
}

func (t *projectsTx) CreateProject(ctx context.Context, project *projects.Project) error {
	return t.store.createProjectLocked(project)
}

func (t *projectsTx) UpdateProject(ctx context.Context, project *projects.Project) error {
	return t.store.updateProjectLocked(project)
}

func (t *projectsTx) DeleteProject(ctx context.Context, id int64) (bool, error) {
	return t.store.deleteProjectLocked(id), nil
}

func (t *projectsTx) ListMembers(ctx context.Context, projectID int64) ([]projects.Member, error) {
	return t.store.listMembersLocked(projectID), nil
}

func (t *projectsTx) GetMember(ctx context.Context, projectID, userID int64) (*projects.Member, error) {
	return t.store.getMemberLocked(projectID, userID)
}

func (t *projectsTx) AddMember(ctx context.Context, member *projects.Member) error {
	return t.store.addMemberLocked(member)
}

func (t *projectsTx) RemoveMember(ctx context.Context, projectID, userID int64) (bool, error) {
	return t.store.removeMemberLocked(projectID, userID), nil
}

func (t *projectsTx) ListNotes(ctx context.Context, projectID *int64) ([]projects.Note, error) {
	return t.store.listNotesLocked(projectID), nil
}

func (t *projectsTx) GetNoteByID(ctx context.Context, id int64) (*projects.Note, error) {
	return t.store.getNoteLocked(id)
}

func (t *projectsTx) CreateNote(ctx context.Context, note *projects.Note) error {
	return t.store.createNoteLocked(note)
}

func (t *projectsTx) UpdateNote(ctx context.Context, note *projects.Note) error {
	return t.store.updateNoteLocked(note)
}

func (t *projectsTx) DeleteNote(ctx context.Context, id int64) (bool, error) {
	return t.store.deleteNoteLocked(id), nil
}

func (t *projectsTx) DeleteTodosByProject(ctx context.Context, projectID int64) (int64, error) {
	return t.store.deleteTodosByProjectLocked(projectID), nil
}

func (t *projectsTx) DeleteExpensesByProject(ctx context.Context, projectID int64) (int64, error) {
	return t.store.deleteExpensesByProjectLocked(projectID), nil
}

func (t *projectsTx) DeleteCategoriesByProject(ctx context.Context, projectID int64) (int64, error) {
	return t.store.deleteCategoriesByProjectLocked(projectID), nil
}

func (t *projectsTx) DeleteNotesByProject(ctx context.Context, projectID int64) (int64, error) {
	return t.store.deleteNotesByProjectLocked(projectID), nil
}

func (s *Store) listProjectsByUserLocked(userID int64) []projects.Project {
	items := make([]projects.Project, 0)
	for _, id := range sortedIDs(s.projects) {
		project := s.projects[id]
		if _, ok := s.members[memberKey{projectID: project.ID, userID: userID}]; ok {
			items = append(items, *project)
		}
	}
	return items
}

func (s *Store) getProjectLocked(id int64) (*projects.Project, error) {
	project, ok := s.projects[id]
	if !ok {
		return nil, projects.ErrProjectNotFound
	}
	copied := *project
	return &copied, nil
}

func (s *Store) createProjectLocked(project *projects.Project) error {
	s.projectSeq++
	project.ID = s.projectSeq
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	stored := *project
	s.projects[project.ID] = &stored
	return nil
}

func (s *Store) updateProjectLocked(project *projects.Project) error {
	if _, ok := s.projects[project.ID]; !ok {
		return projects.ErrProjectNotFound
	}
	stored := *project
	s.projects[project.ID] = &stored
	return nil
}

func (s *Store) deleteProjectLocked(id int64) bool {
	_, ok := s.projects[id]
	delete(s.projects, id)
	for key := range s.members {
		if key.projectID == id {
			delete(s.members, key)
		}
	}
	return ok
}

func (s *Store) listMembersLocked(projectID int64) []projects.Member {
	items := make([]projects.Member, 0)
	for key, member := range s.members {
		if key.projectID == projectID {
			items = append(items, *member)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })
	return items
}

func (s *Store) getMemberLocked(projectID, userID int64) (*projects.Member, error) {
	member, ok := s.members[memberKey{projectID: projectID, userID: userID}]
	if !ok {
		return nil, projects.ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (s *Store) addMemberLocked(member *projects.Member) error {
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}
	stored := *member
	s.members[memberKey{projectID: member.ProjectID, userID: member.UserID}] = &stored
	return nil
}

func (s *Store) removeMemberLocked(projectID, userID int64) bool {
	key := memberKey{projectID: projectID, userID: userID}
	_, ok := s.members[key]
	delete(s.members, key)
	return ok
}

func (s *Store) listNotesLocked(projectID *int64) []projects.Note {
	items := make([]projects.Note, 0)
	for _, id := range sortedIDs(s.notes) {
		note := s.notes[id]
		if projectID != nil && !sameScope(note.ProjectID, projectID) {
			continue
		}
		items = append(items, *note)
	}
	return items
}

func (s *Store) getNoteLocked(id int64) (*projects.Note, error) {
	note, ok := s.notes[id]
	if !ok {
		return nil, projects.ErrNoteNotFound
	}
	copied := *note
	return &copied, nil
}

func (s *Store) createNoteLocked(note *projects.Note) error {
	s.noteSeq++
	note.ID = s.noteSeq
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
		note.UpdatedAt = note.CreatedAt
	}
	stored := *note
	s.notes[note.ID] = &stored
	return nil
}

func (s *Store) updateNoteLocked(note *projects.Note) error {
	if _, ok := s.notes[note.ID]; !ok {
		return projects.ErrNoteNotFound
	}
	stored := *note
	s.notes[note.ID] = &stored
	return nil
}

func (s *Store) deleteNoteLocked(id int64) bool {
	_, ok := s.notes[id]
	delete(s.notes, id)
	return ok
}

func (s *Store) deleteTodosByProjectLocked(projectID int64) int64 {
	var removed int64
	for id, todo := range s.todos {
		if todo.ProjectID != nil && *todo.ProjectID == projectID {
			delete(s.todos, id)
			removed++
		}
	}
	return removed
}

func (s *Store) deleteExpensesByProjectLocked(projectID int64) int64 {
	var removed int64
	for id, expense := range s.expenses {
		if expense.ProjectID != nil && *expense.ProjectID == projectID {
			delete(s.expenses, id)
			removed++
		}
	}
	return removed
}

func (s *Store) deleteCategoriesByProjectLocked(projectID int64) int64 {
	var removed int64
	for id, category := range s.categories {
		if category.ProjectID != nil && *category.ProjectID == projectID {
			delete(s.categories, id)
			removed++
		}
	}
	return removed
}

func (s *Store) deleteNotesByProjectLocked(projectID int64) int64 {
	var removed int64
	for id, note := range s.notes {
		if note.ProjectID != nil && *note.ProjectID == projectID {
			delete(s.notes, id)
			removed++
		}
	}
	return removed
}
