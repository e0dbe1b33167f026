package projects

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProjects(ctx context.Context, userID int64) ([]Project, error) {
	return s.repo.ListProjectsByUser(ctx, userID)
}

func (s *Service) GetProject(ctx context.Context, id int64) (*Project, error) {
	return s.repo.GetProjectByID(ctx, id)
}

func (s *Service) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	project := Project{Name: name, OwnerID: input.OwnerID}
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateProject(ctx, &project); err != nil {
			return err
		}
		return tx.AddMember(ctx, &Member{ProjectID: project.ID, UserID: input.OwnerID, Role: RoleOwner})
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

func (s *Service) UpdateProject(ctx context.Context, input UpdateProjectInput) (*Project, error) {
	project, err := s.repo.GetProjectByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		project.Name = name
	}

	if err := s.repo.UpdateProject(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes the project and cascades over everything scoped to
// it: todos, expenses, custom categories, notes and memberships. Owner only.
func (s *Service) DeleteProject(ctx context.Context, userID, projectID int64) error {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != userID {
		return ErrNotOwner
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.DeleteTodosByProject(ctx, projectID); err != nil {
			return err
		}
		if _, err := tx.DeleteExpensesByProject(ctx, projectID); err != nil {
			return err
		}
		if _, err := tx.DeleteCategoriesByProject(ctx, projectID); err != nil {
			return err
		}
		if _, err := tx.DeleteNotesByProject(ctx, projectID); err != nil {
			return err
		}
		deleted, err := tx.DeleteProject(ctx, projectID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrProjectNotFound
		}
		return nil
	})
}

func (s *Service) ListMembers(ctx context.Context, projectID int64) ([]Member, error) {
	if _, err := s.repo.GetProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, projectID)
}

func (s *Service) AddMember(ctx context.Context, actorID, projectID, userID int64) (*Member, error) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	if _, err := s.repo.GetMember(ctx, projectID, userID); err == nil {
		return nil, ErrAlreadyMember
	}

	member := Member{ProjectID: projectID, UserID: userID, Role: RoleMember}
	if err := s.repo.AddMember(ctx, &member); err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *Service) RemoveMember(ctx context.Context, actorID, projectID, userID int64) error {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != actorID {
		return ErrNotOwner
	}
	if userID == project.OwnerID {
		return ErrNotOwner
	}

	removed, err := s.repo.RemoveMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrMemberNotFound
	}
	return nil
}

func (s *Service) ListNotes(ctx context.Context, projectID *int64) ([]Note, error) {
	return s.repo.ListNotes(ctx, projectID)
}

func (s *Service) GetNote(ctx context.Context, id int64) (*Note, error) {
	return s.repo.GetNoteByID(ctx, id)
}

func (s *Service) CreateNote(ctx context.Context, input CreateNoteInput) (*Note, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	note := Note{Title: title, Body: input.Body, ProjectID: input.ProjectID}
	if err := s.repo.CreateNote(ctx, &note); err != nil {
		return nil, err
	}

	return &note, nil
}

func (s *Service) UpdateNote(ctx context.Context, input UpdateNoteInput) (*Note, error) {
	note, err := s.repo.GetNoteByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		note.Title = title
	}
	if input.Body != nil {
		note.Body = *input.Body
	}
	note.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateNote(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// DeleteNote is idempotent, matching the other entity deletes.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	_, err := s.repo.DeleteNote(ctx, id)
	return err
}

// IsMember reports whether the user belongs to the project.
func (s *Service) IsMember(ctx context.Context, projectID, userID int64) (bool, error) {
	_, err := s.repo.GetMember(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
