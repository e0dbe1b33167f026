package projects

import (
	"context"
	"errors"

	categoriesdomain "movein-app-go/internal/domain/categories"
	expensesdomain "movein-app-go/internal/domain/expenses"
	projectsdomain "movein-app-go/internal/domain/projects"
	todosdomain "movein-app-go/internal/domain/todos"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ projectsdomain.Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(projectsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListProjectsByUser(ctx context.Context, userID int64) ([]projectsdomain.Project, error) {
	var items []projectsdomain.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN members ON members.project_id = projects.id").
		Where("members.user_id = ?", userID).
		Order("projects.id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetProjectByID(ctx context.Context, id int64) (*projectsdomain.Project, error) {
	var project projectsdomain.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectsdomain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *PostgresRepository) CreateProject(ctx context.Context, project *projectsdomain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *PostgresRepository) UpdateProject(ctx context.Context, project *projectsdomain.Project) error {
	result := r.db.WithContext(ctx).
		Model(&projectsdomain.Project{}).
		Where("id = ?", project.ID).
		Update("name", project.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return projectsdomain.ErrProjectNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteProject(ctx context.Context, id int64) (bool, error) {
	if err := r.db.WithContext(ctx).Where("project_id = ?", id).Delete(&projectsdomain.Member{}).Error; err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Delete(&projectsdomain.Project{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListMembers(ctx context.Context, projectID int64) ([]projectsdomain.Member, error) {
	var items []projectsdomain.Member
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("user_id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetMember(ctx context.Context, projectID, userID int64) (*projectsdomain.Member, error) {
	var member projectsdomain.Member
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectsdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *projectsdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) RemoveMember(ctx context.Context, projectID, userID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&projectsdomain.Member{})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListNotes(ctx context.Context, projectID *int64) ([]projectsdomain.Note, error) {
	query := r.db.WithContext(ctx).Model(&projectsdomain.Note{})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var items []projectsdomain.Note
	if err := query.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetNoteByID(ctx context.Context, id int64) (*projectsdomain.Note, error) {
	var note projectsdomain.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectsdomain.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *PostgresRepository) CreateNote(ctx context.Context, note *projectsdomain.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *PostgresRepository) UpdateNote(ctx context.Context, note *projectsdomain.Note) error {
	result := r.db.WithContext(ctx).
		Model(&projectsdomain.Note{}).
		Where("id = ?", note.ID).
		Updates(map[string]interface{}{
			"title":      note.Title,
			"body":       note.Body,
			"updated_at": note.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return projectsdomain.ErrNoteNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteNote(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&projectsdomain.Note{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) DeleteTodosByProject(ctx context.Context, projectID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&todosdomain.Todo{})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) DeleteExpensesByProject(ctx context.Context, projectID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&expensesdomain.Expense{})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) DeleteCategoriesByProject(ctx context.Context, projectID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&categoriesdomain.Category{})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) DeleteNotesByProject(ctx context.Context, projectID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&projectsdomain.Note{})
	return result.RowsAffected, result.Error
}
