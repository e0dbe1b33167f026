package projects

import "time"

type Project struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null"`
	OwnerID   int64  `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

type Member struct {
	ProjectID int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"primaryKey"`
	Role      string `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type Note struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	ProjectID *int64 `gorm:"index"`
	Title     string `gorm:"not null"`
	Body      string
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type CreateProjectInput struct {
	Name    string
	OwnerID int64
}

type UpdateProjectInput struct {
	ID   int64
	Name *string
}

type CreateNoteInput struct {
	Title     string
	Body      string
	ProjectID *int64
}

type UpdateNoteInput struct {
	ID    int64
	Title *string
	Body  *string
}
