package models

import (
	"github.com/google/uuid"
	"time"
)

// ProjectAssignment links a user to a project, putting that project's
// data in the user's visibility scope.
type ProjectAssignment struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_assignment_user_project"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_assignment_user_project"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Project   *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
