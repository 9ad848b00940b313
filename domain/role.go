package domain

import (
	"context"
	"net/http"
)

/****************************
*        Role errors        *
****************************/
var (
	ErrRoleNotFound = &DetailedError{
		IDField:         "ROLE_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Role not found",
		StatusCodeField: http.StatusNotFound,
	}
	ErrRoleNotTrashed = &DetailedError{
		IDField:         "ROLE_NOT_TRASHED",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Role is not in the trash",
		StatusCodeField: http.StatusNotFound,
	}
)

/***************************************
*       Role entities and types        *
***************************************/

// Role groups permissions under one assignable name. The permission set is
// replaced wholesale on assignment, never patched incrementally.
type Role struct {
	SQLModel
	Name        string           `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description TranslatedString `json:"description" gorm:"type:jsonb"`
	Status      bool             `json:"status" gorm:"not null;default:true"`
	Permissions []*Permission    `json:"permissions" gorm:"many2many:role_permissions;"`
}

var RoleAuditFields = []string{"name", "description", "status"}

const RoleSubjectType = "roles"

func (r *Role) AuditAttributes() Snapshot {
	return Snapshot{
		"name":        r.Name,
		"description": r.Description,
		"status":      r.Status,
	}
}

// PermissionIDs returns the ids of the currently attached permissions.
func (r *Role) PermissionIDs() []string {
	ids := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		if p != nil {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

type RoleFilter struct {
	ID             *string `json:"id" form:"id"`
	IDNe           *string `json:"id_ne" form:"id_ne"`
	NameEq         *string `json:"name_eq" form:"name_eq"`
	Status         *bool   `json:"status" form:"status"`
	SearchTerm     *string `json:"search_term" form:"search_term"`
	IncludeDeleted bool    `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    bool    `json:"only_deleted" form:"only_deleted"`
}

/**********************************************
*      Role usecase interfaces and types      *
**********************************************/

type RoleUsecase interface {
	List(ctx context.Context, query *ListQuery) ([]*Role, *Pagination, error)
	ListTrashed(ctx context.Context) ([]*Role, error)
	Create(ctx context.Context, req *RoleCreateRequest) (*Role, error)
	Update(ctx context.Context, roleID string, req *RoleUpdateRequest) (*Role, error)
	// AssignPermissions replaces the role's entire permission set with the
	// subset of the given ids that resolve to existing permissions.
	AssignPermissions(ctx context.Context, roleID string, req *AssignPermissionsRequest) (*Role, error)
	ToggleStatus(ctx context.Context, roleID string) (*Role, error)
	Delete(ctx context.Context, roleID string) error
	Restore(ctx context.Context, roleID string) (*Role, error)
	ForceDelete(ctx context.Context, roleID string) error
}

type RoleCreateRequest struct {
	Name        string           `json:"name" binding:"required,max=255"`
	Description TranslatedString `json:"description" binding:"omitempty"`
}

type RoleUpdateRequest struct {
	Name        string           `json:"name" binding:"required,max=255"`
	Description TranslatedString `json:"description" binding:"omitempty"`
}

type AssignPermissionsRequest struct {
	PermissionIDs []string `json:"permissions" binding:"required,min=1"`
}
