package domain

import (
	"context"
	"net/http"
)

/*********************************
*       Permission errors        *
*********************************/
var (
	ErrPermissionNotFound = &DetailedError{
		IDField:         "PERMISSION_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Permission not found",
		StatusCodeField: http.StatusNotFound,
	}
	ErrPermissionNotTrashed = &DetailedError{
		IDField:         "PERMISSION_NOT_TRASHED",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Permission is not in the trash",
		StatusCodeField: http.StatusNotFound,
	}
)

/********************************************
*       Permission entities and types       *
********************************************/

const DefaultGuardName = "web"

// Permission is one grantable capability, grouped by feature for the
// assignment page.
type Permission struct {
	SQLModel
	Name      string `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	GuardName string `json:"guard_name" gorm:"type:varchar(255);not null;default:'web'"`
	Menu      string `json:"menu" gorm:"type:varchar(255)"`
	Feature   string `json:"feature" gorm:"type:varchar(255)"`
	Route     string `json:"route" gorm:"type:varchar(255)"`
	Alias     string `json:"alias" gorm:"type:varchar(255)"`
	Status    bool   `json:"status" gorm:"not null;default:true"`
}

var PermissionAuditFields = []string{"name", "guard_name", "menu", "feature", "route", "alias", "status"}

const PermissionSubjectType = "permissions"

func (p *Permission) AuditAttributes() Snapshot {
	return Snapshot{
		"name":       p.Name,
		"guard_name": p.GuardName,
		"menu":       p.Menu,
		"feature":    p.Feature,
		"route":      p.Route,
		"alias":      p.Alias,
		"status":     p.Status,
	}
}

type PermissionFilter struct {
	ID             *string  `json:"id" form:"id"`
	IDNe           *string  `json:"id_ne" form:"id_ne"`
	IDIn           []string `json:"id_in" form:"id_in"`
	NameEq         *string  `json:"name_eq" form:"name_eq"`
	Status         *bool    `json:"status" form:"status"`
	SearchTerm     *string  `json:"search_term" form:"search_term"`
	IncludeDeleted bool     `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    bool     `json:"only_deleted" form:"only_deleted"`
}

/****************************************************
*       Permission usecase interfaces and types      *
****************************************************/

type PermissionUsecase interface {
	List(ctx context.Context, query *ListQuery) ([]*Permission, *Pagination, error)
	ListTrashed(ctx context.Context) ([]*Permission, error)
	// GroupedByFeature returns every live permission bucketed by its feature
	// label, for the role-assignment page.
	GroupedByFeature(ctx context.Context) (map[string][]*Permission, error)
	Create(ctx context.Context, req *PermissionCreateRequest) (*Permission, error)
	Update(ctx context.Context, permissionID string, req *PermissionUpdateRequest) (*Permission, error)
	ToggleStatus(ctx context.Context, permissionID string) (*Permission, error)
	Delete(ctx context.Context, permissionID string) error
	Restore(ctx context.Context, permissionID string) (*Permission, error)
	ForceDelete(ctx context.Context, permissionID string) error
}

type PermissionCreateRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Menu    string `json:"menu" binding:"omitempty,max=255"`
	Feature string `json:"feature" binding:"omitempty,max=255"`
	Route   string `json:"route" binding:"omitempty,max=255"`
	Alias   string `json:"alias" binding:"omitempty,max=255"`
}

type PermissionUpdateRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Menu    string `json:"menu" binding:"omitempty,max=255"`
	Feature string `json:"feature" binding:"omitempty,max=255"`
	Route   string `json:"route" binding:"omitempty,max=255"`
	Alias   string `json:"alias" binding:"omitempty,max=255"`
}
