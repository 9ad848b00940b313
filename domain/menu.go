package domain

import (
	"context"
	"net/http"
)

/****************************
*        Menu errors        *
****************************/
var (
	ErrMenuNotFound = &DetailedError{
		IDField:         "MENU_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Menu not found",
		StatusCodeField: http.StatusNotFound,
	}
	ErrMenuNotTrashed = &DetailedError{
		IDField:         "MENU_NOT_TRASHED",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Menu is not in the trash",
		StatusCodeField: http.StatusNotFound,
	}
	ErrMenuValidationFailed = &DetailedError{
		IDField:         "MENU_VALIDATION_FAILED",
		StatusDescField: http.StatusText(http.StatusUnprocessableEntity),
		ErrorField:      "Menu validation failed",
		StatusCodeField: http.StatusUnprocessableEntity,
	}
)

/***************************************
*       Menu entities and types        *
***************************************/

// Menu is one ordered, translatable navigation entry.
type Menu struct {
	SQLModel
	Name        TranslatedString `json:"name" gorm:"type:jsonb;not null"`
	Description TranslatedString `json:"description" gorm:"type:jsonb;not null"`
	Route       string           `json:"route" gorm:"type:varchar(255);not null"`
	Icon        string           `json:"icon" gorm:"type:varchar(255);not null"`
	Order       int              `json:"order" gorm:"column:menu_order;not null;default:0"`
	Status      bool             `json:"status" gorm:"not null;default:true"`
}

// MenuAuditFields is the audit allow-list; the translatable name and
// description are merged into each entry separately.
var MenuAuditFields = []string{"route", "icon", "order", "status"}

const MenuSubjectType = "menus"

func (m *Menu) AuditAttributes() Snapshot {
	return Snapshot{
		"route":  m.Route,
		"icon":   m.Icon,
		"order":  m.Order,
		"status": m.Status,
	}
}

func (m *Menu) AuditTranslations() Snapshot {
	return Snapshot{
		"name":        m.Name,
		"description": m.Description,
	}
}

// Validate checks that every supported locale carries a non-empty name and
// description.
func (m *Menu) Validate(locales []string) error {
	if missing := m.Name.MissingLocales(locales); len(missing) > 0 {
		return ErrMenuValidationFailed.WithErrorf("name is required for locales: %v", missing)
	}
	if missing := m.Description.MissingLocales(locales); len(missing) > 0 {
		return ErrMenuValidationFailed.WithErrorf("description is required for locales: %v", missing)
	}
	if m.Route == "" {
		return ErrMenuValidationFailed.WithError("route must be not empty")
	}
	if m.Icon == "" {
		return ErrMenuValidationFailed.WithError("icon must be not empty")
	}
	return nil
}

type MenuFilter struct {
	ID             *string `json:"id" form:"id"`
	Status         *bool   `json:"status" form:"status"`
	SearchTerm     *string `json:"search_term" form:"search_term"`
	IncludeDeleted bool    `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    bool    `json:"only_deleted" form:"only_deleted"`
}

/**********************************************
*      Menu usecase interfaces and types      *
**********************************************/

type MenuUsecase interface {
	// List normalizes the query in place and returns the matching page.
	List(ctx context.Context, query *ListQuery) ([]*Menu, *Pagination, error)
	ListTrashed(ctx context.Context) ([]*Menu, error)
	Create(ctx context.Context, req *MenuCreateRequest) (*Menu, error)
	Update(ctx context.Context, menuID string, req *MenuUpdateRequest) (*Menu, error)
	ToggleStatus(ctx context.Context, menuID string) (*Menu, error)
	Delete(ctx context.Context, menuID string) error
	Restore(ctx context.Context, menuID string) (*Menu, error)
	ForceDelete(ctx context.Context, menuID string) error
}

type MenuCreateRequest struct {
	Name        TranslatedString `json:"name" binding:"required,translated"`
	Description TranslatedString `json:"description" binding:"required,translated"`
	Route       string           `json:"route" binding:"required,max=255"`
	Icon        string           `json:"icon" binding:"required,max=255"`
	Order       int              `json:"order" binding:"required"`
	Status      *bool            `json:"status,omitempty"`
}

type MenuUpdateRequest struct {
	Name        TranslatedString `json:"name" binding:"required,translated"`
	Description TranslatedString `json:"description" binding:"required,translated"`
	Route       string           `json:"route" binding:"required,max=255"`
	Icon        string           `json:"icon" binding:"required,max=255"`
	Order       int              `json:"order" binding:"required"`
}
