package domain

import (
	"context"
	"net/http"
)

/****************************
*        User errors        *
****************************/
var (
	ErrUserNotFound = &DetailedError{
		IDField:         "USER_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "User not found",
		StatusCodeField: http.StatusNotFound,
	}
	ErrUserNotTrashed = &DetailedError{
		IDField:         "USER_NOT_TRASHED",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "User is not in the trash",
		StatusCodeField: http.StatusNotFound,
	}
	ErrPasswordHashFailed = &DetailedError{
		IDField:         "PASSWORD_HASH_FAILED",
		StatusDescField: http.StatusText(http.StatusInternalServerError),
		ErrorField:      "Failed to hash password",
		StatusCodeField: http.StatusInternalServerError,
	}
)

/***************************************
*       User entities and types        *
***************************************/

// User is one staff account. The password is never supplied by an
// administrator: creation issues a random temporary credential and delivers
// it out-of-band.
type User struct {
	SQLModel
	Name            string `json:"name" gorm:"type:varchar(255);not null"`
	Email           string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password        string `json:"-" gorm:"type:varchar(60);not null"`
	EmailVerifiedAt *int64 `json:"email_verified_at" gorm:""`
}

var UserAuditFields = []string{"name", "email"}

const UserSubjectType = "users"

func (u *User) AuditAttributes() Snapshot {
	return Snapshot{
		"name":  u.Name,
		"email": u.Email,
	}
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil && *u.EmailVerifiedAt > 0
}

type UserFilter struct {
	ID             *string `json:"id" form:"id"`
	IDNe           *string `json:"id_ne" form:"id_ne"`
	EmailEq        *string `json:"email_eq" form:"email_eq"`
	SearchTerm     *string `json:"search_term" form:"search_term"`
	IncludeDeleted bool    `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    bool    `json:"only_deleted" form:"only_deleted"`
}

/**********************************************
*      User usecase interfaces and types      *
**********************************************/

type UserUsecase interface {
	List(ctx context.Context, query *ListQuery) ([]*User, *Pagination, error)
	ListTrashed(ctx context.Context) ([]*User, error)
	FindByID(ctx context.Context, userID string) (*User, error)
	Create(ctx context.Context, req *UserCreateRequest) (*User, error)
	Update(ctx context.Context, userID string, req *UserUpdateRequest) (*User, error)
	Delete(ctx context.Context, userID string) error
	Restore(ctx context.Context, userID string) (*User, error)
	ForceDelete(ctx context.Context, userID string) error
}

type UserCreateRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
}

type UserUpdateRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
}
