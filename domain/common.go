package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

type SQLModel struct {
	ID        string `json:"id" gorm:"type:varchar(36);primary_key;default:gen_random_uuid()"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt int64  `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt int64  `json:"deleted_at" gorm:"index"`
}

// IsTrashed reports whether the row has been soft-deleted.
func (m SQLModel) IsTrashed() bool {
	return m.DeletedAt > 0
}

type FindOneOption struct {
	Preloads []string `json:"preloads" form:"preloads"`
	Sort     []string `json:"sort" form:"sort"`
}

type FindManyOption struct {
	Preloads []string `json:"preloads" form:"preloads"`
	Sort     []string `json:"sort" form:"sort"`
	Limit    *int     `json:"limit" form:"limit" default:"10"`
	Offset   *int     `json:"offset" form:"offset" default:"0"`
}

type FindPageOption struct {
	Preloads []string `json:"preloads" form:"preloads"`
	Sort     []string `json:"sort" form:"sort"`
	Page     int      `json:"page" form:"page" default:"1"`
	PerPage  int      `json:"per_page" form:"per_page" default:"10"`
}

type JSONB map[string]any

func (j JSONB) Value() (driver.Value, error) {
	val, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(val), nil
}

func (j *JSONB) Scan(input interface{}) error {
	b, ok := input.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, j)
}

// TranslatedString holds one text value per locale, stored as a JSON column.
type TranslatedString map[string]string

func (t TranslatedString) Value() (driver.Value, error) {
	val, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(val), nil
}

func (t *TranslatedString) Scan(input interface{}) error {
	b, ok := input.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, t)
}

func (t TranslatedString) GormDataType() string {
	return "jsonb"
}

// Get returns the value for the given locale, falling back to the first
// non-empty variant when the locale is absent.
func (t TranslatedString) Get(locale string) string {
	if v, ok := t[locale]; ok && v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// MissingLocales returns the locales for which no non-empty value is present.
func (t TranslatedString) MissingLocales(locales []string) []string {
	var missing []string
	for _, locale := range locales {
		if t[locale] == "" {
			missing = append(missing, locale)
		}
	}
	return missing
}

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

func NewPagination(page, perPage int, totalItems int64) *Pagination {
	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
}

// TxManager runs a function within a single store transaction. Implementations
// thread the transaction through the context so repositories can pick it up.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type causerCtxKey struct{}

// WithCauser stores the acting user on the context so mutation paths can
// attribute audit entries to them.
func WithCauser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, causerCtxKey{}, user)
}

// CauserFromContext returns the acting user, or nil for system-initiated work.
func CauserFromContext(ctx context.Context) *User {
	if user, ok := ctx.Value(causerCtxKey{}).(*User); ok {
		return user
	}
	return nil
}
