package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-admin-panel/domain"
	"go-admin-panel/pkg/utils"

	"gorm.io/gorm"
)

// SQLHandler is the shared query pipeline behind every repository: a filter
// function builds the predicate set, options add the sort and page window, and
// soft-delete scoping stays explicit through the entity filter flags.
type SQLHandler[T any, V any] struct {
	db          *gorm.DB
	applyFilter func(*gorm.DB, *V) *gorm.DB
}

func NewSQLHandler[T any, V any](
	db *gorm.DB,
	applyFilter func(*gorm.DB, *V) *gorm.DB,

) *SQLHandler[T, V] {
	return &SQLHandler[T, V]{applyFilter: applyFilter, db: db}
}

// dbFor returns the transaction bound to the context when one is running,
// so a mutate+audit pair commits or rolls back as a unit.
func (h *SQLHandler[T, V]) dbFor(ctx context.Context) *gorm.DB {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return h.db
}

func (h *SQLHandler[T, V]) Create(ctx context.Context, entity *T) error {
	return h.dbFor(ctx).WithContext(ctx).Create(entity).Error
}

func (h *SQLHandler[T, V]) FindOne(ctx context.Context, filter *V, option *domain.FindOneOption) (*T, error) {
	execDB := h.applyFilter(h.dbFor(ctx), filter)
	execDB = h.applyFindOneOption(execDB, option)

	var entity T
	err := execDB.WithContext(ctx).First(&entity).Error
	if err == nil {
		return &entity, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRecordNotFound
	}
	return nil, err
}

// FindByID looks a row up by primary key regardless of soft-delete state.
func (h *SQLHandler[T, V]) FindByID(ctx context.Context, id any, option *domain.FindOneOption) (*T, error) {
	execDB := h.dbFor(ctx).Where("id = ?", id)
	execDB = h.applyFindOneOption(execDB, option)

	var entity T
	err := execDB.WithContext(ctx).First(&entity).Error
	if err == nil {
		return &entity, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRecordNotFound
	}
	return nil, err
}

func (h *SQLHandler[T, V]) applyFindOneOption(db *gorm.DB, option *domain.FindOneOption) *gorm.DB {
	if option == nil {
		return db
	}
	for _, sortField := range option.Sort {
		db = db.Order(sortField)
	}
	for _, field := range option.Preloads {
		db = db.Preload(field)
	}
	return db
}

func (h *SQLHandler[T, V]) applyFindManyOption(db *gorm.DB, option *domain.FindManyOption) *gorm.DB {
	if option == nil {
		return db
	}

	for _, sortField := range option.Sort {
		db = db.Order(sortField)
	}

	if option.Limit != nil {
		db = db.Limit(*option.Limit)
	}

	if option.Offset != nil {
		db = db.Offset(*option.Offset)
	}

	for _, field := range option.Preloads {
		db = db.Preload(field)
	}
	return db
}

func (h *SQLHandler[T, V]) FindMany(ctx context.Context, filter *V, option *domain.FindManyOption) ([]*T, error) {
	execDB := h.applyFilter(h.dbFor(ctx), filter)
	execDB = h.applyFindManyOption(execDB, option)

	var entities []*T
	err := execDB.WithContext(ctx).Find(&entities).Error
	if err != nil {
		return nil, err
	}

	return entities, nil
}

func (h *SQLHandler[T, V]) applyFindPageOption(db *gorm.DB, option *domain.FindPageOption) (outDB *gorm.DB, page, perPage int) {
	outDB = db
	page = 1
	perPage = domain.DefaultPageSize
	if option != nil {
		for _, sortField := range option.Sort {
			outDB = outDB.Order(sortField)
		}
		if option.Page > 0 {
			page = option.Page
		}

		if option.PerPage > 0 {
			perPage = option.PerPage
		}

		for _, field := range option.Preloads {
			outDB = outDB.Preload(field)
		}
	}
	offset := (page - 1) * perPage
	outDB = outDB.Offset(offset).Limit(perPage)
	return
}

func (h *SQLHandler[T, V]) FindPage(ctx context.Context, filter *V, option *domain.FindPageOption) ([]*T, *domain.Pagination, error) {
	execDB := h.applyFilter(h.dbFor(ctx), filter)

	var totalItems int64
	countDB := execDB.Session(&gorm.Session{}) // clone for count
	err := countDB.WithContext(ctx).Model(new(T)).Count(&totalItems).Error
	if err != nil {
		return nil, nil, err
	}

	execDB, page, perPage := h.applyFindPageOption(execDB, option)

	var entities []*T
	err = execDB.WithContext(ctx).Find(&entities).Error
	if err != nil {
		return nil, nil, err
	}

	return entities, domain.NewPagination(page, perPage, totalItems), nil
}

func (h *SQLHandler[T, V]) Update(ctx context.Context, entity *T) error {
	return h.dbFor(ctx).WithContext(ctx).Save(entity).Error
}

func (h *SQLHandler[T, V]) UpdateFields(ctx context.Context, id any, fields map[string]any) error {
	var entity T
	return h.dbFor(ctx).WithContext(ctx).Model(&entity).Where("id = ?", id).Updates(fields).Error
}

// SoftDeleteByID marks a live row as deleted. Returns ErrRecordNotFound when
// the id does not match a live row.
func (h *SQLHandler[T, V]) SoftDeleteByID(ctx context.Context, id any) error {
	var entity T
	result := h.dbFor(ctx).WithContext(ctx).
		Model(&entity).
		Where("id = ? AND deleted_at = 0", id).
		Updates(map[string]any{
			"deleted_at": utils.NowUnixMillis(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// RestoreByID clears the deletion mark of a trashed row. Returns
// ErrRecordNotFound when the id does not match a trashed row.
func (h *SQLHandler[T, V]) RestoreByID(ctx context.Context, id any) error {
	var entity T
	result := h.dbFor(ctx).WithContext(ctx).
		Model(&entity).
		Where("id = ? AND deleted_at > 0", id).
		Updates(map[string]any{
			"deleted_at": 0,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// HardDeleteByID purges a trashed row from storage. Returns ErrRecordNotFound
// when the id does not match a trashed row.
func (h *SQLHandler[T, V]) HardDeleteByID(ctx context.Context, id any) error {
	var entity T
	result := h.dbFor(ctx).WithContext(ctx).
		Where("id = ? AND deleted_at > 0", id).
		Delete(&entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (h *SQLHandler[T, V]) Count(ctx context.Context, filter *V) (int64, error) {
	var count int64
	execDB := h.applyFilter(h.dbFor(ctx), filter)
	err := execDB.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}

// ApplySearch applies a case-insensitive partial match over the given fields.
// searchableFields is map[alias]dbField; the field side may be any SQL
// expression, which lets translatable JSON columns expose one entry per
// locale variant.
// Example: map[string]string{"name.en": "name->>'en'", "email": "users.email"}
func ApplySearch(
	db *gorm.DB,
	searchTerm string,
	searchFields []string,
	searchableFields map[string]string,

) *gorm.DB {
	if searchTerm == "" {
		return db
	}

	fieldsToSearch := getValidSearchFields(searchFields, searchableFields)
	if len(fieldsToSearch) == 0 {
		return db
	}

	query := buildPartialMatchQuery(fieldsToSearch, searchTerm)
	return db.Where(query.condition, query.args...)
}

// getValidSearchFields returns database field names that are valid for searching
func getValidSearchFields(requestedFields []string, searchableFields map[string]string) []string {
	if len(requestedFields) == 0 {
		return getAllSearchableFields(searchableFields)
	}
	return filterValidFields(requestedFields, searchableFields)
}

// getAllSearchableFields returns all available searchable database fields
func getAllSearchableFields(searchableFields map[string]string) []string {
	fields := make([]string, 0, len(searchableFields))
	for _, dbField := range searchableFields {
		fields = append(fields, dbField)
	}
	return fields
}

// filterValidFields returns only the requested fields that exist in searchableFields
func filterValidFields(requestedFields []string, searchableFields map[string]string) []string {
	var validFields []string
	for _, field := range requestedFields {
		if dbField, exists := searchableFields[field]; exists {
			validFields = append(validFields, dbField)
		}
	}
	return validFields
}

type searchQuery struct {
	condition string
	args      []any
}

// buildPartialMatchQuery creates ILIKE conditions for partial string matching
func buildPartialMatchQuery(fields []string, searchTerm string) searchQuery {
	conditions := make([]string, len(fields))
	args := make([]any, len(fields))
	searchPattern := "%" + searchTerm + "%"

	for i, field := range fields {
		conditions[i] = fmt.Sprintf("%s ILIKE ?", field)
		args[i] = searchPattern
	}

	return searchQuery{
		condition: strings.Join(conditions, " OR "),
		args:      args,
	}
}

// TranslatableSearchFields expands a JSON column into one searchable
// expression per supported locale.
func TranslatableSearchFields(column string, locales []string) map[string]string {
	fields := make(map[string]string, len(locales))
	for _, locale := range locales {
		fields[fmt.Sprintf("%s.%s", column, locale)] = fmt.Sprintf("%s->>'%s'", column, locale)
	}
	return fields
}
