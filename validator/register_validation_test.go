package validator

import (
	"testing"

	"go-admin-panel/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *validator.Validate {
	t.Helper()
	engine, ok := New().Engine().(*validator.Validate)
	require.True(t, ok)
	return engine
}

type listParams struct {
	Direction string `json:"direction" binding:"omitempty,sort_direction"`
	PerPage   int    `json:"per_page" binding:"omitempty,page_size"`
}

func TestSortDirectionTag(t *testing.T) {
	engine := testEngine(t)

	assert.NoError(t, engine.Struct(listParams{Direction: "asc"}))
	assert.NoError(t, engine.Struct(listParams{Direction: "desc"}))
	assert.NoError(t, engine.Struct(listParams{}))
	assert.Error(t, engine.Struct(listParams{Direction: "sideways"}))
	assert.Error(t, engine.Struct(listParams{Direction: "ASC"}))
}

func TestPageSizeTag(t *testing.T) {
	engine := testEngine(t)

	for _, size := range domain.PageSizes {
		assert.NoError(t, engine.Struct(listParams{PerPage: size}))
	}
	assert.NoError(t, engine.Struct(listParams{}))
	assert.Error(t, engine.Struct(listParams{PerPage: 15}))
	assert.Error(t, engine.Struct(listParams{PerPage: 1000}))
}

type translatedParams struct {
	Name domain.TranslatedString `json:"name" binding:"required,translated"`
}

func TestTranslatedTagRequiresEveryLocale(t *testing.T) {
	SetSupportedLocales([]string{"en", "id"})
	engine := testEngine(t)

	assert.NoError(t, engine.Struct(translatedParams{
		Name: domain.TranslatedString{"en": "Dashboard", "id": "Dasbor"},
	}))
	assert.Error(t, engine.Struct(translatedParams{
		Name: domain.TranslatedString{"en": "Dashboard"},
	}))
	assert.Error(t, engine.Struct(translatedParams{
		Name: domain.TranslatedString{"en": "Dashboard", "id": ""},
	}))
}

type dateParams struct {
	StartDate string `json:"start_date" binding:"omitempty,date_only"`
}

func TestDateOnlyTag(t *testing.T) {
	engine := testEngine(t)

	assert.NoError(t, engine.Struct(dateParams{}))
	assert.NoError(t, engine.Struct(dateParams{StartDate: "2026-08-28"}))
	assert.Error(t, engine.Struct(dateParams{StartDate: "28-08-2026"}))
	assert.Error(t, engine.Struct(dateParams{StartDate: "2026-08-28T00:00:00Z"}))
	assert.Error(t, engine.Struct(dateParams{StartDate: "not a date"}))
}

type notEmptyParams struct {
	Value string `json:"value" binding:"not_empty"`
}

func TestNotEmptyTag(t *testing.T) {
	engine := testEngine(t)

	assert.NoError(t, engine.Struct(notEmptyParams{Value: "x"}))
	assert.Error(t, engine.Struct(notEmptyParams{}))
}
