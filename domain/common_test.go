package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatedStringGet(t *testing.T) {
	ts := TranslatedString{"en": "Dashboard", "id": "Dasbor"}

	assert.Equal(t, "Dashboard", ts.Get("en"))
	assert.Equal(t, "Dasbor", ts.Get("id"))
}

func TestTranslatedStringGetFallsBack(t *testing.T) {
	ts := TranslatedString{"id": "Dasbor"}
	// Missing locale falls back to any non-empty variant.
	assert.Equal(t, "Dasbor", ts.Get("en"))

	assert.Equal(t, "", TranslatedString{}.Get("en"))
	assert.Equal(t, "", TranslatedString{"en": ""}.Get("en"))
}

func TestTranslatedStringMissingLocales(t *testing.T) {
	ts := TranslatedString{"en": "Dashboard", "id": ""}

	assert.Equal(t, []string{"id"}, ts.MissingLocales([]string{"en", "id"}))
	assert.Nil(t, TranslatedString{"en": "x", "id": "y"}.MissingLocales([]string{"en", "id"}))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.TotalItems)

	assert.Equal(t, 0, NewPagination(1, 10, 0).TotalPages)
	assert.Equal(t, 1, NewPagination(1, 10, 10).TotalPages)
}

func TestCauserContextRoundTrip(t *testing.T) {
	user := &User{SQLModel: SQLModel{ID: "u-1"}, Name: "Alice"}

	ctx := WithCauser(context.Background(), user)
	assert.Same(t, user, CauserFromContext(ctx))

	assert.Nil(t, CauserFromContext(context.Background()))
}

func TestSQLModelIsTrashed(t *testing.T) {
	assert.False(t, SQLModel{}.IsTrashed())
	assert.True(t, SQLModel{DeletedAt: 1700000000000}.IsTrashed())
}
