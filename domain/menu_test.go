package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMenu() *Menu {
	return &Menu{
		Name:        TranslatedString{"en": "Dashboard", "id": "Dasbor"},
		Description: TranslatedString{"en": "Landing page", "id": "Halaman utama"},
		Route:       "/dashboard",
		Icon:        "home",
		Order:       1,
		Status:      true,
	}
}

func TestMenuValidateOK(t *testing.T) {
	assert.NoError(t, validMenu().Validate([]string{"en", "id"}))
}

func TestMenuValidateMissingTranslation(t *testing.T) {
	menu := validMenu()
	menu.Name = TranslatedString{"en": "Dashboard"}

	err := menu.Validate([]string{"en", "id"})
	require.Error(t, err)

	var detailed *DetailedError
	require.True(t, errors.As(err, &detailed))
	assert.Equal(t, "MENU_VALIDATION_FAILED", detailed.IDField)
}

func TestMenuValidateEmptyDescriptionLocale(t *testing.T) {
	menu := validMenu()
	menu.Description["id"] = ""

	assert.Error(t, menu.Validate([]string{"en", "id"}))
}

func TestMenuValidateRequiresRouteAndIcon(t *testing.T) {
	menu := validMenu()
	menu.Route = ""
	assert.Error(t, menu.Validate([]string{"en", "id"}))

	menu = validMenu()
	menu.Icon = ""
	assert.Error(t, menu.Validate([]string{"en", "id"}))
}
