package validator

import (
	"sync"
	"time"

	"go-admin-panel/domain"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const dateOnlyLayout = "2006-01-02"

var (
	localesMu        sync.RWMutex
	supportedLocales = []string{"en", "id"}
)

// SetSupportedLocales overrides the locales the `translated` tag requires.
// Call it once at startup, before any request binding runs.
func SetSupportedLocales(locales []string) {
	localesMu.Lock()
	defer localesMu.Unlock()
	if len(locales) > 0 {
		supportedLocales = locales
	}
}

func getSupportedLocales() []string {
	localesMu.RLock()
	defer localesMu.RUnlock()
	return supportedLocales
}

type Registration struct {
	Tag  string
	Func validator.Func
}

var defaultRegistrations = [...]Registration{
	{
		Tag:  SortDirection,
		Func: IsValidSortDirection,
	},
	{
		Tag:  PageSize,
		Func: IsValidPageSize,
	},
	{
		Tag:  Translated,
		Func: IsValidTranslated,
	},
	{
		Tag:  DateOnly,
		Func: IsValidDateOnly,
	},
	{
		Tag:  NotEmpty,
		Func: IsNotEmpty,
	},
}

func IsValidSortDirection(fl validator.FieldLevel) bool {
	input := fl.Field().String()
	return input == domain.SortAsc || input == domain.SortDesc
}

func IsValidPageSize(fl validator.FieldLevel) bool {
	input := int(fl.Field().Int())
	return lo.Contains(domain.PageSizes, input)
}

// IsValidTranslated requires a non-empty value for every supported locale.
func IsValidTranslated(fl validator.FieldLevel) bool {
	input, ok := fl.Field().Interface().(domain.TranslatedString)
	if !ok {
		return false
	}
	return len(input.MissingLocales(getSupportedLocales())) == 0
}

func IsValidDateOnly(fl validator.FieldLevel) bool {
	input := fl.Field().String()
	if input == "" {
		return true
	}
	_, err := time.Parse(dateOnlyLayout, input)
	return err == nil
}

func IsNotEmpty(fl validator.FieldLevel) bool {
	input := fl.Field().String()
	return len(input) > 0
}
