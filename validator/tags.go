package validator

const (
	Email         = "email"
	Min           = "min"
	Max           = "max"
	Required      = "required"
	SortDirection = "sort_direction"
	PageSize      = "page_size"
	Translated    = "translated"
	DateOnly      = "date_only"
	NotEmpty      = "not_empty"
)
