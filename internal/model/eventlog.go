package model

// Log entry levels
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Log entry categories
const (
	LogCategoryAuth   = "auth"
	LogCategoryNav    = "nav"
	LogCategoryPage   = "page"
	LogCategoryUser   = "user"
	LogCategoryEvent  = "event"
	LogCategorySystem = "system"
)
