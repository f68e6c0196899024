package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Roles
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Timeouts
const (
	DefaultTimeout        = 10 * time.Second
	DefaultRequestTimeout = 15 * time.Second
)

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// Booking rules
const (
	// Layouts used for slot dates and times-of-day
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// Customers must cancel at least this long before the session starts
	CancelWindowMinutes = 24 * 60

	// Fallback hourly rate when a provider has no specialty rate configured
	DefaultHourlyRate = 100.0

	MinNoteLength = 10
)

// AllowedDurations are the bookable consultation lengths in minutes
var AllowedDurations = []int{60, 120}

// Slot list modes
const (
	SlotListUpcoming = "upcoming"
	SlotListHistory  = "history"
)
