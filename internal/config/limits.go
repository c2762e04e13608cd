package config

const (
	// MaxChatTitleLength is the maximum length for chat titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxChatTitleLength = 255

	// MaxProjectTitleLength is the maximum length for project titles.
	// Same as chat titles for consistency.
	MaxProjectTitleLength = 255

	// MaxMessageLength caps a single chat message's content. Matches the
	// completion endpoint's practical prompt budget.
	MaxMessageLength = 32_000

	// MaxProjectDescriptionLength caps the free-text project description
	// embedded in the generator prompt.
	MaxProjectDescriptionLength = 4_000

	// MaxGeneratedFiles caps how many file rows a single generation call
	// may insert, regardless of what the model returns.
	MaxGeneratedFiles = 100

	// MaxUploadBytes caps attachment uploads proxied to storage.
	MaxUploadBytes = 10 << 20

	// DefaultGuestDailyMessageLimit is how many relay calls an anonymous
	// guest gets per day before being asked to sign up.
	DefaultGuestDailyMessageLimit = 10
)
