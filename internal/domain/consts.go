package domain

// Defaults applied when a user has no stored notification settings or when a
// stored value fails to parse.
const (
	DefaultNotificationTime = "08:00"
	DefaultNotificationHour = 8

	// Lead days must stay within this range; enforced at the settings
	// boundary, never inside the matcher.
	MinLeadDay = 0
	MaxLeadDay = 30

	// An empty lead-day list canonicalizes to this single value. Disabling
	// notifications goes through EmailEnabled, not an empty set.
	FallbackLeadDay = 1
)

// DefaultLeadDays is the lead-day set assigned to newly created settings:
// one day, three days and one week before the birthday.
var DefaultLeadDays = []int{1, 3, 7}

// DefaultEmailTemplate is the reminder body used until the user customizes it.
// Placeholders are substituted by the mailer.
const DefaultEmailTemplate = "Hey! Just a reminder that {friendName}'s birthday is coming up on {birthDate}. They will be turning {age} years old!"
