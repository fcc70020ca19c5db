package domain

const unknownDescription = "Unknown"

// DefaultTopN is how many sectors the sector charts show.
const DefaultTopN = 10

// DuplicatePolicy decides what happens when the dataset declares the same
// company name, or the same plan type within one company, more than once.
type DuplicatePolicy string

// Available duplicate policies.
const (
	// DuplicateMerge keeps the first position and merges the later entry
	// into it. For plans, document lists are concatenated without repeats.
	DuplicateMerge DuplicatePolicy = "merge"

	// DuplicateKeepLast keeps the first position but takes the later
	// entry's contents.
	DuplicateKeepLast DuplicatePolicy = "keep_last"

	// DuplicateReject fails the read with ErrDuplicateKey.
	DuplicateReject DuplicatePolicy = "reject"
)

// IsValid returns true if the policy is recognised.
func (p DuplicatePolicy) IsValid() bool {
	switch p {
	case DuplicateMerge, DuplicateKeepLast, DuplicateReject:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p DuplicatePolicy) String() string {
	return string(p)
}

// Description returns a human-readable description.
func (p DuplicatePolicy) Description() string {
	switch p {
	case DuplicateMerge:
		return "Merge duplicates into the first entry"
	case DuplicateKeepLast:
		return "Later entry replaces the earlier one"
	case DuplicateReject:
		return "Fail on duplicate names"
	default:
		return unknownDescription
	}
}

// AppSettings holds the persisted application settings.
type AppSettings struct {
	Data   DataSettings
	Charts ChartSettings
}

// DataSettings configures the dataset source.
type DataSettings struct {
	// Path is the dataset JSON file.
	Path string

	// Watch reloads the dashboard when the file changes.
	Watch bool

	// Duplicates is the duplicate-key policy used while reading.
	Duplicates DuplicatePolicy
}

// ChartSettings configures chart output.
type ChartSettings struct {
	// TopN is how many sectors the sector charts show.
	TopN int
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Data: DataSettings{
			Watch:      true,
			Duplicates: DuplicateMerge,
		},
		Charts: ChartSettings{
			TopN: DefaultTopN,
		},
	}
}

// Validate checks the settings for values the application cannot use.
func (s *AppSettings) Validate() error {
	if !s.Data.Duplicates.IsValid() {
		return ErrInvalidInput
	}
	if s.Charts.TopN < 1 {
		return ErrInvalidInput
	}
	return nil
}
