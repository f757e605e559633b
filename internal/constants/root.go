package constants

// QuestionType is the kind of answer a question collects
type QuestionType string

// ChartType is the per-question presentation preference on the statistics screen
type ChartType string

const (
	AppName            = "daycheck"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daycheck/daycheck.db"
	SettingsFileName   = "config.yaml"
	EnvPrefix          = "DAYCHECK"
	EnvDBConnection    = "DAYCHECK_DB_CONNECTION"
	Version            = "v0.1.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daycheck-"
	BackupFileSuffix = ".db"

	// Export archive suffix (zstd compressed JSON)
	ExportFileSuffix = ".json.zst"

	// Question types
	QuestionYesNo    QuestionType = "yesno"
	QuestionScale    QuestionType = "scale"
	QuestionFreeText QuestionType = "freetext"

	// Chart types
	ChartLine ChartType = "line"
	ChartPie  ChartType = "pie"

	// Scale bounds applied when a scale question omits them
	DefaultScaleMin = 1
	DefaultScaleMax = 10

	// Statistics defaults
	DefaultWindowDays    = 30
	DefaultTopWords      = 10
	DefaultRecentEntries = 5
	MinWordLength        = 3
	DefaultTimezone      = "Local"

	// Custom question id prefix
	CustomQuestionPrefix = "custom-"
)

// Categories is the fixed set of question categories
var Categories = []string{
	"Health",
	"Fitness",
	"Nutrition",
	"Mental Health",
	"Productivity",
	"Social",
	"Learning",
	"Creativity",
	"Finances",
	"Self-care",
}

// IsCategory reports whether name is one of the known categories
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
