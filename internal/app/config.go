package app

// Defaults shared between flag registration and the config overlays. The
// overlays treat a field still holding its default as unset so that file and
// environment values can fill it without clobbering an explicit flag.
const (
	DefaultTableID     = "GridView1"
	DefaultSourceLabel = "USACE Real-time"
	DefaultSampleCount = 5
)

// Config holds runtime configuration for the application.
type Config struct {
	InputPath string

	// Extraction
	TableID     string
	SourceLabel string
	SampleCount int

	// Artifacts (empty disables each)
	OutputPath  string
	PDFPath     string
	RecordsPath string

	// Behavior
	InspectOnly bool
	Verbose     bool
	LogFile     string
}
