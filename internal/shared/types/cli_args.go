package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile   string
	BaseDir      string
	ReportTypes  []string
	Encoding     string
	LogFile      string
	UploadBucket string
	Verbose      bool
	Strict       bool
	DryRun       bool
	NoBanner     bool
}
