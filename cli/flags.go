package cli

var (
	verbose bool

	// for run and server start
	configPath string
	deviceName string
	dryRun     bool
)
