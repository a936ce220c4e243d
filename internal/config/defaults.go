package config

const (
	defaultDataDir            = "~/.local/share/slate"
	defaultLogDir             = "~/.local/share/slate/logs"
	defaultMediaDir           = "~/media/takes"
	defaultAPIBind            = "127.0.0.1:7487"
	defaultProjectName        = "The Perimeter"
	defaultProjectDescription = "Sci-fi short film set in an abandoned outpost."
	defaultAspectRatio        = "2.39:1"
	defaultTargetFPS          = 24
	defaultTargetLine         = "I told you we shouldn't have come here, Marcus. The perimeter is compromised."
	defaultProgressTTLMinutes = 240
	defaultProgressMaxRecords = 1024
	defaultEvictionSchedule   = "*/15 * * * *"
	defaultSnippetLimit       = 200
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			MediaDir: defaultMediaDir,
			APIBind:  defaultAPIBind,
		},
		Project: Project{
			Name:        defaultProjectName,
			Description: defaultProjectDescription,
			AspectRatio: defaultAspectRatio,
			TargetFPS:   defaultTargetFPS,
		},
		Script: Script{
			TargetLine: defaultTargetLine,
		},
		Pipeline: Pipeline{
			ProgressTTLMinutes: defaultProgressTTLMinutes,
			ProgressMaxRecords: defaultProgressMaxRecords,
			EvictionSchedule:   defaultEvictionSchedule,
		},
		Indexing: Indexing{
			SnippetLimit: defaultSnippetLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
