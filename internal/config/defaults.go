package config

const (
	defaultConfigPath    = "~/.config/mkvbatch/config.toml"
	defaultMKVPropEdit   = "mkvpropedit"
	defaultMediaInfo     = "mediainfo"
	defaultFFprobe       = "ffprobe"
	defaultScanBackend   = BackendMediaInfo
	defaultConcurrency   = 4
	defaultStrictness    = StrictnessStrict
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultLockPath      = "~/.local/state/mkvbatch/session.lock"
	envMKVPropEditBinary = "MKVBATCH_MKVPROPEDIT"
	envMediaInfoBinary   = "MKVBATCH_MEDIAINFO"
)

// Scanning backends.
const (
	BackendMediaInfo = "mediainfo"
	BackendFFprobe   = "ffprobe"
)

// Strictness presets.
const (
	StrictnessStrict  = "strict"
	StrictnessLenient = "lenient"
	StrictnessCustom  = "custom"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			MKVPropEdit: defaultMKVPropEdit,
			MediaInfo:   defaultMediaInfo,
			FFprobe:     defaultFFprobe,
		},
		Scan: Scan{
			Backend:     defaultScanBackend,
			Concurrency: defaultConcurrency,
		},
		Validation: Validation{
			Strictness: defaultStrictness,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Session: Session{
			LockPath: defaultLockPath,
		},
	}
}
