package cfg

type Cfg struct {
	// File locations
	ConfigPath string
	DBPath     string
	CachePath  string

	// Run mode
	Once  bool
	Stats bool

	// HTTP status server; empty port disables it
	Port string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
