// Package config loads agdlrun's runner defaults: the scheduler's maximum
// cycle count, its progress-report interval, and whether DEBUG-gated node
// diagnostics are enabled. Values come from an optional TOML file (named
// .agdlrun.toml by convention, mirroring the teacher's own TQW resource file
// convention in internal/tqw) and environment variables prefixed AGDLRUN_,
// layered on top of the file via viper. cmd/agdlrun's run command then
// applies its --max-cycles and --progress-every flags over these values;
// the loaded Debug value is not read by cmd/agdlrun, whose log level
// follows the --debug flag.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Defaults holds the runner configuration before any CLI flag override is
// applied. The zero value is the out-of-the-box default: no cycle cap, no
// progress reporting, debug diagnostics off.
type Defaults struct {
	MaxCycles     int  `toml:"max_cycles"`
	ProgressEvery int  `toml:"progress_every"`
	Debug         bool `toml:"debug"`
}

// Load reads path (if it exists) as a TOML file into Defaults, then layers
// in AGDLRUN_-prefixed environment variables via viper. A missing path is
// not an error: Load returns the zero-value Defaults. A path that exists but
// fails to parse is.
func Load(path string) (Defaults, error) {
	var d Defaults

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &d); err != nil {
				return Defaults{}, err
			}
		}
	}

	v := viper.New()
	v.SetEnvPrefix("AGDLRUN")
	v.AutomaticEnv()

	if v.IsSet("MAX_CYCLES") {
		d.MaxCycles = v.GetInt("MAX_CYCLES")
	}
	if v.IsSet("PROGRESS_EVERY") {
		d.ProgressEvery = v.GetInt("PROGRESS_EVERY")
	}
	if v.IsSet("DEBUG") {
		d.Debug = v.GetBool("DEBUG")
	}

	return d, nil
}
