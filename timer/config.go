package timer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xmidt-org/timeaux"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a configuration file
type Format int

const (
	// FormatAuto selects the format from the file extension
	FormatAuto Format = iota

	// FormatYAML is YAML, with either a .yaml or .yml extension
	FormatYAML

	// FormatTOML is TOML, with a .toml extension
	FormatTOML
)

// String returns the name of this format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Config describes a single timer in external configuration.  Intervals are
// written as Go durations, e.g. "250ms" or "1m30s".
type Config struct {
	// Name is the optional name of the timer, used in logs and metrics
	Name string `yaml:"name" toml:"name"`

	// Interval is the required repetition interval.  It must be positive.
	Interval time.Duration `yaml:"interval" toml:"interval"`

	// AutoStart indicates whether the timer is started as soon as it is created
	AutoStart bool `yaml:"autoStart" toml:"autoStart"`

	// RecoverPanics indicates whether handler panics are recovered.  See WithRecovery.
	RecoverPanics bool `yaml:"recoverPanics" toml:"recoverPanics"`
}

// Validate checks that this configuration can produce a timer
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return timeaux.InvalidArgument("timer.Config.Validate", fmt.Sprintf("interval must be positive: %s", c.Interval))
	}

	return nil
}

// Options produces the timer options that this configuration implies
func (c Config) Options() []Option {
	var o []Option
	if len(c.Name) > 0 {
		o = append(o, WithName(c.Name))
	}

	if c.RecoverPanics {
		o = append(o, WithRecovery())
	}

	return o
}

// Create uses a factory to build the timer this configuration describes.  Any
// extra options are applied after the configured ones.
func (c Config) Create(f *DefaultFactory, handler func(), more ...Option) timeaux.Result[Timer] {
	if err := c.Validate(); err != nil {
		return timeaux.Fail[Timer](err)
	}

	return f.CreateWithOptions(c.Interval, handler, c.AutoStart, append(c.Options(), more...)...)
}

// DetectFormat determines the configuration format from a file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML

	case ".toml":
		return FormatTOML

	default:
		return FormatAuto
	}
}

// ParseConfig decodes and validates a Config.  FormatAuto is not allowed here,
// since there is no file name to inspect.
func ParseConfig(data []byte, format Format) (Config, error) {
	const op = "timer.ParseConfig"
	var (
		c   Config
		err error
	)

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &c)

	case FormatTOML:
		err = toml.Unmarshal(data, &c)

	default:
		return Config{}, timeaux.InvalidArgument(op, fmt.Sprintf("unsupported format: %s", format))
	}

	if err != nil {
		return Config{}, &timeaux.Error{
			Kind:    timeaux.ErrInvalidArgument,
			Op:      op,
			Message: format.String() + " parse error",
			Err:     err,
		}
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// LoadConfig reads a Config from a YAML or TOML file, selecting the format by extension.
func LoadConfig(path string) (Config, error) {
	format := DetectFormat(path)
	if format == FormatAuto {
		return Config{}, timeaux.InvalidArgument("timer.LoadConfig", fmt.Sprintf("cannot determine format of %s", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	return ParseConfig(data, format)
}
