// Package config contains the texplore command configuration and the code
// to load it from flags, a config file and TEXPLORE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/texplore"
)

// EnvPrefix prefixes every environment variable, e.g. TEXPLORE_LOG_LEVEL.
const EnvPrefix = "TEXPLORE"

// Config is the complete command configuration.
type Config struct {
	// Width and Height are the pixel grid size.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// Domain is the sampled rectangle of the plane.
	Domain Domain `mapstructure:"domain"`
	// Texture applies one formula (0-9) to every channel. Empty keeps the
	// per-channel settings.
	Texture string `mapstructure:"texture"`
	// Red, Green and Blue select per-channel formulas ("0"-"9" or "off").
	// They are applied after Texture.
	Red   string `mapstructure:"red"`
	Green string `mapstructure:"green"`
	Blue  string `mapstructure:"blue"`
	// Random picks random formulas, overriding the selections above.
	Random bool `mapstructure:"random"`
	// Seed makes Random reproducible. Zero seeds from the runtime.
	Seed uint64 `mapstructure:"seed"`
	// Workers is the number of render goroutines; zero means GOMAXPROCS.
	Workers int `mapstructure:"workers"`
	// Output is the file written by render and by save in the shell.
	Output string `mapstructure:"output"`
	// Scale enlarges exported images by an integer factor.
	Scale int `mapstructure:"scale"`
	// Log configures logging.
	Log Log `mapstructure:"log"`
	// Server configures the HTTP preview server.
	Server Server `mapstructure:"server"`
}

// Domain mirrors texplore.Domain with config tags.
type Domain struct {
	XMin float32 `mapstructure:"x_min"`
	XMax float32 `mapstructure:"x_max"`
	YMin float32 `mapstructure:"y_min"`
	YMax float32 `mapstructure:"y_max"`
}

// Log configures logging.
type Log struct {
	// Level is one of trace, debug, info, warn, error or none.
	Level string `mapstructure:"level"`
	// File receives the log instead of the terminal when set.
	File string `mapstructure:"file"`
}

// Server configures the HTTP preview server.
type Server struct {
	// Address to listen on.
	Address string `mapstructure:"address"`
	// MaxPixels caps width*height*scale² per request.
	MaxPixels int `mapstructure:"max_pixels"`
	// CacheEntries is the number of encoded images kept in memory.
	CacheEntries int `mapstructure:"cache_entries"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	g, d := texplore.DefaultGrid(), texplore.DefaultDomain()
	return Config{
		Width:  g.Width,
		Height: g.Height,
		Domain: Domain{XMin: d.XMin, XMax: d.XMax, YMin: d.YMin, YMax: d.YMax},
		Output: texplore.DefaultFileName,
		Scale:  1,
		Log:    Log{Level: "info"},
		Server: Server{Address: "localhost:8000", MaxPixels: 4096 * 4096, CacheEntries: 64},
	}
}

// DefineFlags registers the configuration flags on cmd as persistent flags.
func DefineFlags(cmd *cobra.Command) {
	def := DefaultConfig()
	f := cmd.PersistentFlags()
	f.IntP("width", "W", def.Width, "grid width in pixels")
	f.IntP("height", "H", def.Height, "grid height in pixels")
	f.Float32("domain.x_min", def.Domain.XMin, "minimum x of the coordinate domain")
	f.Float32("domain.x_max", def.Domain.XMax, "maximum x of the coordinate domain")
	f.Float32("domain.y_min", def.Domain.YMin, "minimum y of the coordinate domain")
	f.Float32("domain.y_max", def.Domain.YMax, "maximum y of the coordinate domain")
	f.StringP("texture", "t", "", "formula 0-9 for all channels")
	f.StringP("red", "r", "", "red formula: 0-9 or off")
	f.StringP("green", "g", "", "green formula: 0-9 or off")
	f.StringP("blue", "b", "", "blue formula: 0-9 or off")
	f.Bool("random", false, "pick random formulas")
	f.Uint64("seed", 0, "random seed (0 picks one)")
	f.Int("workers", 0, "render goroutines (0 means GOMAXPROCS)")
	f.StringP("output", "o", def.Output, "output image file (.png, .bmp or .tiff)")
	f.Int("scale", def.Scale, "integer enlargement of exported images")
	f.String("log.level", def.Log.Level, "log level: trace, debug, info, warn, error or none")
	f.String("log.file", "", "optional log file, logs go to stderr otherwise")
	f.String("server.address", def.Server.Address, "preview server listen address")
	f.Int("server.max_pixels", def.Server.MaxPixels, "largest width*height served per request")
	f.Int("server.cache_entries", def.Server.CacheEntries, "encoded images cached by the server (0 disables)")
}

var boundFlags = []string{
	"width", "height", "domain.x_min", "domain.x_max", "domain.y_min", "domain.y_max",
	"texture", "red", "green", "blue", "random", "seed", "workers", "output", "scale",
	"log.level", "log.file", "server.address", "server.max_pixels", "server.cache_entries",
}

// Load reads the configuration. Precedence, highest first: explicitly set
// flags, environment, config file, flag defaults. A missing configFile is an
// error; an empty configFile skips the file.
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for _, name := range boundFlags {
			fl := cmd.Flags().Lookup(name)
			if fl == nil {
				fl = cmd.InheritedFlags().Lookup(name)
			}
			if fl != nil {
				if err := v.BindPFlag(name, fl); err != nil {
					return Config{}, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if errors.As(err, &pathErr) {
				return Config{}, fmt.Errorf("config: file %s not found: %w", configFile, err)
			}
			return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	conf := DefaultConfig()
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Validate checks every field that has a restricted range.
func (c Config) Validate() error {
	if err := c.Grid().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.TexploreDomain().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Selection(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Scale < 1 {
		return fmt.Errorf("config: scale %d must be at least 1: %w", c.Scale, texplore.ErrInvalidArgument)
	}
	return nil
}

// Grid returns the configured pixel grid.
func (c Config) Grid() texplore.Grid {
	return texplore.Grid{Width: c.Width, Height: c.Height}
}

// TexploreDomain returns the configured coordinate domain.
func (c Config) TexploreDomain() texplore.Domain {
	return texplore.Domain{XMin: c.Domain.XMin, XMax: c.Domain.XMax, YMin: c.Domain.YMin, YMax: c.Domain.YMax}
}

// Selection resolves Texture, then the per-channel overrides.
func (c Config) Selection() (texplore.Selection, error) {
	var s texplore.Selection
	if c.Texture != "" {
		i, err := texplore.ParseIndex(c.Texture)
		if err != nil {
			return s, err
		}
		if err := s.SetAll(i); err != nil {
			return s, err
		}
	}
	for ch, v := range map[texplore.Channel]string{texplore.Red: c.Red, texplore.Green: c.Green, texplore.Blue: c.Blue} {
		if v == "" {
			continue
		}
		i, err := texplore.ParseIndex(v)
		if err != nil {
			return s, err
		}
		if err := s.SetChannel(ch, i); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Options converts the configuration to explorer options.
func (c Config) Options() ([]texplore.Option, error) {
	s, err := c.Selection()
	if err != nil {
		return nil, err
	}
	opts := []texplore.Option{
		texplore.WithGrid(c.Grid()),
		texplore.WithDomain(c.TexploreDomain()),
		texplore.WithSelection(s),
		texplore.WithWorkers(c.Workers),
	}
	if c.Seed != 0 {
		opts = append(opts, texplore.WithSeed(c.Seed))
	}
	return opts, nil
}
