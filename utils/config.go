package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const (
	RendererScreen = "screen"
	RendererText   = "text"
)

// Duration is a time.Duration that reads and writes JSON as a string like "100ms"
type Duration time.Duration

// UnmarshalJSON accepts either a duration string or a number of nanoseconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "[Duration.UnmarshalJSON] invalid duration: %+v", s)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrapf(err, "[Duration.UnmarshalJSON] invalid duration: %s", b)
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON writes the duration in its string form
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds the configuration for the game
type Config struct {
	InputFile      string   `json:"input_file"`
	FrameRate      Duration `json:"frame_rate"`
	MaxGenerations int      `json:"max_generations"`
	Renderer       string   `json:"renderer"`
	AliveGlyph     string   `json:"alive_glyph"`
	DeadGlyph      string   `json:"dead_glyph"`
	ShowStatus     bool     `json:"show_status"`
	StopWhenStable bool     `json:"stop_when_stable"`
	AutoRestart    bool     `json:"auto_restart"`

	// Used to seed a random board when no input file is given
	Rows          int     `json:"rows"`
	Columns       int     `json:"columns"`
	Seed          int64   `json:"seed"`
	RandomDensity float64 `json:"random_density"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	glyphs := model.DefaultGlyphs()
	return Config{
		FrameRate:      Duration(100 * time.Millisecond),
		MaxGenerations: 0, // run until interrupted
		Renderer:       RendererScreen,
		AliveGlyph:     glyphs.Alive,
		DeadGlyph:      glyphs.Dead,
		ShowStatus:     true,
		StopWhenStable: false,
		AutoRestart:    false,
		Rows:           30,
		Columns:        60,
		Seed:           42,
		RandomDensity:  0.15,
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind registers command-line overrides for every field on fs
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.InputFile, "input", c.InputFile, "grid file of '0'/'1' rows (random board when empty)")
	fs.Func("frame-rate", "delay between generations (default "+time.Duration(c.FrameRate).String()+")", func(s string) error {
		d, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "[Config.Bind] invalid frame rate: %+v", s)
		}
		c.FrameRate = Duration(d)
		return nil
	})
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations (0 runs forever)")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "renderer to use: screen or text")
	fs.StringVar(&c.AliveGlyph, "alive", c.AliveGlyph, "glyph drawn for alive cells")
	fs.StringVar(&c.DeadGlyph, "dead", c.DeadGlyph, "glyph drawn for dead cells")
	fs.BoolVar(&c.ShowStatus, "status", c.ShowStatus, "show the status line under the board")
	fs.BoolVar(&c.StopWhenStable, "stop-when-stable", c.StopWhenStable, "stop once a generation no longer changes")
	fs.BoolVar(&c.AutoRestart, "auto-restart", c.AutoRestart, "start a new board on extinction or stability instead of stopping")
	fs.IntVar(&c.Rows, "rows", c.Rows, "rows of the random board")
	fs.IntVar(&c.Columns, "columns", c.Columns, "columns of the random board")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random board")
	fs.Float64Var(&c.RandomDensity, "density", c.RandomDensity, "share of alive cells in the random board")
}

// Validate checks that the configuration can drive a game
func (c Config) Validate() error {
	if c.FrameRate < 0 {
		return errors.Errorf("[Config.Validate] frame rate must not be negative: %v", time.Duration(c.FrameRate))
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("[Config.Validate] max generations must not be negative: %d", c.MaxGenerations)
	}
	if c.Renderer != RendererScreen && c.Renderer != RendererText {
		return errors.Errorf("[Config.Validate] unknown renderer: %+v", c.Renderer)
	}
	if c.AliveGlyph == "" || c.DeadGlyph == "" {
		return errors.New("[Config.Validate] glyphs must not be empty")
	}
	if c.InputFile == "" {
		if c.Rows < 1 || c.Columns < 1 {
			return errors.Errorf("[Config.Validate] random board must be at least 1x1, got %dx%d", c.Rows, c.Columns)
		}
		if c.RandomDensity < 0 || c.RandomDensity > 1 {
			return errors.Errorf("[Config.Validate] density must be within [0, 1]: %v", c.RandomDensity)
		}
	}
	return nil
}
