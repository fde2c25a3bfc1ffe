package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"canvas-sims/internal/core"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one pair after checking its shape.
func (l *KVList) Set(value string) error {
	if k, _, ok := strings.Cut(value, "="); !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map turns the pairs into a config map. Later pairs win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// Config represents the command-line parameters shared by the shells.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	HUDWidth int
	LogLevel string
	LogFile  string
	LogJSON  bool
	Set      KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "swarm", Scale: 1, TPS: 60, Seed: 42, HUDWidth: 260, LogLevel: "info"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, fmt.Sprintf("simulation to run (%s)", strings.Join(core.Names(), ", ")))
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "append logs to this file instead of stderr")
	fs.BoolVar(&c.LogJSON, "log-json", c.LogJSON, "emit JSON log lines")
	fs.Var(&c.Set, "set", "sim option in key=value form (repeatable)")
}

// SimConfig is the factory config: the -set pairs plus the seed.
func (c *Config) SimConfig() map[string]string {
	cfg := c.Set.Map()
	if _, ok := cfg["seed"]; !ok {
		cfg["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return cfg
}

// Build looks up and constructs the configured sim.
func (c *Config) Build() (core.Sim, map[string]string, error) {
	cfg := c.SimConfig()
	sim, err := core.New(c.Sim, cfg)
	if err != nil {
		return nil, nil, err
	}
	return sim, cfg, nil
}

// SetupLogging installs the configured logger as the slog default. The
// returned closer releases the log file, if any.
func (c *Config) SetupLogging(fallback io.Writer) (io.Closer, error) {
	w := fallback
	var closer io.Closer = io.NopCloser(nil)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		w, closer = f, f
	}
	logger, err := core.NewLogger(w, c.LogLevel, c.LogJSON)
	if err != nil {
		closer.Close()
		return nil, err
	}
	slog.SetDefault(logger)
	return closer, nil
}
