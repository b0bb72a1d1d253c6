// Package config loads the optional analyzer configuration file: TOML, via
// github.com/BurntSushi/toml. A missing -config flag means "use the
// built-in defaults", not an error.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/zlang-project/zsema/internal/diag"
)

// WarningLevel controls whether a warning-class diagnostic ID is reported
// or silenced.
type WarningLevel string

const (
	LevelWarn     WarningLevel = "warn"
	LevelSilenced WarningLevel = "silenced"
)

// DotLabelStyle controls how a node is labeled in the AST .dot export.
type DotLabelStyle string

const (
	DotLabelKind     DotLabelStyle = "kind"
	DotLabelKindData DotLabelStyle = "kind+data"
)

// Warnings holds the per-ID warning levels a config file may override.
type Warnings struct {
	Revar  WarningLevel `toml:"revar"`
	Unused WarningLevel `toml:"unused"`
	Uninit WarningLevel `toml:"uninit"`
	Const  WarningLevel `toml:"const"`
}

// Server holds a listen address and storage DSN. They are parsed from the
// config file, but cmd/zlangd does not read a config file: it takes its
// listen address and database from flags and environment variables.
type Server struct {
	ListenAddr string `toml:"listen_addr"`
	SqliteDSN  string `toml:"sqlite_dsn"`
}

// Config is the root of an analyzer config file. It is entirely optional —
// an analyzer invoked without -config uses Default().
type Config struct {
	Warnings Warnings      `toml:"warnings"`
	DotLabel DotLabelStyle `toml:"dot_label"`
	Server   Server        `toml:"server"`
}

// Default returns the built-in configuration used when no -config flag is
// given: every warning enabled, the "kind" dot label style (see
// report.WriteDot), and a Server section holding localhost:8787 and a
// "zlangd.db" sqlite DSN.
func Default() Config {
	return Config{
		Warnings: Warnings{
			Revar:  LevelWarn,
			Unused: LevelWarn,
			Uninit: LevelWarn,
			Const:  LevelWarn,
		},
		DotLabel: DotLabelKind,
		Server: Server{
			ListenAddr: "localhost:8787",
			SqliteDSN:  "zlangd.db",
		},
	}
}

// Load reads and parses a config file at path, starting from Default() so a
// config that only overrides one field leaves the rest at their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Silenced reports whether id has been downgraded to silenced by this
// config's Warnings section. Only the four warning-class IDs are
// configurable; every other ID (including the ERROR-severity ones) is
// never silenced.
func (c Config) Silenced(id diag.ID) bool {
	switch id {
	case diag.ReVar:
		return c.Warnings.Revar == LevelSilenced
	case diag.Unused:
		return c.Warnings.Unused == LevelSilenced
	case diag.Uninit:
		return c.Warnings.Uninit == LevelSilenced
	case diag.Const:
		return c.Warnings.Const == LevelSilenced
	default:
		return false
	}
}
