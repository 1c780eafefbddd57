package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

func isNotExist(err error) bool {
	return os.IsNotExist(err)
}

// Config is the optional mapforge.toml a project may carry, the way a
// Dingo project carries dingo.toml.
type Config struct {
	// Encoding names a column unit, "bytewise" or "utf8". No command reads
	// it: serve always reports UTF-8 columns and build output is
	// encoding-agnostic.
	Encoding string `toml:"encoding"`
	// EmbedSources is loaded from the file but no command reads it; the
	// JSON envelope always carries sourcesContent.
	EmbedSources bool `toml:"embed_sources"`
	// Inline makes build append the map to its output as a
	// //# sourceMappingURL= comment. When false, build writes only the
	// generated text; no sidecar .map file is written.
	Inline bool `toml:"inline"`
}

// DefaultConfig mirrors the teacher's "auto-transpile: true" default
// stance: the common case should need no config file at all.
func DefaultConfig() Config {
	return Config{Encoding: "utf8", EmbedSources: true, Inline: true}
}

// LoadConfig reads and merges a TOML config file at path over
// DefaultConfig. A missing file is not an error — it simply yields
// defaults, mirroring a project with no mapforge.toml.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if isNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return cfg, nil
}
