package cli

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings a TOML file on disk can supply; command-line
// flags override whatever it sets.
type Config struct {
	Format  string `toml:"format"` // "text" or "json"
	Verbose bool   `toml:"verbose"`
}

func defaultConfig() Config {
	return Config{Format: "text"}
}

// loadConfig reads path if non-empty, overlaying its values onto the
// defaults. A missing path is not an error; an unreadable or malformed file
// that was explicitly named is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cli: reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("cli: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
