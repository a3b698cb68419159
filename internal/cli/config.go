package cli

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Game      string
	Output    string
	Verbose   bool
}

// DefaultConfig returns the CLI defaults, overridden by SCRABBLE_SERVER and
// SCRABBLE_GAME when set
func DefaultConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("SCRABBLE")
	v.AutomaticEnv()
	v.SetDefault("server", "http://localhost:8080")
	v.SetDefault("game", "")

	return &Config{
		ServerURL: strings.TrimSuffix(v.GetString("server"), "/"),
		Game:      v.GetString("game"),
		Output:    "text",
	}
}
