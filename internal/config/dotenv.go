package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadDotEnv loads each file in order, skipping missing ones. Variables
// already set win over later files. It returns the files that were read.
func LoadDotEnv(files ...string) []string {
	var loaded []string
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Str("module", "config").Str("file", f).Msg("failed to read env file")
			}
			continue
		}
		log.Debug().Str("module", "config").Str("file", f).Msg("loaded env file")
		loaded = append(loaded, f)
	}
	return loaded
}
