package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env files before Load reads the environment.
// godotenv.Load never overwrites variables that are already set, so real
// OS env vars win over .env.local, which wins over .env. Returns the files
// that were actually found.
func LoadDotEnv() []string {
	var found []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			found = append(found, f)
		}
	}
	if len(found) > 0 {
		_ = godotenv.Load(found...)
	}
	return found
}
