package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const businessIDKey = "INSTAGRAM_BUSINESS_ID"

// SaveBusinessID writes the resolved Instagram business ID back to the env
// file, preserving every other entry. The next process start then reads the
// discovered ID without waiting for another echo event.
func SaveBusinessID(envFile, id string) error {
	env, err := godotenv.Read(envFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading env file: %w", err)
		}
		env = map[string]string{}
	}

	env[businessIDKey] = id

	if err := godotenv.Write(env, envFile); err != nil {
		return fmt.Errorf("writing env file: %w", err)
	}
	return nil
}
