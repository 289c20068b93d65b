// Package env resolves runtime configuration for slotrix. Values come from an
// optional .env file first and the process environment second, so local
// development uses the file while containerized deployments inject plain
// environment variables.
package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// fileValues holds the parsed .env content. Nil when no file was found, in
// which case every lookup falls through to the process environment.
var fileValues map[string]string

// envFileCandidates are checked in order relative to the working directory;
// the entrypoints under cmd/ run two levels below the repository root.
var envFileCandidates = []string{
	".env",
	"../../.env",
}

// SetupEnvFile loads the first .env file it finds. A missing file is not an
// error: deployments configure slotrix through real environment variables.
func SetupEnvFile() {
	for _, candidate := range envFileCandidates {
		values, err := godotenv.Read(candidate)
		if err == nil {
			fileValues = values
			return
		}
	}
	log.Print("no .env file found, using process environment only")
}

// GetEnv returns the configured value for key, preferring the .env file over
// the process environment, or def when neither is set.
func GetEnv(key, def string) string {
	if val, ok := fileValues[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
