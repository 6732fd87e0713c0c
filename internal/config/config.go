package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DefaultMarker is the sentinel inserted at section boundaries. Downstream
	// chunking splits on this token, so it must survive the round trip through
	// the model verbatim.
	DefaultMarker = "[CHUNK_SEPARATOR]"

	// DefaultModel is the Gemini model used when GEMINI_MODEL is unset.
	DefaultModel = "gemini-2.5-flash-preview-04-17"
)

// ErrNoCredential is returned when no credential source yields an API key.
var ErrNoCredential = errors.New("GOOGLE_API_KEY is not set")

type Config struct {
	Port string

	// Gemini
	GoogleAPIKey string
	GeminiModel  string

	// Marker insertion
	Marker string

	// Path substring that triggers brochure cleanup (image stripping, stray
	// placeholder removal). Matched case-insensitively.
	CleanupPathTag string

	// Dotenv file consulted by the credential sources.
	EnvFile string

	// Serve mode
	APIKey         string
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		GeminiModel: envOr("GEMINI_MODEL", DefaultModel),

		Marker:         envOr("DOCMARK_MARKER", DefaultMarker),
		CleanupPathTag: envOr("DOCMARK_CLEANUP_TAG", "brochure"),
		EnvFile:        envOr("DOCMARK_ENV_FILE", ".env"),

		APIKey:         os.Getenv("DOCMARK_API_KEY"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB
	}

	if cfg.Marker == "" {
		cfg.Marker = DefaultMarker
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}

	return cfg
}

func (c Config) Validate() error {
	if c.GoogleAPIKey == "" {
		return ErrNoCredential
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL must not be empty")
	}
	return nil
}

// CredentialSource is one place the API key may come from. Sources are tried
// in order and the first non-empty result wins.
type CredentialSource struct {
	Name   string
	Lookup func() (string, error)
}

// DefaultCredentialSources returns the layered lookup for GOOGLE_API_KEY:
// a dotenv file at the given (usually relative) path, the same file addressed
// absolutely from the working directory, then the ambient environment.
// Dotenv sources read the file without mutating the process environment.
func DefaultCredentialSources(envFile string) []CredentialSource {
	return []CredentialSource{
		{
			Name: "project dotenv",
			Lookup: func() (string, error) {
				return dotenvKey(envFile)
			},
		},
		{
			Name: "absolute dotenv",
			Lookup: func() (string, error) {
				wd, err := os.Getwd()
				if err != nil {
					return "", err
				}
				return dotenvKey(filepath.Join(wd, envFile))
			},
		},
		{
			Name: "environment",
			Lookup: func() (string, error) {
				return os.Getenv("GOOGLE_API_KEY"), nil
			},
		},
	}
}

// ResolveCredential walks the sources in order and returns the first
// non-empty key along with the name of the source that supplied it.
// Source errors (typically a missing dotenv file) are non-fatal and the
// search continues.
func ResolveCredential(sources []CredentialSource) (key, source string, err error) {
	for _, s := range sources {
		v, lookupErr := s.Lookup()
		if lookupErr != nil {
			continue
		}
		if v != "" {
			return v, s.Name, nil
		}
	}
	return "", "", ErrNoCredential
}

func dotenvKey(path string) (string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return "", err
	}
	return env["GOOGLE_API_KEY"], nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
