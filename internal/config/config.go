// Package config layers BetLang's three driver-level settings (spec
// §6 "Environment variables") defaults -> environment -> explicit
// override, the same precedence order as the teacher's
// cli.LoadConfig, adapted from a JSON config file to environment
// variables since spec §6 names env vars, not a config file, as the
// configuration surface.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hyperpolymath/betlang/internal/safety"
)

// Default values used when neither an environment variable nor an
// explicit override supplies one.
const (
	DefaultSeed           uint64 = 0
	DefaultCoolOffSeconds int    = 30
)

// DefaultTolerance mirrors internal/safety's Dutch-book tolerance so
// BETLANG_TOLERANCE and an unconfigured run agree on what "fair" means.
const DefaultTolerance = safety.DefaultTolerance

// Env var names (spec §6).
const (
	EnvSeed           = "BETLANG_SEED"
	EnvCoolOffSeconds = "BETLANG_COOLOFF_SECONDS"
	EnvTolerance      = "BETLANG_TOLERANCE"
)

// Config holds the three driver-level settings spec §6 names.
type Config struct {
	Seed           uint64
	CoolOffSeconds int
	Tolerance      float64
}

// Load reads defaults, then overlays any of BETLANG_SEED,
// BETLANG_COOLOFF_SECONDS, BETLANG_TOLERANCE present in the
// environment. It never reads flags; cmd/betlang applies an explicit
// --seed flag override on top of the result with WithSeed, so the full
// precedence for the seed is defaults -> env -> flag.
func Load() (Config, error) {
	c := Config{
		Seed:           DefaultSeed,
		CoolOffSeconds: DefaultCoolOffSeconds,
		Tolerance:      DefaultTolerance,
	}

	if s, ok := os.LookupEnv(EnvSeed); ok {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = v
	}
	if s, ok := os.LookupEnv(EnvCoolOffSeconds); ok {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvCoolOffSeconds, err)
		}
		c.CoolOffSeconds = v
	}
	if s, ok := os.LookupEnv(EnvTolerance); ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTolerance, err)
		}
		c.Tolerance = v
	}

	return c, nil
}

// WithSeed returns a copy of c with Seed overridden, unless seed is
// nil (flag not passed).
func (c Config) WithSeed(seed *uint64) Config {
	if seed != nil {
		c.Seed = *seed
	}
	return c
}

// WithCoolOffSeconds returns a copy of c with CoolOffSeconds
// overridden, unless seconds is nil.
func (c Config) WithCoolOffSeconds(seconds *int) Config {
	if seconds != nil {
		c.CoolOffSeconds = *seconds
	}
	return c
}
