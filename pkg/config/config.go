// Package config loads process configuration from the environment,
// defaulting unset variables and failing closed on a malformed override
// (the teacher's JWT_SECRET validation pattern, adapted to this service).
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"variantsudoku/pkg/constants"
)

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	Port           string
	MaxNodesPerSolve int64
	SolveTimeout   time.Duration
	MaxSolveTimeout time.Duration
	RequestLogging bool
}

// Load reads configuration from the environment. Unlike the teacher's
// JWT_SECRET (a genuine secret), this service has no secret to fail
// closed on; instead Load fails closed on a malformed or non-positive
// MAX_NODES_PER_SOLVE or SOLVE_TIMEOUT_SECONDS. MaxNodesPerSolve is only
// loaded and validated: no search code reads it, so it bounds no solve.
func Load() (*Config, error) {
	c := &Config{
		Port:            getEnv("PORT", constants.DefaultPort),
		MaxNodesPerSolve: constants.MaxNodesPerSolve,
		SolveTimeout:    constants.DefaultSolveTimeout,
		MaxSolveTimeout: constants.MaxSolveTimeout,
		RequestLogging:  getEnv("REQUEST_LOGGING", "true") != "false",
	}

	if raw := os.Getenv("MAX_NODES_PER_SOLVE"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, errors.New("config error: MAX_NODES_PER_SOLVE must be a positive integer")
		}
		c.MaxNodesPerSolve = n
	}

	if raw := os.Getenv("SOLVE_TIMEOUT_SECONDS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, errors.New("config error: SOLVE_TIMEOUT_SECONDS must be a positive integer")
		}
		c.SolveTimeout = time.Duration(n) * time.Second
		if c.SolveTimeout > c.MaxSolveTimeout {
			return nil, errors.New("config error: SOLVE_TIMEOUT_SECONDS exceeds the server's hard maximum")
		}
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
