package constants

import "time"

// Grid bounds. MaxValues mirrors core.MaxValues (a Mask's bit width);
// kept duplicated here rather than imported so this package stays free
// of a dependency on internal/core, matching how the request layer only
// ever needs the bound, not the type.
const (
	MaxValues   = 16
	MinGivens   = 17 // below this, a puzzle almost never has a unique solution
	DefaultRows = 9
	DefaultCols = 9
)

// Solve-request limits (§5, §6): caps that keep one HTTP request's work
// proportionate regardless of what constraint tree a client submits.
// MaxNodesPerSolve only seeds config.Config.MaxNodesPerSolve; no search
// code enforces it.
const (
	MaxHandlers          = 4096
	MaxNodesPerSolve     = 20_000_000
	DefaultSolveTimeout  = 10 * time.Second
	MaxSolveTimeout      = 60 * time.Second
	DefaultSolutionCap   = 2
	MaxSolutionCap       = 10_000
)

// API version, reported on /health.
const APIVersion = "0.1.0"

// Default listen port, overridable by PORT.
const DefaultPort = "8080"

// Request correlation header name, read/written alongside the
// google/uuid-generated request id (§6).
const RequestIDHeader = "X-Request-ID"
