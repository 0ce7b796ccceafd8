// Package constants provides shared constants used throughout the funcsync codebase.
// This includes file permissions, default stream layouts, limits and other
// values that should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Stream layout defaults. They reproduce the layout of the compiler
// experiment logs: one JSONL function log and one edit-distance file per
// (flavour, optimization level) pair.
const (
	// DefaultPrimaryPattern names the primary (structured record) file of a stream
	DefaultPrimaryPattern = "function_logs_{flavour}_{level}.jsonl"

	// DefaultAuxPattern names the auxiliary (payload) file of a stream
	DefaultAuxPattern = "edit_distances_{flavour}_{level}.txt"

	// DefaultCleanedSuffix is appended to input file names to name cleaned outputs
	DefaultCleanedSuffix = ".cleaned"

	// DefaultKeyField is the JSON field holding the record key
	DefaultKeyField = "function"

	// FlavourPlaceholder is replaced by the stream flavour in file patterns
	FlavourPlaceholder = "{flavour}"

	// LevelPlaceholder is replaced by the stream level in file patterns
	LevelPlaceholder = "{level}"
)

// DefaultFlavours are the flavours of the default stream family.
var DefaultFlavours = []string{"a", "l"}

// DefaultLevels are the optimization levels of the default stream family.
var DefaultLevels = []string{"O0", "O1", "O2", "O3"}

// Limit constants define various limits and capacities
const (
	// DefaultConcurrency is the default number of streams processed at once
	DefaultConcurrency = 4

	// MaxConcurrency caps the configurable stream parallelism
	MaxConcurrency = 64

	// ReadBufferSize is the buffer size used when reading stream files
	ReadBufferSize = 64 * 1024

	// WriteBufferSize is the buffer size used when writing cleaned outputs
	WriteBufferSize = 64 * 1024
)

// Timeout constants
const (
	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Format constants
const (
	// TempFilePattern is the os.CreateTemp pattern for in-progress outputs
	TempFilePattern = ".funcsync-*.tmp"
)
