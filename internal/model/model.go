// Package model holds the plain data types shared between the CLI layer,
// the orchestrator and the database audit log: how a run is configured and
// what a single file's conversion produced.
package model

import "time"

// Mode selects how a conversion run's output reaches the filesystem.
type Mode string

const (
	ModeStdout      Mode = "stdout"      // write converted text to stdout; touch nothing on disk
	ModeStage       Mode = "stage"       // record the change under .langconv/; touch nothing on disk
	ModeCommit      Mode = "commit"      // apply every staged change recorded under .langconv/
	ModeDirect      Mode = "direct"      // write converted files in place immediately
	ModeInteractive Mode = "interactive" // show a diff and ask per file before writing
)

// Config holds everything a conversion run needs once flags are parsed.
type Config struct {
	Language         string
	Mode             Mode
	Workers          int
	ShowDiff         bool
	ColorDiff        bool
	DiffContext      int
	Verbose          bool
	JSONOutput       bool
	SequentialGlobal bool
	Root             string
	Include          []string
	Exclude          []string
	Extensions       []string
	MaxBytes         int64
	FollowSymlinks   bool
	DSN              string
}

// Result holds the outcome of converting a single file.
type Result struct {
	File            string    `json:"file"`
	Time            time.Time `json:"time"`
	Success         bool      `json:"success"`
	Language        string    `json:"language"`
	ChangedBytes    int       `json:"changed_bytes"`
	Error           string    `json:"error,omitempty"`
	ErrorCode       ErrorCode `json:"error_code,omitempty"`
	OriginalSHA1    string    `json:"original_sha1,omitempty"`
	ModifiedSHA1    string    `json:"modified_sha1,omitempty"`
	OriginalContent string    `json:"-"`
	ModifiedContent string    `json:"-"`
}

const CurrentToolVersion = "0.1.0"
