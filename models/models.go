package models

import (
	"time"

	"gorm.io/datatypes"
)

// ConversionRun records one file's pending language-variant conversion.
type ConversionRun struct {
	ID        string `gorm:"primaryKey;type:varchar(20)"`
	SessionID string `gorm:"type:varchar(20);index"`

	// What ran.
	Language         string `gorm:"type:varchar(50);not null"` // target variant, e.g. "zh-cn"
	Mode             string `gorm:"type:varchar(20);not null"` // stdout, stage, direct, interactive
	SequentialGlobal bool   `gorm:"default:false"`

	// Target information.
	Path string `gorm:"type:varchar(1024);not null"`

	// Content.
	Original string `gorm:"type:text"`
	Modified string `gorm:"type:text"`
	Diff     string `gorm:"type:text"`

	// Checksums for validation.
	BaseDigest  string `gorm:"type:varchar(64)"` // hex digest of original
	AfterDigest string `gorm:"type:varchar(64)"` // hex digest of modified

	// How many -{ ... }- directives fired while producing Modified.
	DirectiveCount int `gorm:"default:0"`

	// Status tracking.
	Status    string     `gorm:"type:varchar(20);default:'pending'"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	ExpiresAt time.Time  `gorm:"index"`
	AppliedAt *time.Time

	// Relationships.
	Commit *Commit `gorm:"foreignKey:RunID"`
}

// Commit represents a conversion run applied to disk.
type Commit struct {
	ID    string `gorm:"primaryKey;type:varchar(20)"`
	RunID string `gorm:"type:varchar(20);uniqueIndex"`

	// Checksums for validation.
	BaseDigest  string `gorm:"type:varchar(64)"`
	AfterDigest string `gorm:"type:varchar(64)"`

	// Metadata.
	AutoApplied bool      `gorm:"default:false"`
	AppliedBy   string    `gorm:"type:varchar(100)"` // user or "auto"
	AppliedAt   time.Time `gorm:"autoCreateTime"`

	// Revert tracking.
	Reverted   bool       `gorm:"default:false"`
	RevertedBy string     `gorm:"type:varchar(100)"`
	RevertedAt *time.Time

	// Relationship.
	Run ConversionRun `gorm:"foreignKey:RunID"`
}

// Session tracks a complete CLI invocation across one or more files.
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(20)"`
	StartedAt time.Time `gorm:"autoCreateTime"`
	EndedAt   *time.Time

	// Statistics.
	RunsCount    int `gorm:"default:0"`
	CommitsCount int `gorm:"default:0"`

	// Client info (CLI flags, working directory, etc.)
	ClientInfo datatypes.JSON `gorm:"type:jsonb"`
}

// TableName customizations for cleaner names.
func (ConversionRun) TableName() string { return "conversion_runs" }
func (Commit) TableName() string        { return "commits" }
func (Session) TableName() string       { return "sessions" }
