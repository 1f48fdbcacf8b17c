package docxdiff

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Granularity selects the unit of comparison used by the token differ.
type Granularity string

const (
	// GranularityWord splits paragraph text on whitespace boundaries,
	// keeping the whitespace as its own tokens.
	GranularityWord Granularity = "word"
	// GranularityChar yields one token per character.
	GranularityChar Granularity = "char"
)

// TrackedRevisionsPolicy controls what the engine does when the revised
// input already contains tracked-change markup.
type TrackedRevisionsPolicy string

const (
	// TrackedRevisionsIgnore strips pre-existing markup and diffs the
	// recovered clean text.
	TrackedRevisionsIgnore TrackedRevisionsPolicy = "ignore"
	// TrackedRevisionsFail aborts the invocation instead.
	TrackedRevisionsFail TrackedRevisionsPolicy = "fail"
)

// ResourceLimits declares the caps enforced on input packages and on
// per-paragraph tokenization.
type ResourceLimits struct {
	// MaxTotalUnzippedBytes bounds the aggregate decompressed size of a
	// package. The archive gateway checks 2x this value against the sum of
	// compressed entry sizes before inflating anything.
	MaxTotalUnzippedBytes int64 `yaml:"maxTotalUnzippedBytes"`
	// MaxEntries bounds the number of entries in a package.
	MaxEntries int `yaml:"maxEntries"`
	// MaxEntrySize bounds the decompressed size of a single entry.
	MaxEntrySize int64 `yaml:"maxEntrySize"`
	// MaxTokensPerParagraph bounds the token count the differ will align.
	// A paragraph pair over the cap is diffed as one opaque replace-or-keep
	// unit instead of token by token.
	MaxTokensPerParagraph int `yaml:"maxTokensPerParagraph"`
}

// Options contains all configuration options for a diff invocation
type Options struct {
	// Granularity is the token unit for the sequence differ (word or char)
	Granularity Granularity `yaml:"granularity"`
	// SuppressWhitespaceOnly emits a paragraph unchanged when base and
	// revised text differ only in surrounding whitespace
	SuppressWhitespaceOnly bool `yaml:"suppressWhitespaceOnly"`
	// IncludeLists compares numbered paragraphs like any other; when false
	// they keep their position but pass through undiffed
	IncludeLists bool `yaml:"includeLists"`
	// IncludeTables extends paragraph collection into table cells
	IncludeTables bool `yaml:"includeTables"`
	// IncludeTextBoxes extends paragraph collection into text box content
	IncludeTextBoxes bool `yaml:"includeTextBoxes"`
	// IncludeHeadersFooters is accepted but unsupported by the minimal
	// output package; setting it records a warning
	IncludeHeadersFooters bool `yaml:"includeHeadersFooters"`
	// ExistingTrackedRevisions controls handling of revised input that
	// already carries tracked changes (ignore or fail)
	ExistingTrackedRevisions TrackedRevisionsPolicy `yaml:"existingTrackedRevisions"`
	// Limits are the resource caps applied to both input packages
	Limits ResourceLimits `yaml:"limits"`
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"logLevel"`
}

var (
	globalOptions      *Options
	globalOptionsMutex sync.RWMutex
	optionsOnce        sync.Once
)

func init() {
	// Initialize global options from environment on first use
	optionsOnce.Do(func() {
		globalOptions = OptionsFromEnvironment()
	})
}

// DefaultLimits returns the default resource limits
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxTotalUnzippedBytes: 100 << 20,
		MaxEntries:            2048,
		MaxEntrySize:          50 << 20,
		MaxTokensPerParagraph: 10000,
	}
}

// DefaultOptions returns the default configuration
func DefaultOptions() *Options {
	return &Options{
		Granularity:              GranularityWord,
		SuppressWhitespaceOnly:   false,
		IncludeLists:             true,
		IncludeTables:            false,
		IncludeTextBoxes:         false,
		IncludeHeadersFooters:    false,
		ExistingTrackedRevisions: TrackedRevisionsIgnore,
		Limits:                   DefaultLimits(),
		LogLevel:                 "info",
	}
}

// OptionsFromEnvironment creates a configuration from environment variables
func OptionsFromEnvironment() *Options {
	opts := DefaultOptions()

	// DOCXDIFF_GRANULARITY
	if val := os.Getenv("DOCXDIFF_GRANULARITY"); val == string(GranularityChar) || val == string(GranularityWord) {
		opts.Granularity = Granularity(val)
	}

	// DOCXDIFF_LOG_LEVEL
	if val := os.Getenv("DOCXDIFF_LOG_LEVEL"); val != "" {
		opts.LogLevel = val
	}

	// DOCXDIFF_MAX_ENTRIES
	if val := os.Getenv("DOCXDIFF_MAX_ENTRIES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			opts.Limits.MaxEntries = n
		}
	}

	// DOCXDIFF_MAX_UNZIPPED_BYTES
	if val := os.Getenv("DOCXDIFF_MAX_UNZIPPED_BYTES"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			opts.Limits.MaxTotalUnzippedBytes = n
		}
	}

	// DOCXDIFF_MAX_ENTRY_SIZE
	if val := os.Getenv("DOCXDIFF_MAX_ENTRY_SIZE"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			opts.Limits.MaxEntrySize = n
		}
	}

	// DOCXDIFF_MAX_TOKENS_PER_PARAGRAPH
	if val := os.Getenv("DOCXDIFF_MAX_TOKENS_PER_PARAGRAPH"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			opts.Limits.MaxTokensPerParagraph = n
		}
	}

	// DOCXDIFF_SUPPRESS_WHITESPACE_ONLY
	if val := os.Getenv("DOCXDIFF_SUPPRESS_WHITESPACE_ONLY"); val != "" {
		opts.SuppressWhitespaceOnly = parseBool(val)
	}

	return opts
}

// NewOptionsWithDefaults creates a new configuration with defaults applied to unset fields
func NewOptionsWithDefaults(overrides *Options) *Options {
	defaults := DefaultOptions()

	if overrides == nil {
		return defaults
	}

	// Create a copy of the overrides
	opts := *overrides

	if opts.Granularity == "" {
		opts.Granularity = defaults.Granularity
	}
	if opts.ExistingTrackedRevisions == "" {
		opts.ExistingTrackedRevisions = defaults.ExistingTrackedRevisions
	}
	if opts.LogLevel == "" {
		opts.LogLevel = defaults.LogLevel
	}
	if opts.Limits.MaxTotalUnzippedBytes == 0 {
		opts.Limits.MaxTotalUnzippedBytes = defaults.Limits.MaxTotalUnzippedBytes
	}
	if opts.Limits.MaxEntries == 0 {
		opts.Limits.MaxEntries = defaults.Limits.MaxEntries
	}
	if opts.Limits.MaxEntrySize == 0 {
		opts.Limits.MaxEntrySize = defaults.Limits.MaxEntrySize
	}
	if opts.Limits.MaxTokensPerParagraph == 0 {
		opts.Limits.MaxTokensPerParagraph = defaults.Limits.MaxTokensPerParagraph
	}

	return &opts
}

// Validate checks if the configuration is valid
func (o *Options) Validate() error {
	if o.Granularity != GranularityWord && o.Granularity != GranularityChar {
		return errors.New("invalid granularity: " + string(o.Granularity))
	}

	if o.ExistingTrackedRevisions != TrackedRevisionsIgnore && o.ExistingTrackedRevisions != TrackedRevisionsFail {
		return errors.New("invalid existing tracked revisions policy: " + string(o.ExistingTrackedRevisions))
	}

	if o.Limits.MaxTotalUnzippedBytes <= 0 {
		return errors.New("max total unzipped bytes must be positive")
	}

	if o.Limits.MaxEntries <= 0 {
		return errors.New("max entries must be positive")
	}

	if o.Limits.MaxEntrySize <= 0 {
		return errors.New("max entry size must be positive")
	}

	if o.Limits.MaxTokensPerParagraph <= 0 {
		return errors.New("max tokens per paragraph must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[o.LogLevel] {
		return errors.New("invalid log level: " + o.LogLevel)
	}

	return nil
}

// GetGlobalOptions returns the global configuration
func GetGlobalOptions() *Options {
	globalOptionsMutex.RLock()
	defer globalOptionsMutex.RUnlock()

	if globalOptions == nil {
		return DefaultOptions()
	}

	// Return a copy to prevent modification
	optsCopy := *globalOptions
	return &optsCopy
}

// SetGlobalOptions sets the global configuration
func SetGlobalOptions(opts *Options) {
	globalOptionsMutex.Lock()
	globalOptions = opts
	globalOptionsMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromOptions()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
