package docxdiff

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Errorf("default options must validate: %v", err)
	}
	if opts.Granularity != GranularityWord {
		t.Errorf("expected word granularity default, got %s", opts.Granularity)
	}
	if opts.ExistingTrackedRevisions != TrackedRevisionsIgnore {
		t.Errorf("expected ignore policy default, got %s", opts.ExistingTrackedRevisions)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			modify:  func(o *Options) {},
			wantErr: false,
		},
		{
			name:    "char granularity valid",
			modify:  func(o *Options) { o.Granularity = GranularityChar },
			wantErr: false,
		},
		{
			name:    "unknown granularity",
			modify:  func(o *Options) { o.Granularity = "sentence" },
			wantErr: true,
		},
		{
			name:    "unknown policy",
			modify:  func(o *Options) { o.ExistingTrackedRevisions = "warn" },
			wantErr: true,
		},
		{
			name:    "zero entry limit",
			modify:  func(o *Options) { o.Limits.MaxEntries = 0 },
			wantErr: true,
		},
		{
			name:    "negative size limit",
			modify:  func(o *Options) { o.Limits.MaxTotalUnzippedBytes = -1 },
			wantErr: true,
		},
		{
			name:    "zero token cap",
			modify:  func(o *Options) { o.Limits.MaxTokensPerParagraph = 0 },
			wantErr: true,
		},
		{
			name:    "bad log level",
			modify:  func(o *Options) { o.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "off log level valid",
			modify:  func(o *Options) { o.LogLevel = "off" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(opts)
			err := opts.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewOptionsWithDefaults(t *testing.T) {
	t.Run("nil gets defaults", func(t *testing.T) {
		opts := NewOptionsWithDefaults(nil)
		if err := opts.Validate(); err != nil {
			t.Errorf("expected valid options, got %v", err)
		}
	})

	t.Run("set fields survive", func(t *testing.T) {
		opts := NewOptionsWithDefaults(&Options{
			Granularity:            GranularityChar,
			SuppressWhitespaceOnly: true,
		})
		if opts.Granularity != GranularityChar {
			t.Errorf("expected char granularity, got %s", opts.Granularity)
		}
		if !opts.SuppressWhitespaceOnly {
			t.Error("expected whitespace suppression to survive")
		}
		if opts.Limits.MaxEntries != DefaultLimits().MaxEntries {
			t.Errorf("expected default entry limit, got %d", opts.Limits.MaxEntries)
		}
	})

	t.Run("does not mutate overrides", func(t *testing.T) {
		overrides := &Options{}
		_ = NewOptionsWithDefaults(overrides)
		if overrides.Granularity != "" {
			t.Error("expected overrides to stay untouched")
		}
	})
}

func TestOptionsFromEnvironment(t *testing.T) {
	t.Setenv("DOCXDIFF_GRANULARITY", "char")
	t.Setenv("DOCXDIFF_MAX_ENTRIES", "7")
	t.Setenv("DOCXDIFF_MAX_TOKENS_PER_PARAGRAPH", "123")
	t.Setenv("DOCXDIFF_SUPPRESS_WHITESPACE_ONLY", "yes")

	opts := OptionsFromEnvironment()
	if opts.Granularity != GranularityChar {
		t.Errorf("expected char granularity, got %s", opts.Granularity)
	}
	if opts.Limits.MaxEntries != 7 {
		t.Errorf("expected 7 entries, got %d", opts.Limits.MaxEntries)
	}
	if opts.Limits.MaxTokensPerParagraph != 123 {
		t.Errorf("expected 123 tokens, got %d", opts.Limits.MaxTokensPerParagraph)
	}
	if !opts.SuppressWhitespaceOnly {
		t.Error("expected whitespace suppression on")
	}
}

func TestOptionsFromEnvironmentIgnoresInvalid(t *testing.T) {
	t.Setenv("DOCXDIFF_GRANULARITY", "sentence")
	t.Setenv("DOCXDIFF_MAX_ENTRIES", "not-a-number")

	opts := OptionsFromEnvironment()
	if opts.Granularity != GranularityWord {
		t.Errorf("invalid granularity must fall back to default, got %s", opts.Granularity)
	}
	if opts.Limits.MaxEntries != DefaultLimits().MaxEntries {
		t.Errorf("invalid entry count must fall back to default, got %d", opts.Limits.MaxEntries)
	}
}
