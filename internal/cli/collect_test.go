package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/depscout/depscout/pkg/errors"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    int
		wantErr bool
	}{
		{name: "valid", arg: "1000", want: 1000},
		{name: "one", arg: "1", want: 1},
		{name: "zero", arg: "0", wantErr: true},
		{name: "negative", arg: "-5", wantErr: true},
		{name: "not a number", arg: "ten", wantErr: true},
		{name: "float", arg: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCount(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseCount(%q) expected error, got %d", tt.arg, got)
				}
				if !errors.Is(err, errors.ErrCodeInvalidCount) {
					t.Errorf("parseCount(%q) error code = %v, want INVALID_COUNT", tt.arg, errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCount(%q) unexpected error: %v", tt.arg, err)
			}
			if got != tt.want {
				t.Errorf("parseCount(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}

func TestRunCollectMissingAPIKey(t *testing.T) {
	t.Setenv(apiKeyEnv, "")

	c := New(&bytes.Buffer{}, LogInfo)
	err := c.runCollect(context.Background(), 10, collectOpts{workers: 1})

	if err == nil {
		t.Fatal("runCollect should fail without an API key")
	}
	if !errors.Is(err, errors.ErrCodeMissingCredential) {
		t.Errorf("error code = %v, want MISSING_CREDENTIAL", errors.GetCode(err))
	}
}

func TestRunCollectMissingRanking(t *testing.T) {
	t.Setenv(apiKeyEnv, "test-key")

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = filepath.Join(t.TempDir(), "absent.toml")

	err := c.runCollect(context.Background(), 10, collectOpts{
		workers: 1,
		ranking: filepath.Join(t.TempDir(), "missing.csv"),
	})

	if err == nil {
		t.Fatal("runCollect should fail when the ranking artifact is missing")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
