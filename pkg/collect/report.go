package collect

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/depscout/depscout/pkg/errors"
)

// Artifact file names within the output directory.
const (
	MetadataFile = "npm_metadata.json"
	FailureFile  = "npm_metadata_failures.csv"
)

// WriteMetadata encodes the report as indented JSON.
func WriteMetadata(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteFailures writes the failure log as a two-column CSV. The file is
// always written, header included, so an empty log is distinguishable
// from a log that was never produced.
func WriteFailures(w io.Writer, failures []Failure) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"package_name", "error_kind"}); err != nil {
		return err
	}
	for _, f := range failures {
		if err := cw.Write([]string{f.Name, string(f.Kind)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteArtifacts persists the metadata artifact and the failure log under
// dir, creating it if needed. Both files are written whole; an inability
// to write either is a process-level error.
func WriteArtifacts(dir string, report *Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
	}

	metaPath := filepath.Join(dir, MetadataFile)
	mf, err := os.Create(metaPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create metadata artifact %s", metaPath)
	}
	defer mf.Close()
	if err := WriteMetadata(mf, report); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write metadata artifact %s", metaPath)
	}

	failPath := filepath.Join(dir, FailureFile)
	ff, err := os.Create(failPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create failure log %s", failPath)
	}
	defer ff.Close()
	if err := WriteFailures(ff, report.Failures); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write failure log %s", failPath)
	}
	return nil
}
