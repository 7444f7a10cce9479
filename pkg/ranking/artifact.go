package ranking

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/depscout/depscout/pkg/errors"
)

var artifactHeader = []string{"package_name", "dependent_count"}

// WriteArtifact writes ranks as a two-column CSV with a header row.
// An empty ranking produces a header-only file.
func WriteArtifact(w io.Writer, ranks []PackageRank) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(artifactHeader); err != nil {
		return err
	}
	for _, r := range ranks {
		if err := cw.Write([]string{r.Name, strconv.Itoa(r.Dependents)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteArtifactFile writes the ranking artifact to path, overwriting any
// existing file. The artifact is write-once: nothing appends to it later.
func WriteArtifactFile(path string, ranks []PackageRank) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create ranking artifact %s", path)
	}
	defer f.Close()
	return WriteArtifact(f, ranks)
}

// ReadArtifact parses and validates a ranking artifact. The header row is
// required; a header-only file yields an empty, valid ranking. Rows must
// honor the ranking invariants (see [Validate]) or the artifact is
// rejected as corrupt.
func ReadArtifact(r io.Reader) ([]PackageRank, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidArtifact, "ranking artifact is empty (missing header)")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArtifact, err, "read ranking header")
	}
	if header[0] != artifactHeader[0] || header[1] != artifactHeader[1] {
		return nil, errors.New(errors.ErrCodeInvalidArtifact,
			"unexpected header %q, want %q", header, artifactHeader)
	}

	var ranks []PackageRank
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArtifact, err, "read ranking line %d", line)
		}
		count, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArtifact, err,
				"line %d: dependent count %q is not an integer", line, record[1])
		}
		ranks = append(ranks, PackageRank{Name: record[0], Dependents: count})
	}

	if err := Validate(ranks); err != nil {
		return nil, err
	}
	return ranks, nil
}

// ReadArtifactFile reads and validates the ranking artifact at path.
func ReadArtifactFile(path string) ([]PackageRank, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "ranking artifact %s does not exist (run 'depscout rank' first)", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open ranking artifact %s", path)
	}
	defer f.Close()
	return ReadArtifact(f)
}
