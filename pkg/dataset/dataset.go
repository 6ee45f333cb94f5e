package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/flighttree/pkg/errors"
)

// CodeColumn is the header of the column holding flight codes.
const CodeColumn = "Kode"

// Dataset is an immutable, sorted set of unique flight codes.
type Dataset struct {
	codes []string
}

// New returns a dataset over codes. Entries are trimmed, sorted byte-wise
// and deduplicated. Blank entries and entries that could never be searched
// for (see errors.ValidateCode) are dropped. codes is not modified.
func New(codes []string) *Dataset {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || errors.ValidateCode(c) != nil {
			continue
		}
		out = append(out, c)
	}
	slices.Sort(out)
	return &Dataset{codes: slices.Compact(out)}
}

// Load reads a CSV schedule from r. The header row must contain a Kode
// column; rows shorter than that column or with a blank code are skipped.
// A code that is not a valid search key fails the whole schedule.
func Load(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "schedule is empty, expected a %s column", CodeColumn)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read header")
	}

	col := columnIndex(header, CodeColumn)
	if col < 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "schedule has no %s column", CodeColumn)
	}

	var codes []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read schedule")
		}
		if col >= len(rec) {
			continue
		}
		code := strings.TrimSpace(rec[col])
		if code == "" {
			continue
		}
		if err := errors.ValidateCode(code); err != nil {
			line, _ := cr.FieldPos(col)
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "line %d: invalid %s value", line, CodeColumn)
		}
		codes = append(codes, code)
	}
	return New(codes), nil
}

// LoadFile reads a CSV schedule from path. A missing file yields
// ErrCodeFileNotFound.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file %q not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open %s", path)
	}
	defer f.Close()
	return Load(f)
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Codes returns a copy of all codes in ascending order.
func (d *Dataset) Codes() []string { return slices.Clone(d.codes) }

// Len returns the number of unique codes.
func (d *Dataset) Len() int { return len(d.codes) }

// Prefix returns a copy of the first min(n, Len) codes. A negative n is
// treated as zero.
func (d *Dataset) Prefix(n int) []string {
	n = max(0, min(n, len(d.codes)))
	return slices.Clone(d.codes[:n])
}
