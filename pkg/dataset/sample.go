package dataset

import (
	"os"

	"github.com/matzehuels/flighttree/pkg/errors"
)

// DefaultSamplePath is the bundled example schedule, relative to the
// working directory.
const DefaultSamplePath = "examples/Jadwal_Penerbangan.csv"

// SampleName is the file name offered when the sample is downloaded.
const SampleName = "Jadwal_Penerbangan.csv"

// ReadSample returns the raw bytes of the sample schedule at path, or
// DefaultSamplePath when path is empty. A missing file yields
// ErrCodeFileNotFound, which callers report as a warning and carry on.
func ReadSample(path string) ([]byte, error) {
	if path == "" {
		path = DefaultSamplePath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "sample file %q not found", SampleName)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read sample")
	}
	return data, nil
}

// Sample loads the sample schedule at path (DefaultSamplePath when empty).
func Sample(path string) (*Dataset, error) {
	if path == "" {
		path = DefaultSamplePath
	}
	return LoadFile(path)
}
