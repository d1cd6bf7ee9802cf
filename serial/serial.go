package serial

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Load reads the previously persisted serial number. A missing file is not
// an error and yields zero.
func Load(fs afero.Fs, path string) (uint32, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	txt := strings.TrimSpace(string(data))
	if txt == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(txt, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid serial file %s: %w", path, err)
	}
	return uint32(n), nil
}

// Store persists the serial for the next run.
func Store(fs afero.Fs, path string, serial uint32) error {
	return afero.WriteFile(fs, path, []byte(strconv.FormatUint(uint64(serial), 10)+"\n"), 0o644)
}

// Next computes the serial for this run: the date based YYYYMMDD00 form, or
// previous+1 when that is already ahead of today. The result is strictly
// greater than the previous serial, saturating once the 32 bit space is
// exhausted so the increment can never wrap back to zero.
func Next(now time.Time, previous uint32) uint32 {
	if previous == math.MaxUint32 {
		return previous
	}
	date := uint32(now.Year())*1000000 + uint32(now.Month())*10000 + uint32(now.Day())*100
	if previous+1 > date {
		return previous + 1
	}
	return date
}
