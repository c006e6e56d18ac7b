// Package transcript persists the assembled transcript as a TSV file.
package transcript

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/vodscribe/vodscribe/internal/timeline"
)

// ErrOutputExists reports that a transcript for this input already exists.
// The pipeline refuses to silently recompute or overwrite; the caller must
// remove the old file first.
var ErrOutputExists = errors.New("output already exists")

// CheckNotExists fails with ErrOutputExists when path is already present.
// Used before any expensive work so a re-run fails fast.
func CheckNotExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

// WriteTSV writes records as two tab-separated UTF-8 columns with a header
// row, one record per line in the order given. Creation is exclusive, so a
// file that appeared since the precondition check still fails rather than
// being clobbered.
func WriteTSV(path string, records []timeline.Record) error {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	w.Comma = '\t'

	if err := w.Write([]string{"time", "text"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write([]string{r.Time, r.Text}); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return fh.Close()
}
