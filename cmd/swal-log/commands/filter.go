package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/swal-project/swal-go/pkg/oplog"
)

// RunFilter copies events matching the filter into a new trace file and
// returns how many were written.
func RunFilter(path, output string, filter oplog.Filter) (int, error) {
	reader, err := oplog.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	out, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	encoder := oplog.NewEncoder(out)
	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return count, fmt.Errorf("failed to write event: %w", err)
		}
		count++
	}

	return count, nil
}
