// Package commands implements the swal-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// ParseObjectFlag parses an --object flag value into a category.
func ParseObjectFlag(s string) (hal.ObjectType, error) {
	for t := hal.ObjectTypeSwitch; t <= hal.ObjectTypeFdb; t++ {
		if t.String() == strings.ToLower(s) {
			return t, nil
		}
	}
	return hal.ObjectTypeNone, fmt.Errorf("unknown object category %q", s)
}

// ParseOpFlag parses an --op flag value into an operation.
func ParseOpFlag(s string) (oplog.Op, error) {
	switch strings.ToLower(s) {
	case "create":
		return oplog.OpCreate, nil
	case "remove":
		return oplog.OpRemove, nil
	case "get":
		return oplog.OpGet, nil
	case "set":
		return oplog.OpSet, nil
	case "get-stats", "stats":
		return oplog.OpGetStats, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", s)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event oplog.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	status := event.Status.String()
	if event.Retried {
		status += " (retried)"
	}

	fmt.Fprintf(w, "%s %-9s %-16s %-20s %s\n",
		ts, event.Op, event.Object, status, event.Key)

	for _, a := range event.Attrs {
		fmt.Fprintf(w, "    attr %d = %s\n", a.ID, a.Value)
	}
	if event.Duration > 0 {
		fmt.Fprintf(w, "    took %s\n", event.Duration)
	}
}

// RunView prints matching events in human-readable form.
func RunView(path string, filter oplog.Filter, output io.Writer) error {
	reader, err := oplog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
		count++
	}

	fmt.Fprintf(output, "\n%d events\n", count)
	return nil
}
