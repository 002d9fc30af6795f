package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents    int
	EventsByObject map[hal.ObjectType]int
	EventsByOp     map[oplog.Op]int
	EventsByStatus map[hal.Status]int
	Errors         int
	Retries        int
	TotalDuration  time.Duration
	TimeRange      struct {
		Start time.Time
		End   time.Time
	}
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := oplog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByObject: make(map[hal.ObjectType]int),
		EventsByOp:     make(map[oplog.Op]int),
		EventsByStatus: make(map[hal.Status]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByObject[event.Object]++
		stats.EventsByOp[event.Op]++
		stats.EventsByStatus[event.Status]++
		stats.TotalDuration += event.Duration
		if event.Status.IsError() {
			stats.Errors++
		}
		if event.Retried {
			stats.Retries++
		}
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintf(w, "Events:      %d\n", stats.TotalEvents)
	if stats.TotalEvents == 0 {
		return
	}

	fmt.Fprintf(w, "Errors:      %d\n", stats.Errors)
	fmt.Fprintf(w, "Retries:     %d (buffer-overflow)\n", stats.Retries)
	fmt.Fprintf(w, "Time range:  %s .. %s\n",
		stats.TimeRange.Start.UTC().Format(time.RFC3339Nano),
		stats.TimeRange.End.UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(w, "HW time:     %s total, %s avg\n",
		stats.TotalDuration,
		stats.TotalDuration/time.Duration(stats.TotalEvents))

	fmt.Fprintln(w, "\nBy operation:")
	for _, op := range sortedOpKeys(stats.EventsByOp) {
		fmt.Fprintf(w, "  %-10s %d\n", op, stats.EventsByOp[op])
	}

	fmt.Fprintln(w, "\nBy object:")
	for _, obj := range sortedObjectKeys(stats.EventsByObject) {
		fmt.Fprintf(w, "  %-16s %d\n", obj, stats.EventsByObject[obj])
	}

	fmt.Fprintln(w, "\nBy status:")
	for _, st := range sortedStatusKeys(stats.EventsByStatus) {
		fmt.Fprintf(w, "  %-20s %d\n", st, stats.EventsByStatus[st])
	}
}

func sortedOpKeys(m map[oplog.Op]int) []oplog.Op {
	keys := make([]oplog.Op, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedObjectKeys(m map[hal.ObjectType]int) []hal.ObjectType {
	keys := make([]hal.ObjectType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedStatusKeys(m map[hal.Status]int) []hal.Status {
	keys := make([]hal.Status, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })
	return keys
}
