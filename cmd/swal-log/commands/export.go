package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/swal-project/swal-go/pkg/oplog"
)

// RunExport writes the trace file to w in the given format: "jsonl" (one
// JSON object per line) or "csv".
func RunExport(path, format string, w io.Writer) error {
	switch format {
	case "jsonl":
		return exportJSONL(path, w)
	case "csv":
		return exportCSV(path, w)
	default:
		return fmt.Errorf("unknown format %q (want jsonl or csv)", format)
	}
}

// exportEvent is the JSON shape of one trace event.
type exportEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	AgentID   string            `json:"agent_id,omitempty"`
	Object    string            `json:"object"`
	Op        string            `json:"op"`
	Key       string            `json:"key,omitempty"`
	Status    string            `json:"status"`
	Code      int32             `json:"code"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	Duration  string            `json:"duration,omitempty"`
	Retried   bool              `json:"retried,omitempty"`
}

func toExportEvent(event oplog.Event) exportEvent {
	out := exportEvent{
		Timestamp: event.Timestamp,
		AgentID:   event.AgentID,
		Object:    event.Object.String(),
		Op:        event.Op.String(),
		Key:       event.Key,
		Status:    event.Status.String(),
		Code:      int32(event.Status),
		Retried:   event.Retried,
	}
	if event.Duration > 0 {
		out.Duration = event.Duration.String()
	}
	if len(event.Attrs) > 0 {
		out.Attrs = make(map[string]string, len(event.Attrs))
		for _, a := range event.Attrs {
			out.Attrs[strconv.FormatUint(uint64(a.ID), 10)] = a.Value
		}
	}
	return out
}

func exportJSONL(path string, w io.Writer) error {
	reader, err := oplog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toExportEvent(event)); err != nil {
			return err
		}
	}
}

func exportCSV(path string, w io.Writer) error {
	reader, err := oplog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "agent_id", "object", "op", "key", "status", "code", "duration_ns", "retried"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		row := []string{
			event.Timestamp.UTC().Format(time.RFC3339Nano),
			event.AgentID,
			event.Object.String(),
			event.Op.String(),
			event.Key,
			event.Status.String(),
			strconv.FormatInt(int64(event.Status), 10),
			strconv.FormatInt(event.Duration.Nanoseconds(), 10),
			strconv.FormatBool(event.Retried),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
}
