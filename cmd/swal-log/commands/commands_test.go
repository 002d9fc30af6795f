package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// writeTrace writes a small mixed trace and returns its path.
func writeTrace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.swlog")

	logger, err := oplog.NewFileLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []oplog.Event{
		{
			Timestamp: base,
			AgentID:   "run-1",
			Object:    hal.ObjectTypePort,
			Op:        oplog.OpCreate,
			Key:       "oid:0x1001",
			Status:    hal.StatusSuccess,
			Attrs:     []oplog.AttrDump{{ID: uint32(hal.PortAttrSpeed), Value: "100000"}},
			Duration:  80 * time.Microsecond,
		},
		{
			Timestamp: base.Add(time.Second),
			AgentID:   "run-1",
			Object:    hal.ObjectTypePort,
			Op:        oplog.OpGet,
			Key:       "oid:0x1001",
			Status:    hal.StatusSuccess,
			Duration:  150 * time.Microsecond,
			Retried:   true,
		},
		{
			Timestamp: base.Add(2 * time.Second),
			AgentID:   "run-1",
			Object:    hal.ObjectTypeRoute,
			Op:        oplog.OpCreate,
			Key:       "route:10.0.0.0/8",
			Status:    hal.StatusTableFull,
			Duration:  40 * time.Microsecond,
		},
	}
	for _, e := range events {
		logger.Log(e)
	}
	return path
}

func TestParseObjectFlag(t *testing.T) {
	typ, err := ParseObjectFlag("port")
	if err != nil || typ != hal.ObjectTypePort {
		t.Errorf("port = %v, %v", typ, err)
	}
	typ, err = ParseObjectFlag("Route")
	if err != nil || typ != hal.ObjectTypeRoute {
		t.Errorf("Route = %v, %v", typ, err)
	}
	if _, err := ParseObjectFlag("flux-capacitor"); err == nil {
		t.Error("unknown category must error")
	}
}

func TestParseOpFlag(t *testing.T) {
	op, err := ParseOpFlag("create")
	if err != nil || op != oplog.OpCreate {
		t.Errorf("create = %v, %v", op, err)
	}
	op, err = ParseOpFlag("stats")
	if err != nil || op != oplog.OpGetStats {
		t.Errorf("stats = %v, %v", op, err)
	}
	if _, err := ParseOpFlag("frobnicate"); err == nil {
		t.Error("unknown op must error")
	}
}

func TestRunView(t *testing.T) {
	path := writeTrace(t)

	var buf bytes.Buffer
	if err := RunView(path, oplog.Filter{}, &buf); err != nil {
		t.Fatalf("view: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"oid:0x1001", "route:10.0.0.0/8", "TABLE_FULL", "(retried)", "attr"} {
		if !strings.Contains(out, want) {
			t.Errorf("view output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	obj := hal.ObjectTypeRoute
	if err := RunView(path, oplog.Filter{Object: &obj}, &buf); err != nil {
		t.Fatalf("filtered view: %v", err)
	}
	if strings.Contains(buf.String(), "oid:0x1001") {
		t.Error("filtered view leaked port events")
	}
}

func TestRunFilter(t *testing.T) {
	path := writeTrace(t)
	output := filepath.Join(t.TempDir(), "errors.swlog")

	count, err := RunFilter(path, output, oplog.Filter{ErrorsOnly: true})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if count != 1 {
		t.Fatalf("filtered count = %d, want 1", count)
	}

	// The output is a valid trace file in its own right.
	reader, err := oplog.NewReader(output)
	if err != nil {
		t.Fatalf("open filtered output: %v", err)
	}
	defer reader.Close()
	event, err := reader.Next()
	if err != nil {
		t.Fatalf("read filtered output: %v", err)
	}
	if event.Status != hal.StatusTableFull {
		t.Errorf("filtered status = %s", event.Status)
	}
}

func TestRunStats(t *testing.T) {
	path := writeTrace(t)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("stats: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Events:      3", "Errors:      1", "Retries:     1", "CREATE", "port", "TABLE_FULL"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestRunExportJSONL(t *testing.T) {
	path := writeTrace(t)

	var buf bytes.Buffer
	if err := RunExport(path, "jsonl", &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3", len(lines))
	}

	var first exportEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if first.Object != "port" || first.Op != "CREATE" || first.Code != 0 {
		t.Errorf("first = %+v", first)
	}
	if len(first.Attrs) != 1 {
		t.Errorf("attrs = %v", first.Attrs)
	}
}

func TestRunExportCSV(t *testing.T) {
	path := writeTrace(t)

	var buf bytes.Buffer
	if err := RunExport(path, "csv", &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "timestamp,agent_id,object,op,key,status,code") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[3], "TABLE_FULL") || !strings.Contains(lines[3], "-10") {
		t.Errorf("error row = %q", lines[3])
	}
}

func TestRunExportUnknownFormat(t *testing.T) {
	if err := RunExport(writeTrace(t), "xml", &bytes.Buffer{}); err == nil {
		t.Error("unknown format must error")
	}
}
