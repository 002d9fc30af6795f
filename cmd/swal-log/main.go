// Command swal-log is a tool for viewing and analyzing hardware trace files.
//
// Trace files are created by swal-agent with the -trace flag (or the
// trace.file config key) and hold one CBOR-encoded event per adapter call.
//
// Usage:
//
//	swal-log <command> [flags] <file.swlog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSONL or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	swal-log view agent.swlog
//
//	# View only port operations
//	swal-log view --object port agent.swlog
//
//	# View only failed calls
//	swal-log view --errors-only agent.swlog
//
//	# Keep only stats reads, write to a new file
//	swal-log filter --op get-stats -o stats.swlog agent.swlog
//
//	# Show statistics
//	swal-log stats agent.swlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/swal-project/swal-go/cmd/swal-log/commands"
	"github.com/swal-project/swal-go/pkg/oplog"
)

const usage = `swal-log - SWAL Hardware Trace Analyzer

Usage:
  swal-log <command> [flags] <file.swlog>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSONL or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "swal-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// parseFilterFlags parses the filter criteria shared by view and filter.
func parseFilterFlags(fs *flag.FlagSet) (object, op *string, errorsOnly *bool) {
	object = fs.String("object", "", "Filter by object category (port, bridge, vlan, queue, route, neighbor, switch)")
	op = fs.String("op", "", "Filter by operation (create, remove, get, set, get-stats)")
	errorsOnly = fs.Bool("errors-only", false, "Keep only events with a non-success status")
	return object, op, errorsOnly
}

func buildFilter(object, op string, errorsOnly bool) (oplog.Filter, error) {
	var filter oplog.Filter
	filter.ErrorsOnly = errorsOnly

	if object != "" {
		t, err := commands.ParseObjectFlag(object)
		if err != nil {
			return oplog.Filter{}, err
		}
		filter.Object = &t
	}
	if op != "" {
		o, err := commands.ParseOpFlag(op)
		if err != nil {
			return oplog.Filter{}, err
		}
		filter.Op = &o
	}
	return filter, nil
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `swal-log view - View trace file in human-readable format

Usage:
  swal-log view [flags] <file.swlog>

Flags:
`)
		fs.PrintDefaults()
	}

	object, op, errorsOnly := parseFilterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := buildFilter(*object, *op, *errorsOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `swal-log filter - Filter trace file and write to new file

Usage:
  swal-log filter [flags] -o <out.swlog> <file.swlog>

Flags:
`)
		fs.PrintDefaults()
	}

	object, op, errorsOnly := parseFilterFlags(fs)
	output := fs.String("o", "", "Output file path (required)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 || *output == "" {
		fmt.Fprintln(os.Stderr, "Error: trace file path and -o output required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := buildFilter(*object, *op, *errorsOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	n, err := commands.RunFilter(fs.Arg(0), *output, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `swal-log stats - Show statistics about the trace file

Usage:
  swal-log stats <file.swlog>
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `swal-log export - Export trace file to JSONL or CSV format

Usage:
  swal-log export [flags] <file.swlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format: jsonl or csv")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), *format, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
