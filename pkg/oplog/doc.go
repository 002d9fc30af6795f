// Package oplog records hardware-adapter operations as structured events.
//
// Every call the object engine issues to the adapter produces one Event:
// object category, operation, identity, resulting status, and timing. Events
// are CBOR-encoded with integer keys for compact on-disk traces (.swlog
// files) that cmd/swal-log can view, filter, and export.
//
// Applications choose where events go by implementing Logger or composing
// the provided ones: FileLogger for traces, SlogAdapter for console
// diagnostics, MultiLogger to fan out, NoopLogger to disable.
package oplog
