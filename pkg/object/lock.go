package object

import "sync"

// apiMu serializes every adapter call in the process, across all categories
// and all API instances. The wrapped vendor driver is non-reentrant and
// order-sensitive; do not shard this per category or per object.
//
// Each operation holds the lock for its full duration. A get that hits the
// buffer-overflow retry reissues the call under the same acquisition so no
// other caller can slip between the two round trips.
var apiMu sync.Mutex
