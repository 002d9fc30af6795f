// Package hal defines the contract between the switch agent and a vendor
// hardware adapter: status codes, object categories, attribute id/value
// pairs, object identities, and the Adapter interface every backend must
// implement.
//
// The package mirrors the shape of the C hardware abstraction interface it
// wraps: weakly typed handles, flat attribute arrays, and a status code per
// call. Everything here is a plain value type with no behavior beyond
// formatting; the typed, generic surface lives in package object.
package hal
