// Package object implements the generic attribute-based object API over a
// hal.Adapter: create, remove, get-attribute, set-attribute, and stats for
// any object category, parameterized by the category's Traits.
//
// The two identity variants are two narrow API types sharing one engine:
// HandleAPI for categories whose identity is an adapter-assigned handle
// (create returns the new hal.ObjectID) and EntryAPI for categories whose
// identity is a caller-supplied entry key (create takes the key, returns
// nothing). Which variant a category uses is fixed when its manager
// instantiates the API.
//
// Gets compose recursively over a closed set of request shapes: Single (one
// attribute, with the one-shot buffer-overflow retry for list values),
// Bundle (an ordered fixed set, fetched in declared order), and Optional
// (substitutes a declared default when the attribute is unset).
//
// Every operation holds the process-wide hardware lock for its full
// duration, including the retry round trip. The wrapped driver is
// non-reentrant; no two adapter calls are ever concurrent.
package object
