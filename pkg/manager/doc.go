// Package manager builds per-category lifecycle managers on top of the
// object engine, plus the Table composition root that owns one manager per
// category.
//
// Managers own the identities they create: they cache keys for lookup and
// remove every remaining object on teardown. They hold no other hardware
// state; anything else is re-read through the engine. Per-category business
// logic lives above this layer.
package manager
