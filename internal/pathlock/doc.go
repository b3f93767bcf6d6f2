// Package pathlock serializes work on individual filesystem paths.
//
// A Registry hands out one lock per absolute, cleaned path. Acquisitions wait
// up to a bounded timeout and honour context cancellation. Entries are
// reference counted while held or awaited; idle entries are kept in an LRU so
// the registry cannot grow without bound over a long-running process.
package pathlock
