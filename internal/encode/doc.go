// Package encode holds the small pure lookup and formatting functions
// shared by the export adapters: color and icon vocabulary mapping, hard
// name truncation, dB formatting with the negative-infinity sentinel, and
// zero-padded slot numbers.
//
// Everything here is stateless and total: unknown inputs map to documented
// defaults (white, the blank icon) instead of failing.
package encode
