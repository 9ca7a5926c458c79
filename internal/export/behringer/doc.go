// Package behringer exports canonical sessions as X32/M32 scene files.
//
// The scene dialect is a text file: a fixed magic/version header followed
// by address-keyed lines of positional tokens. Every hardware slot the
// desk owns (32 channels, 8 aux-ins, 16 mix buses, 6 matrices, the stereo
// and mono mains, 8 DCAs, 8 effect slots) is written on every export, with
// fully-specified default records for slots the session leaves
// unconfigured, so the output is always complete and diffable.
//
// This family can represent nearly the whole canonical model; the bundled
// README and reference tables exist to aid manual verification, not to
// carry settings the file cannot.
package behringer
