// Package yamaha exports canonical sessions into the CL/QL CSV dialect.
//
// The dialect is strictly tabular: one independent comma-delimited table
// per concern (channel names, input patch, output patch, Dante rack patch,
// bus/matrix/DCA/stereo-in/master names), each prefixed by a fixed
// two-line [Information] header. Only names, colors, icons, and patching
// are machine-readable; EQ, dynamics, gain, fader, and effect settings
// cannot be expressed in the format at all.
//
// The guidance documents generated alongside the tables are therefore
// part of the export contract, not decoration: every canonical setting
// the tables cannot carry must appear in at least one of them.
package yamaha
