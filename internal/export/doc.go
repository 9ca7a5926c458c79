// Package export defines the adapter contract shared by all console
// targets: the capability descriptor, pre-flight validation result, export
// result with its ordered file list, the (manufacturer, model) registry,
// and the structured writers that enforce line order, quoting, and numeric
// formatting for the generated file bodies.
//
// Adapters are pure with respect to their input: Export and Validate read
// the canonical session and allocate only new output values, so a single
// adapter registry can serve concurrent callers without locking once it
// has been built.
package export
