// Package console defines the canonical, console-agnostic model of a live
// mixing session: channels, buses, DCA groups, effects, scenes, and the
// stagebox/routing topology feeding them.
//
// The model is a versioned document. Two schema versions are in circulation
// ("1.0" and "2.0"); version 2.0 adds advisory notes and additional stored
// scenes. Loaders in this package accept both shapes and default absent
// optional sub-objects instead of failing.
//
// Export adapters only ever read a session. Mutation happens field-by-field
// while a session is being populated; once handed to an adapter the document
// is treated as immutable.
package console
