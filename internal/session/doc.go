// Package session ties the child's name, photo and preferences to the
// recording store and capture device.
//
// A Session is the flow the front ends drive: set a name, walk the fixed
// prompts and the letter deck, record and play clips, export, and reset.
// Everything it keeps is persisted through the same kv.Adapter as the
// recordings, so a Reset clears all of it at once.
package session
