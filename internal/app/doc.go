// Package app wires settings, storage, capture, session and export into
// the single object both front ends run on.
package app
