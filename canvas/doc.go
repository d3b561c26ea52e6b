// Package canvas holds the outfit composition model: a bounded surface that
// owns placed garment items, the drag state machine that moves them, and the
// handoff that turns a picker drag into a drop on the surface.
//
// Nothing in this package is safe for concurrent use. Callers serialize all
// events for one surface, the way a UI event loop would.
package canvas
