// Package picking contains the delivery picking aggregate and its return
// counterpart.
//
// A Picking is an inventory delivery unit derived from a confirmed order's
// lines. It owns its Moves (requested product quantities), and each Move owns
// MoveLines that carry the quantity actually moved. A picking walks
// draft → confirmed → waiting|assigned → assigned → done, driven from outside
// by the fulfillment workflow; a shortage parks it in waiting until stock can
// be reserved.
//
// A ReturnPicking is a sibling artifact created on demand from a completed
// picking when part of the delivered quantity must come back. It references
// the originating picking and its moves, but is not owned by it.
package picking
