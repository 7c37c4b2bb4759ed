// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - GroupRankedEvent: a category was ranked by the optimiser
//   - AssetDispatchedEvent: one asset was dispatched and logged
//   - CapacityCappedEvent: the capacity capper removed capacity
package events
