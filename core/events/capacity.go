package events

// CapacityCappedEvent is published when capacity above the nominal cap was
// removed. Clamped is true when at least one asset was driven to zero.
type CapacityCappedEvent struct {
	Strategy   string
	Exceedance float64
	Removed    float64
	Clamped    bool
}
