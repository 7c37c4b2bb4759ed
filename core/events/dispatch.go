package events

// AssetDispatchedEvent is published for each asset logged during a pass.
// LevelizedCost is NaN when the asset delivered no energy.
type AssetDispatchedEvent struct {
	RunID         string
	Category      string
	Asset         string
	Position      int
	Energy        float64
	AnnualCost    float64
	LevelizedCost float64
}
