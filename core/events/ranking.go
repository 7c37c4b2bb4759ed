package events

// GroupRankedEvent is published after a category has been ranked.
type GroupRankedEvent struct {
	Category  string
	Optimiser string
	Order     []string
	Err       error
}
