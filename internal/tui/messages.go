package tui

// recomputeMsg fires when the debounce window of an input change closes.
// Only the message carrying the latest generation is acted on.
type recomputeMsg struct {
	generation int
}
