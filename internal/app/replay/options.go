package replay

// Options represents configuration options for the Engine.
type Options struct {
	// OpeningTime is the transact time of the market open, e.g. 93000000 for 09:30:00.000.
	OpeningTime int64
	// LookaheadTolerance is the largest transact time gap between an order and
	// a fill naming it for the order to count as executing on arrival.
	LookaheadTolerance int64
	TopDepth           int
	BottomDepth        int
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		OpeningTime:        93000000,
		LookaheadTolerance: 1000,
		TopDepth:           5,
		BottomDepth:        5,
	}
}
