package core

// RuntimeConfig contains configuration passed to the sandbox at initialization.
// Front-ends use this to size the grid and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (or pixels for the GUI)
	ScreenH  int   // Screen height in characters (or pixels for the GUI)
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic simulation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}
