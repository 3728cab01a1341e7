// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"CHIP-8 program file to run"`
}

// Flags contains behavior options.
type Flags struct {
	Debug bool `flag:"debug" usage:"enable debug logging"`
	Quiet bool `flag:"q" usage:"quiet mode"`
}

// EmulationFlags contains options that control the interpreter.
type EmulationFlags struct {
	Frequency int    `flag:"hz" usage:"instructions executed per second" default:"700"`
	Seed      uint64 `flag:"seed" usage:"seed for the random number generator (default: random)"`
	Scale     int    `flag:"scale" usage:"terminal columns per pixel" default:"2"`
	ReleaseMs int    `flag:"release-ms" usage:"milliseconds after which a pressed key is released" default:"150"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	EmulationFlags
}
