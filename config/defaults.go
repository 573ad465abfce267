package config

import "time"

// Defaults used for every setting a configuration file leaves out
const (
	DefaultLogLevel   = "info"
	DefaultAlgorithm  = "alphabeta"
	DefaultDepth      = 2
	DefaultMaxDepth   = 6
	DefaultEvaluation = "score"
	DefaultTimeout    = time.Duration(0) // search to the full depth
	DefaultSeed       = 1
	DefaultMaxTurns   = 300
	DefaultAddr       = ":8080"
	DefaultMode       = "release"
)

// DefaultLayout is the chase layout played when none is configured.
const DefaultLayout = `
%%%%%%%%%%%%%%%%%%%%
%P.....%....%......%
%.%%%%.%.%%.%.%%%%.%
%.%....G.....%...%.%
%.%.%%%%%%%%.%.%.%.%
%......%....G..%...%
%%%%%%%%%%%%%%%%%%%%
`

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: Log{Level: DefaultLogLevel, Pretty: true},
		Search: Search{
			Algorithm:  DefaultAlgorithm,
			Depth:      DefaultDepth,
			MaxDepth:   DefaultMaxDepth,
			Evaluation: DefaultEvaluation,
			Timeout:    DefaultTimeout,
		},
		Game: Game{
			Name:     "default",
			Layout:   DefaultLayout,
			Seed:     DefaultSeed,
			MaxTurns: DefaultMaxTurns,
		},
		Server: Server{Addr: DefaultAddr, Mode: DefaultMode},
	}
}
