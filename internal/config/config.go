// Package config parses the mate-finder's tunables from flags or
// environment variables.
package config

import "github.com/namsral/flag"

// Config holds every tunable the mate finder exposes, each settable
// by flag or by the matching MATEFINDER_* environment variable.
type Config struct {
	FEN         string
	TTBits      int
	MaxThreads  int
	NoTT        bool
	NoLazySMP   bool
	MaxDepthCap int
}

// Load parses args (typically os.Args[1:]) into c, falling back to
// environment variables and then defaults for anything unset.
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSetWithEnvPrefix("matefind", "MATEFINDER", flag.ContinueOnError)
	fs.StringVar(&c.FEN, "fen", "", "FEN of the position to search")
	fs.IntVar(&c.TTBits, "tt-bits", 26, "log2 of the transposition table slot count")
	fs.IntVar(&c.MaxThreads, "threads", 16, "number of Lazy SMP worker goroutines")
	fs.BoolVar(&c.NoTT, "no-tt", false, "disable the transposition table")
	fs.BoolVar(&c.NoLazySMP, "no-smp", false, "disable Lazy SMP (search with the driver alone)")
	fs.IntVar(&c.MaxDepthCap, "max-depth", 32, "upper bound on iterative deepening")
	return fs.Parse(args)
}
