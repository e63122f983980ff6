// Command matefind searches a FEN position for a forced checkmate.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hailam/matefind/internal/board"
	"github.com/hailam/matefind/internal/config"
	"github.com/hailam/matefind/internal/search"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func main() {
	var cfg config.Config
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("failed to parse configuration")
	}

	fen := cfg.FEN
	if fen == "" {
		fen = startFEN
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		log.Fatal().Err(err).Str("fen", fen).Msg("invalid FEN")
	}

	move, score := runSearch(pos, cfg)

	switch score {
	case 1, -1:
		fmt.Println(move.String())
	default:
		fmt.Println("no mate")
	}
}

// runSearch drives the search with cfg's tt-bits, decrementing it by
// one (halving the table) and retrying if allocation panics (NewTranspositionTable rejects sizes
// outside its supported range). Gives up once tt-bits drops below 1.
func runSearch(pos *board.Position, cfg config.Config) (move board.Move, score int) {
	ttBits := cfg.TTBits

	for {
		ok := func() bool {
			defer func() {
				if r := recover(); r != nil {
					log.Warn().Interface("panic", r).Int("tt-bits", ttBits).Msg("transposition table allocation failed, retrying smaller")
				}
			}()

			searchCfg := search.Config{
				TTBits:     ttBits,
				MaxThreads: cfg.MaxThreads,
				UseTT:      !cfg.NoTT,
				UseLazySMP: !cfg.NoLazySMP,
				MaxDepth:   cfg.MaxDepthCap,
			}

			move, score = search.Run(pos, searchCfg, func(r search.DepthReport) {
				log.Info().
					Uint64("leaf", r.LeafNodes).
					Uint64("interior", r.InteriorNodes).
					Uint64("mate", r.MateNodes).
					Dur("elapsed", r.Elapsed).
					Int("depth", r.Depth).
					Msg("depth complete")
			})
			return true
		}()

		if ok {
			return move, score
		}

		ttBits--
		if ttBits < 1 {
			log.Fatal().Msg("transposition table allocation failed at the smallest tt-bits")
		}
	}
}
