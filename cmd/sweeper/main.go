package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-agent/internal/game"
	"github.com/vancomm/minesweeper-agent/internal/minefield"
)

var log = logrus.New()

var (
	width     int
	height    int
	mineCount int
	games     int
	seed      uint64
	workers   int
	verbose   bool
)

func init() {
	flag.IntVar(&width, "width", 8, "field width")
	flag.IntVar(&height, "height", 8, "field height")
	flag.IntVar(&mineCount, "mines", 8, "number of mines")
	flag.IntVar(&games, "games", 100, "number of games to play")
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "concurrent games")
	flag.BoolVar(&verbose, "v", false, "debug logging")
}

func main() {
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
		game.Log.SetLevel(logrus.DebugLevel)
	}

	params := minefield.Params{
		Width:     width,
		Height:    height,
		MineCount: mineCount,
	}
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}
	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}

	log.Infof("playing %d games on %s fields, seed %d", games, params.Seed(), seed)

	results := make([]game.Result, games)
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := range games {
		g.Go(func() error {
			r := rand.New(rand.NewPCG(seed, uint64(i)))
			s, err := game.NewSession(params, r)
			if err != nil {
				return err
			}
			results[i] = s.Run()
			log.Debugf("game %d: won=%t moves=%d", i, results[i].Won, results[i].Moves)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	var wins, moves, guesses int
	for _, res := range results {
		if res.Won {
			wins++
		}
		moves += res.Moves
		guesses += res.RandomMoves
	}

	fmt.Printf("games:      %d\n", games)
	fmt.Printf("won:        %d (%.1f%%)\n", wins, 100*float64(wins)/float64(games))
	fmt.Printf("avg moves:  %.1f\n", float64(moves)/float64(games))
	fmt.Printf("avg guesses: %.1f\n", float64(guesses)/float64(games))
}
