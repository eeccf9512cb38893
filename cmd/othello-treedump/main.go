// Command othello-treedump expands the game tree from the starting position
// and writes the full and alpha-beta pruned trees to text files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TheKrainBow/othello/internal/logx"
	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/render"
	"github.com/TheKrainBow/othello/internal/search"
)

func main() {
	depth := flag.Int("depth", 5, "expansion depth")
	dir := flag.String("out", ".", "output directory")
	compress := flag.Bool("zstd", false, "write zstd-compressed dumps")
	showHints := flag.Bool("hints", false, "print the ranked opening moves")
	flag.Parse()

	log := logx.NewLogger()
	if *depth < 1 {
		log.Fatal().Int("depth", *depth).Msg("depth must be at least 1")
	}
	suffix := ".txt"
	if *compress {
		suffix = ".txt.zst"
	}

	full := search.NewTree(othello.NewBoard())
	full.ExpandFull(*depth)
	fullPath := filepath.Join(*dir, fmt.Sprintf("fulltree_depth_%d%s", *depth, suffix))
	if err := search.WriteFile(fullPath, full); err != nil {
		log.Fatal().Err(err).Str("path", fullPath).Msg("failed to write full tree")
	}
	log.Info().
		Str("path", fullPath).
		Int("nodes", full.Count()).
		Int("height", full.Height()).
		Float64("score", full.Score()).
		Msg("full tree written")

	pruned := search.NewTree(othello.NewBoard())
	pruned.ExpandPruned(*depth)
	prunedPath := filepath.Join(*dir, fmt.Sprintf("prunedtree_depth_%d%s", *depth, suffix))
	if err := search.WriteFile(prunedPath, pruned); err != nil {
		log.Fatal().Err(err).Str("path", prunedPath).Msg("failed to write pruned tree")
	}
	log.Info().
		Str("path", prunedPath).
		Int("nodes", pruned.Count()).
		Int("height", pruned.Height()).
		Float64("score", pruned.Score()).
		Msg("pruned tree written")

	if *showHints {
		renderer := render.New(os.Stdout)
		start := othello.NewBoard()
		_ = renderer.Fprint(start)
		fmt.Print(renderer.Hints(search.RankMoves(start, *depth)))
	}
}
