// Command extract runs the offline extraction pipeline: it converts the
// upstream game-data dump into the two generated lookup tables served at
// runtime.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/broodsheet/internal/extract"
	"github.com/okian/broodsheet/pkg/logger"
)

func main() {
	docPath := flag.String("doc", filepath.Join("data", "upstream", "values.json"), "path to the upstream game-data dump")
	multPath := flag.String("multipliers", filepath.Join("data", "upstream", "server-multipliers.json"), "path to the server-multiplier document")
	outDir := flag.String("out", "data", "directory the generated tables are written to")
	preset := flag.String("preset", extract.DefaultPreset, "named server-multiplier preset")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	pipeline := extract.New(
		extract.WithDocumentPath(*docPath),
		extract.WithMultiplierPath(*multPath),
		extract.WithOutputDir(*outDir),
		extract.WithPreset(*preset),
	)

	sum, err := pipeline.Run(context.Background())
	if err != nil {
		logger.Get().Error(context.Background(), "extraction failed", logger.Error(err))
		os.Exit(1)
	}

	fmt.Printf("%s: %d entries, %d bytes\n", extract.ColorTableFile, sum.Colors, sum.ColorBytes)
	fmt.Printf("%s: %d species, %d bytes\n", extract.SpeciesTableFile, sum.Species, sum.SpeciesBytes)
}
