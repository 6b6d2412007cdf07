// Command cli simulates a persona's ledger and prints the data or its
// analysis as JSON. Useful for inspecting simulator output without
// running the API server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wealthsim/persona-finance/internal/analysis"
	"github.com/wealthsim/persona-finance/internal/config"
	"github.com/wealthsim/persona-finance/internal/logger"
	"github.com/wealthsim/persona-finance/internal/simulate"
)

func main() {
	_ = godotenv.Load()

	var (
		persona    = flag.String("persona", "fatima", "persona id to simulate")
		months     = flag.Int("months", simulate.DefaultMonths, "number of months to simulate")
		output     = flag.String("output", "analysis", "what to print: data or analysis")
		configPath = flag.String("config", os.Getenv("PERSONA_CONFIG"), "optional persona config YAML (or set PERSONA_CONFIG env)")
	)
	flag.Parse()

	log := logger.New()

	personas, err := config.LoadPersonas(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load persona configs")
	}

	cfg, ok := personas[*persona]
	if !ok {
		ids := make([]string, 0, len(personas))
		for id := range personas {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		log.Fatal().
			Str("persona", *persona).
			Str("available", strings.Join(ids, ", ")).
			Msg("Unknown persona")
	}

	data := simulate.Run(cfg, *months)

	var result interface{}
	switch *output {
	case "data":
		result = data
	case "analysis":
		result, err = analysis.Analyze(data, time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("Analysis failed")
		}
	default:
		log.Fatal().Str("output", *output).Msg("Unknown output, use data or analysis")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, "encode output:", err)
		os.Exit(1)
	}
}
