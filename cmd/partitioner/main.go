package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hgrio"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/pipeline"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/serializer"
)

var partitionerApp = &cli.App{
	Action:    runPartitioner,
	Name:      "multilevel hypergraph partitioner",
	HelpName:  "partitioner",
	ArgsUsage: "<graph.hgr>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML/JSON configuration file"},
		&cli.IntFlag{Name: "k", Usage: "number of blocks"},
		&cli.Float64Flag{Name: "epsilon", Aliases: []string{"e"}, Usage: "allowed imbalance"},
		&cli.Int64Flag{Name: "seed", Usage: "random seed"},
		&cli.IntFlag{Name: "nruns", Usage: "initial partitioning attempts"},
		&cli.IntFlag{Name: "vcycles", Usage: "number of V-cycles"},
		&cli.IntFlag{Name: "hyperedge-size-threshold", Usage: "remove hyperedges larger than this (-1 disables)"},
		&cli.IntFlag{Name: "min-nodes", Usage: "stop coarsening at this many nodes"},
		&cli.StringFlag{Name: "initial", Usage: "initial partitioner: growing, random or hmetis"},
		&cli.StringFlag{Name: "start-nodes", Usage: "start node selection: bfs, random or max_degree"},
		&cli.StringFlag{Name: "tie-breaking", Usage: "rating tie breaking: first, last or random"},
		&cli.StringFlag{Name: "hmetis", Usage: "path to the hMetis binary"},
		&cli.StringFlag{Name: "partition-file", Aliases: []string{"o"}, Usage: "output partition file (default <graph>.part.<k>)"},
		&cli.StringFlag{Name: "result-log", Usage: "append a RESULT line to this file"},
		&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
		&cli.BoolFlag{Name: "no-checks", Usage: "disable invariant checks"},
	},
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"k":                        "partition.k",
	"epsilon":                  "partition.epsilon",
	"seed":                     "partition.seed",
	"nruns":                    "partition.initial_partitioning_attempts",
	"vcycles":                  "partition.global_search_iterations",
	"hyperedge-size-threshold": "partition.hyperedge_size_threshold",
	"min-nodes":                "coarsening.minimal_node_count",
	"initial":                  "initial.algorithm",
	"start-nodes":              "initial.start_nodes",
	"tie-breaking":             "coarsening.tie_breaking",
	"hmetis":                   "initial.hmetis_path",
	"log-level":                "logging.level",
}

func main() {
	if err := partitionerApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPartitioner(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one hypergraph file, got %d arguments", ctx.NArg())
	}
	graphFile := ctx.Args().First()

	cfg := partition.NewConfig()
	if path := ctx.String("config"); path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}
	for flag, key := range flagKeys {
		if ctx.IsSet(flag) {
			cfg.Set(key, ctx.Value(flag))
		}
	}
	if ctx.Bool("no-checks") {
		cfg.Set("debug.check_invariants", false)
	}

	logger := cfg.CreateLogger()
	runID := uuid.New()
	logger = logger.With().Str("run_id", runID.String()).Logger()

	out, err := pipeline.New(cfg, logger).RunFile(graphFile)
	if err != nil {
		return err
	}

	partFile := ctx.String("partition-file")
	if partFile == "" {
		partFile = fmt.Sprintf("%s.part.%d", graphFile, cfg.K())
	}
	if err := hgrio.WritePartitionFile(partFile, out.Hypergraph); err != nil {
		return err
	}
	logger.Info().Str("file", partFile).Msg("Partition written")

	if path := ctx.String("result-log"); path != "" {
		record := serializer.Record{
			RunID:      runID,
			Config:     cfg,
			Hypergraph: out.Hypergraph,
			Coarsener:  out.Coarsener,
			Refiner:    out.Refiner,
			Result:     out.Result,
			Elapsed:    out.Elapsed,
		}
		if err := serializer.WriteResult(path, record); err != nil {
			return err
		}
	}

	printSummary(cfg, out)
	return nil
}

func printSummary(cfg *partition.Config, out *pipeline.Output) {
	hg := out.Hypergraph
	result := out.Result

	summary := table.NewWriter()
	summary.SetOutputMirror(os.Stdout)
	summary.SetTitle("Partitioning summary")
	summary.AppendHeader(table.Row{"Metric", "Value"})
	summary.AppendRows([]table.Row{
		{"Hypernodes", hg.InitialNumNodes()},
		{"Hyperedges", hg.InitialNumEdges()},
		{"k", cfg.K()},
		{"epsilon", cfg.Epsilon()},
		{"L_max", cfg.MaxPartSize()},
		{"Cut", result.Cut},
		{"Imbalance", fmt.Sprintf("%.5f", result.Imbalance)},
		{"Removed hyperedges", result.RemovedEdges},
		{"Unresolved hyperedges", len(result.UnresolvedEdges)},
	})
	summary.AppendSeparator()
	summary.AppendRows([]table.Row{
		{"Coarsening", result.Timings.Coarsening.Round(time.Microsecond)},
		{"Initial partitioning", result.Timings.InitialPartitioning.Round(time.Microsecond)},
		{"Uncoarsening/refinement", result.Timings.UncoarseningRefinement.Round(time.Microsecond)},
		{"Total", out.Elapsed.Round(time.Microsecond)},
	})
	summary.Render()

	blocks := table.NewWriter()
	blocks.SetOutputMirror(os.Stdout)
	blocks.AppendHeader(table.Row{"Block", "Nodes", "Weight"})
	for p := 0; p < hg.K(); p++ {
		block := hypergraph.PartitionID(p)
		blocks.AppendRow(table.Row{p, hg.PartSize(block), hg.PartWeight(block)})
	}
	blocks.Render()
}
