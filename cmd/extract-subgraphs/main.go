package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/estimnet/cergm-gof/pkg/gof"
	"github.com/estimnet/cergm-gof/pkg/tracing"
	"go.uber.org/zap"

	_ "github.com/joho/godotenv/autoload"

	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:        "extract-subgraphs",
		Usage:       "extract cERGM goodness-of-fit subgraphs from an observed network and its simulated replicates",
		ArgsUsage:   "netfilename termfilename simNetFilePrefix",
		HideHelp:    true,
		HideVersion: true,
		// usage errors go to stderr, stdout carries only graph summaries
		Writer: os.Stderr,
	}

	app.Action = ExtractSubgraphs
	return app
}

// ExtractSubgraphs is the main function for extract-subgraphs
func ExtractSubgraphs(cctx *cli.Context) error {
	if cctx.NArg() != 3 {
		return cli.Exit("usage: extract-subgraphs netfilename termfilename simNetFilePrefix", 1)
	}

	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rawlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %+v\n", err)
	}
	defer func() {
		err := rawlog.Sync()
		if err != nil {
			log.Printf("failed to sync logger on teardown: %+v", err.Error())
		}
	}()

	logger := rawlog.Sugar().With("source", "extract_subgraphs_main")

	// Registers a tracer Provider globally if the exporter endpoint is set
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		logger.Info("initializing tracer...")
		shutdown, err := tracing.InstallExportPipeline(ctx, "ExtractSubgraphs", 1)
		if err != nil {
			logger.Fatal(err)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Fatal(err)
			}
		}()
	}

	runner := gof.NewRunner(gof.Config{
		NetFile:   cctx.Args().Get(0),
		TermFile:  cctx.Args().Get(1),
		SimPrefix: cctx.Args().Get(2),
		Out:       os.Stdout,
		Progress:  true,
	}, logger)

	return runner.Run(ctx)
}
