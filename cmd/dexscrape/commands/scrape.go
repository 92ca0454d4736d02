package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dexscrape/internal/components/chrono"
	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/db"
	"dexscrape/internal/dex"
	"dexscrape/internal/scrapers/serebii"

	"github.com/spf13/cobra"
)

var (
	scrapeSave      *bool
	scrapeNoSave    *bool
	scrapeFirst     *int
	scrapeLast      *int
	scrapeVerbose   *bool
	scrapeDb        *string
	scrapeOutput    *string
	scrapeOnFailure *string
)

func init() {
	flags := scrapeCmd.Flags()
	scrapeSave = flags.BoolP("save", "s", true, "Save the scraped entities to the output json file.")
	scrapeNoSave = flags.Bool("no-save", false, "Only scrape, do not write the output json file.")
	scrapeFirst = flags.IntP("first", "f", serebii.DEFAULT_FIRST, "The national dex id of the first entity to scrape.")
	scrapeLast = flags.IntP("last", "l", serebii.DEFAULT_LAST, "The national dex id of the last entity to scrape.")
	scrapeVerbose = flags.BoolP("verbose", "v", false, "Print every scraped entity and a summary table to the console.")
	scrapeDb = flags.String("db", "", "A sqlite database to record the outcome of every entity to.")
	scrapeOutput = flags.String("output", "", "The json file to write, overrides the config.")
	scrapeOnFailure = flags.String("on-failure", "", "What to do when an entity fails: continue or abort.")
	rootCmd.AddCommand(scrapeCmd)
}

// scrapeConfig reads the config file and applies the flags that were set.
func scrapeConfig(cmd *cobra.Command) Config {
	cfg, err := readConfig(*configPath)
	if err != nil {
		fatal("failed to read config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("first") {
		cfg.First = *scrapeFirst
	}
	if flags.Changed("last") {
		cfg.Last = *scrapeLast
	}
	if flags.Changed("db") {
		cfg.Database = *scrapeDb
	}
	if flags.Changed("output") {
		cfg.Output = *scrapeOutput
	}
	if flags.Changed("on-failure") {
		cfg.OnFailure = *scrapeOnFailure
	}
	return cfg
}

// setupTelemetry returns the telemetry API every component reports to, along
// with a function that flushes any otel exporters.
func setupTelemetry(ctx context.Context, cfg Config) (telemetry.API, func()) {
	var tel telemetry.API = telemetry.NewSlogAPI(slog.Default())
	if !cfg.Telemetry.Enabled() {
		return tel, func() {}
	}

	otelSetup, err := telemetry.Setup(ctx, "dexscrape", cfg.Telemetry)
	if err != nil {
		fatal("failed to setup telemetry", err)
	}
	meterTel, err := telemetry.NewMeterAPI(tel)
	if err != nil {
		fatal("failed to setup metrics", err)
	}
	return meterTel, func() {
		err := otelSetup.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}
}

func openRecorder(ctx context.Context, cfg Config, tel telemetry.API) (db.Recorder, func(), error) {
	sqlite, err := db.OpenDB(cfg.Database)
	if err != nil {
		return db.Recorder{}, nil, err
	}
	recorder, err := db.StartRun(
		ctx,
		db.New(sqlite),
		db.NewMakeTx(sqlite),
		chrono.StandardImpl{},
		tel,
		cfg.First,
		cfg.Last,
	)
	if err != nil {
		sqlite.Close()
		return db.Recorder{}, nil, err
	}
	return recorder, func() { sqlite.Close() }, nil
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--save|--no-save] [-f <first>] [-l <last>] [-v] [--db <path/to/results.db>]",
	Short: "Scrapes a range of entities from serebii.net into a json file.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := scrapeConfig(cmd)
		save := *scrapeSave && !*scrapeNoSave

		policy, err := serebii.ParseFailurePolicy(cfg.OnFailure)
		if err != nil {
			fatal("invalid failure policy", err)
		}

		tel, shutdown := setupTelemetry(ctx, cfg)
		defer shutdown()

		var dumpOutput telemetry.InstrumentOutput
		if cfg.DumpDir != "" {
			output, err := telemetry.NewFilesystemOutput(cfg.DumpDir, tel)
			if err != nil {
				fatal("failed to create dump dir", err)
			}
			dumpOutput = output
		}

		client, err := serebii.NewClient(serebii.ClientOptions{
			BaseUrl:    cfg.BaseUrl,
			UserAgent:  cfg.UserAgent,
			Timeout:    cfg.Timeout(),
			DumpOutput: dumpOutput,
		}, tel)
		if err != nil {
			fatal("failed to create serebii client", err)
		}

		var recorder *db.Recorder
		if cfg.Database != "" {
			r, closeDb, err := openRecorder(ctx, cfg, tel)
			if err != nil {
				fatal("failed to open result store", err)
			}
			defer closeDb()
			recorder = &r
			slog.Info("recording results", "db", cfg.Database, "run", r.RunID())
		}

		onResult := func(result serebii.Result) {
			entry := dex.FormatDexEntry(result.ID)
			if result.Err != nil {
				slog.Error("failed to scrape", "id", entry, "err", result.Err)
			} else if *scrapeVerbose {
				fmt.Printf("%s %s\n", entry, result.Entity.Name)
			} else {
				slog.Info("scraped", "id", entry, "name", result.Entity.Name)
			}
			if recorder != nil {
				err := recorder.Record(ctx, result.ID, result.Entity, result.Err)
				if err != nil {
					slog.Warn("failed to record result", "id", entry, "err", err)
				}
			}
		}

		scanner := serebii.NewScanner(
			serebii.NewScraper(client, tel),
			serebii.ScanOptions{
				OnFailure: policy,
				OnResult:  onResult,
			},
			tel,
		)

		slog.Info("extracting data from serebii.net", "first", cfg.First, "last", cfg.Last)
		results, err := scanner.Scan(ctx, cfg.First, cfg.Last)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				slog.Warn("scan interrupted", "scraped", len(results))
			} else if len(results) == 0 {
				fatal("failed to scan", err)
			} else {
				slog.Error("scan stopped early", "err", err, "scraped", len(results))
			}
		}

		if *scrapeVerbose {
			renderSummary(results)
		}

		entities := serebii.Entities(results)
		if !save {
			slog.Info(fmt.Sprintf("all %d entities retrieved, nothing was saved. to save to json, use the --save flag", len(entities)))
			return
		}
		err = dex.WriteFile(cfg.Output, entities)
		if err != nil {
			fatal("failed to save results", err)
		}
		slog.Info(fmt.Sprintf("saved to %s", cfg.Output), "entities", len(entities))
	},
}
