package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/mlb-team-timeline/internal/app"
	"github.com/riskibarqy/mlb-team-timeline/internal/infrastructure/repository/csvfile"
	"github.com/riskibarqy/mlb-team-timeline/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
	"github.com/riskibarqy/mlb-team-timeline/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version = "dev"

type options struct {
	DataDir                 string
	DBURL                   string
	DBDisablePreparedBinary bool
	BatchSize               int
	Workers                 int
	Truncate                bool
	DryRun                  bool
	LogLevel                string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "ingest",
		Short:   "Load Lahman People, Batting and Teams CSV files into PostgreSQL",
		Version: Version,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return crerr.Wrapf(err, "read config %s", path)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := readOptions(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "optional YAML file with the same keys as the flags")
	flags.String("data-dir", "./data", "directory holding People.csv, Batting.csv and Teams.csv")
	flags.String("db-url", "", "PostgreSQL URL (env DB_URL)")
	flags.Bool("db-disable-prepared-binary-result", true, "append disable_prepared_binary_result=yes to the URL")
	flags.Int("batch-size", postgres.DefaultBatchSize, "rows per INSERT statement")
	flags.Int("workers", usecase.DefaultIngestWorkers, "concurrent INSERT workers")
	flags.Bool("truncate", false, "empty the tables before inserting")
	flags.Bool("dry-run", false, "load and plan batches without writing")
	flags.String("log-level", "info", "debug, info, warn or error")

	return cmd
}

func readOptions(v *viper.Viper) (options, error) {
	opts := options{
		DataDir:                 strings.TrimSpace(v.GetString("data-dir")),
		DBURL:                   strings.TrimSpace(v.GetString("db-url")),
		DBDisablePreparedBinary: v.GetBool("db-disable-prepared-binary-result"),
		BatchSize:               v.GetInt("batch-size"),
		Workers:                 v.GetInt("workers"),
		Truncate:                v.GetBool("truncate"),
		DryRun:                  v.GetBool("dry-run"),
		LogLevel:                v.GetString("log-level"),
	}
	if opts.DataDir == "" {
		return options{}, crerr.New("--data-dir cannot be empty")
	}
	if opts.DBURL == "" && !opts.DryRun {
		return options{}, crerr.WithHint(crerr.New("--db-url is required"), "set DB_URL or pass --dry-run")
	}
	if opts.BatchSize <= 0 {
		return options{}, crerr.Newf("--batch-size must be > 0, got %d", opts.BatchSize)
	}
	if opts.Workers <= 0 {
		return options{}, crerr.Newf("--workers must be > 0, got %d", opts.Workers)
	}
	if _, ok := logging.ParseLevel(opts.LogLevel); !ok {
		return options{}, crerr.Newf("invalid --log-level %q", opts.LogLevel)
	}
	return opts, nil
}

func run(ctx context.Context, opts options, out io.Writer) error {
	level, _ := logging.ParseLevel(opts.LogLevel)
	logger := logging.New(logging.Options{Level: level, Format: logging.FormatConsole, Service: "mlb-team-timeline-ingest", Version: Version})
	defer func() { _ = logger.Sync() }()

	var writer *postgres.Writer
	if opts.DryRun && opts.DBURL == "" {
		writer = postgres.NewWriter(nil, opts.BatchSize)
	} else {
		db, dbName, err := app.OpenDB(ctx, opts.DBURL, opts.DBDisablePreparedBinary)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("connected to postgres", "db", dbName)
		writer = postgres.NewWriter(db, opts.BatchSize)
	}

	svc := usecase.NewIngestService(csvfile.NewLoader(opts.DataDir), writer, logger)
	result, err := svc.Run(ctx, usecase.IngestInput{
		Truncate: opts.Truncate,
		DryRun:   opts.DryRun,
		Workers:  opts.Workers,
	})
	if err != nil {
		return err
	}

	payload, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode result")
	}
	_, err = fmt.Fprintln(out, string(payload))
	return err
}
