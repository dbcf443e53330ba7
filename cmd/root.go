package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"companydir/adapters/excel"
	domainDataset "companydir/domain/dataset"
	"companydir/internal"
	"companydir/internal/config"
	"companydir/internal/dataset"
	"companydir/internal/errors"
	"companydir/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	envFile  string
	file     string
	sheet    string
	category string
	host     string
	port     string
	pageSize int
	title    string
	logLevel string
	pprof    bool
}

// NewRootCmd builds the command that loads the directory and serves it
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "companydir",
		Short:         "Serve a spreadsheet of companies as a browsable, filterable page.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.envFile, "env-file", ".env", "dotenv file read before the environment")
	persistent.StringVarP(&opts.file, "file", "f", "", "spreadsheet to load (.xlsx or .csv) [DATA_FILE]")
	persistent.StringVar(&opts.sheet, "sheet", "", "worksheet name, default first sheet [DATA_SHEET]")
	persistent.StringVarP(&opts.category, "category", "c", "", "category column to filter by [CATEGORY_COLUMN]")
	persistent.StringVar(&opts.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE [LOG_LEVEL]")

	flags := cmd.Flags()
	flags.StringVar(&opts.host, "host", "", "bind host [HOST]")
	flags.StringVarP(&opts.port, "port", "p", "", "bind port [PORT]")
	flags.IntVar(&opts.pageSize, "page-size", 0, "table rows per page [PAGE_SIZE]")
	flags.StringVar(&opts.title, "title", "", "page heading [PAGE_TITLE]")
	flags.BoolVar(&opts.pprof, "pprof", false, "serve pprof and /healthz on PPROF_PORT [PPROF_ENABLED]")

	cmd.AddCommand(newListCmd(opts))

	return cmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		internal.DefaultLogger.Error("%v", err)
		os.Exit(1)
	}
}

// loadConfig reads the dotenv file and environment, then applies the flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if err := godotenv.Load(opts.envFile); err != nil {
		if cmd.Flags().Changed("env-file") {
			return nil, errors.IOError("cannot read env file "+opts.envFile, err)
		}
		internal.DefaultLogger.Debug("No .env file found, using system environment variables")
	}

	cfg := config.FromEnv()
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Data.File = opts.file
	}
	if flags.Changed("sheet") {
		cfg.Data.Sheet = opts.sheet
	}
	if flags.Changed("category") {
		cfg.Data.CategoryColumn = opts.category
	}
	if flags.Changed("host") {
		cfg.Server.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if flags.Changed("page-size") {
		cfg.Page.PageSize = opts.pageSize
	}
	if flags.Changed("title") {
		cfg.Page.Title = opts.title
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("pprof") {
		cfg.Profiling.Enabled = opts.pprof
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// run loads the dataset, then serves until ctx is cancelled. A load error is
// returned before any listener is opened.
func run(ctx context.Context, cfg *config.Config) error {
	logger := configuredLogger(cfg)

	srv, err := build(cfg, logger)
	if err != nil {
		return err
	}

	servers := []*namedServer{newWebServer(cfg.Server.Addr(), srv.Handler())}
	if cfg.Profiling.Enabled {
		servers = append(servers, newProfilingServer(cfg.Server.Host, cfg.Profiling.Port, srv, logger))
	}
	return serve(ctx, cfg.Server.ShutdownTimeout, logger, servers...)
}

func configuredLogger(cfg *config.Config) *internal.Logger {
	logger := internal.DefaultLogger
	logger.SetLevel(internal.ParseLogLevel(cfg.LogLevel))
	return logger
}

func loadDataset(cfg *config.Config, logger *internal.Logger) (*domainDataset.Dataset, error) {
	readerConfig := excel.DefaultExcelConfig()
	readerConfig.FilePath = cfg.Data.File
	readerConfig.Sheet = cfg.Data.Sheet

	ds, err := dataset.NewLoader(readerConfig, logger).Load(cfg.Data.CategoryColumn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dataset")
	}
	return ds, nil
}

// build is the composition root: the Dataset is created here once and
// handed to the UI by reference.
func build(cfg *config.Config, logger *internal.Logger) (*ui.Server, error) {
	ds, err := loadDataset(cfg, logger)
	if err != nil {
		return nil, err
	}

	gin.SetMode(cfg.Server.GinMode)
	return ui.NewServer(ds, ui.Options{
		Title:    cfg.Page.Title,
		Intro:    cfg.Page.Intro,
		PageSize: cfg.Page.PageSize,
	}, logger)
}
