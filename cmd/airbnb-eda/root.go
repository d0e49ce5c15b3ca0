package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"airbnb-eda/internal/config"
	"airbnb-eda/internal/infrastructure"
	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/dataprep"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	flags   *viper.Viper

	cfg    *config.Config
	logger *infrastructure.Logger
	loader *data.Loader
}

func newApp() *app {
	return &app{flags: viper.New()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "airbnb-eda",
		Short: "Exploratory analysis of Inside Airbnb city datasets",
		Long: `airbnb-eda loads the calendar, listings and reviews tables published for a
city, cleans them, and renders the average price over time or a map of the
listings.

Data files are read from <data-dir>/<city>/<table>.csv.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.String("data-dir", "", "directory holding one folder per city")
	pf.String("log-level", "", "debug, info, warn or error")

	// Flags win over the config file and the environment
	a.flags.BindPFlag("data.root", pf.Lookup("data-dir"))
	a.flags.BindPFlag("logging.level", pf.Lookup("log-level"))

	root.AddCommand(
		newProfileCmd(a),
		newCleanCmd(a),
		newPricesCmd(a),
		newMapCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.flags.IsSet("data.root") {
		cfg.Data.Root = a.flags.GetString("data.root")
	}
	if a.flags.IsSet("logging.level") {
		cfg.Logging.Level = a.flags.GetString("logging.level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}

	loader := data.NewLoader(cfg.Data.Root, logger.Logger)
	loader.Delimiter = cfg.DelimiterRune()

	a.cfg, a.logger, a.loader = cfg, logger, loader
	slog.SetDefault(logger.Logger)
	logger.Debug("Configuration loaded",
		"data_root", cfg.Data.Root,
		"config_file", a.cfgFile)
	return nil
}

// close releases the log file opened by setup.
func (a *app) close() error {
	if a.logger == nil {
		return nil
	}
	err := a.logger.Close()
	a.logger = nil
	return err
}

// coerceOptions maps the config onto parsing options.
func (a *app) coerceOptions() []dataprep.CoerceOption {
	opts := []dataprep.CoerceOption{dataprep.WithLocation(a.cfg.Location())}
	if a.cfg.Coerce.LenientDates {
		opts = append(opts, dataprep.WithLenient())
	}
	if a.cfg.Coerce.PercentScale {
		opts = append(opts, dataprep.WithPercentScale())
	}
	return opts
}

// addCityFlags registers the --city and --kind flags shared by the
// table-oriented commands.
func addCityFlags(cmd *cobra.Command, city, kind *string, defaultKind data.Table) {
	cmd.Flags().StringVar(city, "city", "", "city folder under the data directory")
	cmd.Flags().StringVar(kind, "kind", string(defaultKind), "table: calendar, listings or reviews")
	cmd.MarkFlagRequired("city")
}
