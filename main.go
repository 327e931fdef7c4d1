package main

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/expense-tracker/internal"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Params struct {
	File     string `descr:"Path to the expense file (overrides config)" optional:"true"`
	Config   string `descr:"Path to config file (default ~/.expense-tracker/config.yaml)" optional:"true"`
	View     string `descr:"Listing style: plain, table or json (overrides config)" optional:"true"`
	Currency string `descr:"Currency code for the table view, or 'auto' to use the system locale" optional:"true"`
	Import   string `descr:"Import expenses from [format:]path and exit (formats: simple-json, expense-xlsx)" optional:"true"`
	Export   string `descr:"Export all expenses to path (.xlsx or .json) and exit" optional:"true"`
	Category string `descr:"Print expenses in this category and exit" optional:"true"`
	From     string `descr:"Start date (YYYY-MM-DD) of a date range query" optional:"true"`
	To       string `descr:"End date (YYYY-MM-DD) of a date range query" optional:"true"`
	Month    string `descr:"Print expenses in a month (YYYY-MM) and exit" optional:"true"`
	Verbose  bool   `descr:"Enable debug logging on stderr" optional:"true"`
}

func main() {
	boa.NewCmdT[Params]("expense-tracker").
		WithShort("Record and query personal expenses").
		WithLong("Keeps an ordered list of expenses in a JSON file. Without query or import/export flags it starts an interactive menu to add, list and filter expenses by category or date range.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdin, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, in io.Reader, out io.Writer) error {
	logger, err := internal.NewLogger(params.Verbose)
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	defer logger.Sync()

	cfg, err := loadConfig(params)
	if err != nil {
		return err
	}

	store, err := internal.LoadStore(cfg.DataPath(), internal.WithLogger(logger))
	if err != nil {
		if errors.Is(err, internal.ErrCorruptStore) {
			return errors.Wrap(err, "refusing to start with an unreadable expense file")
		}
		return err
	}
	logger.Debug("store ready", zap.String("path", store.Path()), zap.Int("count", store.Len()))

	opts := internal.ListOptions{
		Style:    cfg.View,
		Currency: cfg.ResolveCurrency(),
	}

	switch {
	case params.Import != "":
		n, err := internal.ImportFile(store, params.Import)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d expenses into %s\n", n, store.Path())
		return nil

	case params.Export != "":
		records := store.Records()
		if err := internal.Export(params.Export, records); err != nil {
			return errors.Wrapf(err, "exporting to %s", params.Export)
		}
		fmt.Fprintf(out, "Exported %d expenses to %s\n", len(records), params.Export)
		return nil

	case params.Category != "":
		internal.PrintCategory(out, store.Records(), params.Category, opts)
		return nil

	case params.Month != "":
		start, end, err := internal.MonthRange(params.Month)
		if err != nil {
			return err
		}
		return internal.PrintDateRange(out, store.Records(), start, end, opts)

	case params.From != "" || params.To != "":
		return internal.PrintDateRange(out, store.Records(), params.From, params.To, opts)
	}

	return internal.NewMenu(store, in, out, opts).Run()
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(params *Params) (*internal.Config, error) {
	path := params.Config
	if path == "" {
		path = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfigOrDefault(path)
	if err != nil {
		return nil, err
	}

	if params.File != "" {
		cfg.DataFile = params.File
	}
	if params.View != "" {
		cfg.View = params.View
	}
	if params.Currency != "" {
		cfg.Currency = params.Currency
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
