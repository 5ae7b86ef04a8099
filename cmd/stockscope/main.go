package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockScope/internal/analyzer"
	"StockScope/internal/config"
	"StockScope/internal/model"
	"StockScope/internal/report"
	"StockScope/internal/scheduler"
	"StockScope/internal/sink"
	"StockScope/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := flag.String("config", "configs/config.yaml", "path to YAML config")
	sourcePath := flag.String("source", "", "CSV file to analyze (overrides source.path)")
	fast := flag.Int("fast", 0, "fast SMA window (overrides analysis.fast_window)")
	slow := flag.Int("slow", 0, "slow SMA window (overrides analysis.slow_window)")
	start := flag.String("start", "", "range start, YYYY-MM-DD")
	end := flag.String("end", "", "range end, YYYY-MM-DD")
	noPersist := flag.Bool("no-persist", false, "do not write repaired data back to the source")
	importCSV := flag.String("import", "", "copy a CSV file into the SQLite source and exit")
	flag.Parse()

	if v := os.Getenv("CONFIG_PATH"); v != "" && !isFlagSet("config") {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *sourcePath != "" {
		cfg.Source.Kind = config.SourceCSV
		cfg.Source.Path = *sourcePath
	}
	if *fast > 0 {
		cfg.Analysis.FastWindow = *fast
	}
	if *slow > 0 {
		cfg.Analysis.SlowWindow = *slow
	}
	if *start != "" {
		cfg.Analysis.Start = *start
	}
	if *end != "" {
		cfg.Analysis.End = *end
	}
	if *noPersist {
		persist := false
		cfg.Persist = &persist
	}

	if *importCSV != "" {
		if err := importToSQLite(*importCSV, cfg); err != nil {
			log.Fatalf("[FATAL] import: %v", err)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	rng, _ := cfg.DateRange()

	var open analyzer.OpenFunc
	switch cfg.Source.Kind {
	case config.SourceSQLite:
		open = analyzer.SQLiteSource(cfg.Source.SQLitePath, cfg.Source.Name)
	default:
		open = analyzer.CSVSource(cfg.Source.Path)
	}
	var opts []store.Option
	if !cfg.PersistEnabled() {
		opts = append(opts, store.WithoutPersistence())
	}
	a := analyzer.NewAnalyzer(open, analyzer.Request{
		FastWindow:      cfg.Analysis.FastWindow,
		SlowWindow:      cfg.Analysis.SlowWindow,
		SourceColumn:    cfg.Analysis.SourceColumn,
		ReferenceColumn: cfg.Analysis.ReferenceColumn,
		Start:           rng.Start,
		End:             rng.End,
	}, opts...)

	if cfg.Schedule.RefreshCron == "" {
		rep, err := a.Run()
		if err != nil {
			log.Printf("[ERROR] %s", describe(err))
			os.Exit(1)
		}
		fmt.Print(report.FormatReport(rep))
		return
	}

	sched := scheduler.NewScheduler(a)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, running refresh now")
		if rep, err := sched.RunNow(); err != nil {
			log.Printf("[ERROR] %s", describe(err))
		} else {
			fmt.Print(report.FormatReport(rep))
		}
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] StockScope is running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("[INFO] shutdown signal received, stopping...")
}

// importToSQLite loads and repairs a CSV file, then stores it under source.name.
func importToSQLite(csvPath string, cfg *config.Config) error {
	name := cfg.Source.Name
	if name == "" {
		name = csvPath
	}
	st, err := store.Load(sink.NewCSVSink(csvPath), store.WithoutPersistence())
	if err != nil {
		return err
	}
	db, err := sink.NewSQLiteSink(cfg.Source.SQLitePath, name)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := st.SaveTo(db); err != nil {
		return err
	}
	log.Printf("[INFO] imported %s into %s", csvPath, db.Name())
	return nil
}

// describe renders engine errors the way the user needs to act on them.
func describe(err error) string {
	var (
		ingest   *model.IngestError
		date     *model.InvalidDateFormatError
		empty    *model.EmptySeriesError
		rng      *model.EmptyRangeError
		arg      *model.InvalidArgumentError
		conflict *model.ColumnConflictError
	)
	switch {
	case errors.As(err, &date):
		return fmt.Sprintf("date does not match YYYY-MM-DD format: %v", err)
	case errors.As(err, &ingest):
		return fmt.Sprintf("source is invalid or could not be opened: %v", err)
	case errors.As(err, &empty):
		return fmt.Sprintf("source has no rows: %v", err)
	case errors.As(err, &rng):
		return fmt.Sprintf("selected range is empty: %v", err)
	case errors.As(err, &conflict):
		return fmt.Sprintf("moving average already computed from another column: %v", err)
	case errors.As(err, &arg):
		return fmt.Sprintf("invalid request: %v", err)
	default:
		return fmt.Sprintf("exception encountered: %v", err)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
