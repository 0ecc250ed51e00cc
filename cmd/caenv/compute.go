package caenv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/caenv/caenv/internal/cache"
	"github.com/caenv/caenv/internal/config"
	"github.com/caenv/caenv/internal/envelope"
	"github.com/caenv/caenv/internal/extproc"
	"github.com/caenv/caenv/internal/report"
	"github.com/caenv/caenv/internal/tableio"
	"github.com/caenv/caenv/internal/types"
)

var (
	flagTable   string
	flagBank    string
	flagInit    int
	flagProb    string
	flagNSimul  int
	flagSampler string
	flagFitter  string
	flagEngine  string
	flagOut     string
	flagText    bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute MMD and INE quantile envelopes for a contingency table",
		RunE:  runCompute,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagTable, "table", "t", "", "contingency table file (CSV or JSON)")
	cmd.Flags().StringVarP(&flagBank, "bank", "b", "", "pre-generated simulation bank file (JSON); skips sampling and fitting")
	cmd.Flags().IntVar(&flagInit, "init", 0, "initial subset size (0 = floor(0.6*n))")
	cmd.Flags().StringVar(&flagProb, "prob", "", "comma-separated quantile probabilities (default 0.01,0.5,0.99)")
	cmd.Flags().IntVar(&flagNSimul, "nsimul", 0, "number of simulated tables (ignored when a bank is supplied)")
	cmd.Flags().StringVar(&flagSampler, "sampler", "", "external sampler command (required without --bank)")
	cmd.Flags().StringVar(&flagFitter, "fitter", "", "external robust fitter command (required without --bank)")
	cmd.Flags().StringVar(&flagEngine, "engine", "", "external forward-search engine command")
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "write <out>-mmd.csv and <out>-ine.csv instead of printing")
	cmd.Flags().BoolVar(&flagText, "text", false, "plain columnar output instead of a bordered table")
	_ = cmd.MarkFlagRequired("table")
}

func runCompute(_ *cobra.Command, _ []string) error {
	// Load configs: CLI > local > global.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	cwd, _ := os.Getwd()
	if c, err := config.LoadLocal(cwd); err == nil {
		lcfg = c
	}

	opts := envelope.Options{
		Init:    pickInt(flagInit, lcfg.Init, gcfg.Init),
		NSimul:  pickInt(flagNSimul, lcfg.NSimul, gcfg.NSimul),
		Threads: pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
	}
	// Config-file output format applies only when no flag forced one.
	if !flagJSON && !flagText {
		switch pickString("", lcfg.Output, gcfg.Output) {
		case "json":
			flagJSON = true
		case "text":
			flagText = true
		}
	}
	if probStr := pickString(flagProb, lcfg.Prob, gcfg.Prob); probStr != "" {
		ps, err := envelope.ParseProbs(probStr)
		if err != nil {
			return err
		}
		opts.Prob = ps
	}

	tableBytes, err := os.ReadFile(flagTable)
	if err != nil {
		return err
	}
	tab, err := tableio.LoadTable(flagTable)
	if err != nil {
		return err
	}

	var bank *types.Bank
	inputBytes := tableBytes
	if flagBank != "" {
		bankBytes, err := os.ReadFile(flagBank)
		if err != nil {
			return err
		}
		bank, err = tableio.LoadBank(flagBank)
		if err != nil {
			return err
		}
		inputBytes = append(append([]byte{}, tableBytes...), bankBytes...)
	}

	noCache := pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache)
	effNSimul := opts.NSimul
	if bank != nil {
		effNSimul = bank.Size()
	} else if effNSimul == 0 {
		effNSimul = envelope.DefaultNSimul
	}
	prob := opts.Prob
	if len(prob) == 0 {
		prob = envelope.DefaultProb
	}
	key := cache.Key(inputBytes, opts.Init, effNSimul, prob)

	var db cache.DB
	if !noCache {
		db, _ = cache.Load(cwd)
		if entry, ok := db.Entries[key]; ok {
			report.PrintWarnings(os.Stderr, entry.Warnings, flagNoColor)
			res := envelope.Result{MMD: entry.MMD, INE: entry.INE, Simulations: entry.Simulations, Init: entry.Init}
			return renderResult(res, report.PrintOptions{NoColor: flagNoColor, FromCache: true})
		}
	}

	cfg := envelope.Config{Table: tab, Bank: bank, Opts: opts}
	if engineCmd := pickString(flagEngine, lcfg.Engine, gcfg.Engine); engineCmd != "" {
		c, err := extproc.ParseCommand(engineCmd)
		if err != nil {
			return fmt.Errorf("engine command: %w", err)
		}
		cfg.Engine = extproc.NewEngine(c)
	}
	if samplerCmd := pickString(flagSampler, lcfg.Sampler, gcfg.Sampler); samplerCmd != "" {
		c, err := extproc.ParseCommand(samplerCmd)
		if err != nil {
			return fmt.Errorf("sampler command: %w", err)
		}
		cfg.Sampler = extproc.NewSampler(c)
	}
	if fitterCmd := pickString(flagFitter, lcfg.Fitter, gcfg.Fitter); fitterCmd != "" {
		c, err := extproc.ParseCommand(fitterCmd)
		if err != nil {
			return fmt.Errorf("fitter command: %w", err)
		}
		cfg.Fitter = extproc.NewFitter(c)
	}

	res, err := envelope.Compute(context.Background(), cfg)
	if err != nil {
		return err
	}

	report.PrintWarnings(os.Stderr, res.Warnings, flagNoColor)

	if !noCache {
		if db.Entries == nil {
			db.Entries = map[string]cache.Entry{}
		}
		db.Entries[key] = cache.Entry{MMD: res.MMD, INE: res.INE, Warnings: res.Warnings, Simulations: res.Simulations, Init: res.Init}
		_ = cache.Save(cwd, db)
	}

	return renderResult(res, report.PrintOptions{
		NoColor:     flagNoColor,
		Duration:    res.Duration,
		Simulations: res.Simulations,
	})
}

func renderResult(res envelope.Result, opts report.PrintOptions) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"mmd":         res.MMD,
			"ine":         res.INE,
			"simulations": res.Simulations,
			"init":        res.Init,
		})
	}
	if flagOut != "" {
		return writeCSVPair(flagOut, res)
	}
	if flagText {
		report.PrintText(os.Stdout, "MMD", res.MMD, opts)
		fmt.Println()
		report.PrintText(os.Stdout, "INE", res.INE, opts)
	} else {
		report.PrintTable(os.Stdout, "MMD", res.MMD, opts)
		fmt.Println()
		report.PrintTable(os.Stdout, "INE", res.INE, opts)
	}
	report.PrintFooter(os.Stdout, opts)
	return nil
}

func writeCSVPair(prefix string, res envelope.Result) error {
	for _, out := range []struct {
		suffix string
		env    types.Envelope
	}{
		{"-mmd.csv", res.MMD},
		{"-ine.csv", res.INE},
	} {
		p := prefix + out.suffix
		f, err := os.Create(p)
		if err != nil {
			return err
		}
		if err := tableio.WriteEnvelopeCSV(f, out.env); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", filepath.Base(p), err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
