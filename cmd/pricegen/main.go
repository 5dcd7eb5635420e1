// pricegen writes a synthetic data file for the price comparison viewer.
//
// A random-walk "real" price is fed through the otc generator and each step is written as
// real,generated,timestamp. Settings come from flags, optionally preloaded from a YAML file;
// flags given on the command line win over the file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iafilius/PriceChartViewer/src/logging"
	"github.com/iafilius/PriceChartViewer/src/otc"
	"github.com/iafilius/PriceChartViewer/src/report"
	"github.com/iafilius/PriceChartViewer/src/series"
)

type genConfig struct {
	Out        string        `yaml:"out"`
	Samples    int           `yaml:"samples"`
	Start      int64         `yaml:"start"`
	Interval   time.Duration `yaml:"interval"`
	BasePrice  float64       `yaml:"base_price"`
	Volatility float64       `yaml:"volatility"`
	Seed       uint64        `yaml:"seed"`
	OTC        otc.Config    `yaml:"otc"`
}

func defaultGenConfig() genConfig {
	return genConfig{
		Out:        series.DefaultFile,
		Samples:    3600,
		Interval:   time.Second,
		BasePrice:  43000,
		Volatility: 0.0005,
		OTC:        otc.DefaultConfig(),
	}
}

func (c genConfig) validate() error {
	if c.Samples < 0 {
		return fmt.Errorf("samples must be >= 0, got %d", c.Samples)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.BasePrice <= 0 {
		return fmt.Errorf("base price must be positive, got %g", c.BasePrice)
	}
	if c.Volatility < 0 {
		return errors.New("volatility must be >= 0")
	}
	return nil
}

// loadConfig overlays the YAML file at path on top of base.
func loadConfig(path string, base genConfig) (genConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// generate writes cfg.Samples lines to w and returns what was written.
func generate(w io.Writer, cfg genConfig, rng *rand.Rand) (*series.Series, error) {
	out := series.NewWriter(w)
	data := &series.Series{
		Timestamps: make([]time.Time, 0, cfg.Samples),
		Real:       make([]float64, 0, cfg.Samples),
		Generated:  make([]float64, 0, cfg.Samples),
	}
	start := time.Unix(cfg.Start, 0)
	rp := cfg.BasePrice
	gen := otc.New(rp, cfg.OTC, rng)
	for i := 0; i < cfg.Samples; i++ {
		now := start.Add(time.Duration(i) * cfg.Interval)
		next := rp + rng.NormFloat64()*cfg.Volatility*rp
		if next <= 0 {
			next = rp * 0.99
		}
		rp = next
		smp := series.Sample{Timestamp: now.Local(), Real: rp, Generated: gen.Next(rp, now)}
		if err := out.Write(smp); err != nil {
			return nil, fmt.Errorf("write sample %d: %w", i, err)
		}
		data.Timestamps = append(data.Timestamps, smp.Timestamp)
		data.Real = append(data.Real, smp.Real)
		data.Generated = append(data.Generated, smp.Generated)
	}
	if err := out.Flush(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return data, nil
}

func main() {
	cfg := defaultGenConfig()
	var configPath, level string
	flag.StringVar(&configPath, "config", "", "Optional YAML file with generator settings")
	flag.StringVar(&level, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&cfg.Out, "out", cfg.Out, "Output data file")
	flag.IntVar(&cfg.Samples, "n", cfg.Samples, "Number of samples")
	flag.Int64Var(&cfg.Start, "start", cfg.Start, "First timestamp in unix seconds (0 = now minus the generated span)")
	flag.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Time between samples")
	flag.Float64Var(&cfg.BasePrice, "base", cfg.BasePrice, "Starting real price")
	flag.Float64Var(&cfg.Volatility, "volatility", cfg.Volatility, "Per-step relative volatility of the real price")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = random)")
	flag.Parse()
	logging.SetLogLevel(level)

	if configPath != "" {
		fileCfg, err := loadConfig(configPath, defaultGenConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		// explicit flags override the file
		flagCfg := cfg
		cfg = fileCfg
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "out":
				cfg.Out = flagCfg.Out
			case "n":
				cfg.Samples = flagCfg.Samples
			case "start":
				cfg.Start = flagCfg.Start
			case "interval":
				cfg.Interval = flagCfg.Interval
			case "base":
				cfg.BasePrice = flagCfg.BasePrice
			case "volatility":
				cfg.Volatility = flagCfg.Volatility
			case "seed":
				cfg.Seed = flagCfg.Seed
			}
		})
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Start == 0 {
		cfg.Start = time.Now().Add(-time.Duration(cfg.Samples) * cfg.Interval).Unix()
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	logging.Debugf("[pricegen] seed=%d start=%d interval=%s", cfg.Seed, cfg.Start, cfg.Interval)

	f, err := os.Create(cfg.Out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	data, err := generate(f, cfg, rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)))
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logging.Infof("[pricegen] wrote %d samples to %s", data.Len(), cfg.Out)
	if err := report.StatsTable(os.Stdout, series.ComputeStats(data)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
