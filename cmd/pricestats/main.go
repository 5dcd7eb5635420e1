package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iafilius/PriceChartViewer/src/report"
	"github.com/iafilius/PriceChartViewer/src/series"
	"github.com/iafilius/PriceChartViewer/src/view"
)

func main() {
	var file string
	var n int
	flag.StringVar(&file, "file", series.DefaultFile, "Path to the price data file")
	flag.IntVar(&n, "n", 0, "Window size: most recent samples to summarize (0 = all)")
	flag.Parse()
	if err := run(os.Stdout, file, n); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, file string, n int) error {
	data, err := series.Load(file)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Samples: %d\n", data.Len())
	if err := report.StatsTable(w, series.ComputeStats(data)); err != nil {
		return err
	}
	if data.Len() == 0 {
		return nil
	}
	if n <= 0 || n > data.Len() {
		n = data.Len()
	}
	win, err := view.Compute(data, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Window: last %d of %d\n", n, data.Len())
	return report.WindowTable(w, win)
}
