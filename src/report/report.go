// Package report prints price statistics and window limits as text tables.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/iafilius/PriceChartViewer/src/series"
	"github.com/iafilius/PriceChartViewer/src/view"
)

const timeFormat = "2006-01-02 15:04:05"

// StatsTable writes mean and standard deviation of both series plus the average difference.
func StatsTable(w io.Writer, st series.Stats) error {
	table := tablewriter.NewWriter(w)
	table.Header("Series", "Mean", "Std")
	if err := table.Append("Real Price", price(st.RealMean), price(st.RealStd)); err != nil {
		return err
	}
	if err := table.Append("Generated Price", price(st.GeneratedMean), price(st.GeneratedStd)); err != nil {
		return err
	}
	if err := table.Append("Average Difference", fmt.Sprintf("%.2f%%", st.MeanDiffPct), ""); err != nil {
		return err
	}
	return table.Render()
}

// WindowTable writes the plot limits of win.
func WindowTable(w io.Writer, win view.Window) error {
	table := tablewriter.NewWriter(w)
	table.Header("Limit", "Value")
	rows := [][]string{
		{"Points", fmt.Sprintf("%d", win.Len())},
		{"From", win.XMin.Format(timeFormat)},
		{"To", win.XMax.Format(timeFormat)},
		{"Price min", price(win.YMin)},
		{"Price max", price(win.YMax)},
	}
	for _, r := range rows {
		if err := table.Append(r[0], r[1]); err != nil {
			return err
		}
	}
	return table.Render()
}

func price(v float64) string { return fmt.Sprintf("%.2f", v) }
