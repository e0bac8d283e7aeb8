package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/effects/dynamics"
	"github.com/cwbudde/algo-dynamics/measure/thd"
	"github.com/cwbudde/algo-dynamics/stats/level"
)

func writeReport(w io.Writer, c *dynamics.Compressor, in, out level.Levels, hist *dynamics.GainHistory) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "\tSamples\tPeak [dB]\tRMS [dB]\tCrest [dB]\n")
	fmt.Fprintf(tw, "\t-------\t---------\t--------\t----------\n")
	for _, row := range []struct {
		name string
		l    level.Levels
	}{{"input", in}, {"output", out}} {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\n",
			row.name, row.l.Length, row.l.Peak_dB, row.l.RMS_dB, row.l.CrestFactor_dB)
	}

	change := level.GainChange(in, out)
	fmt.Fprintf(tw, "change\t\t%+.2f\t%+.2f\t%+.2f\n", change.Peak_dB, change.RMS_dB, change.CrestFactor_dB)

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nknee k %.4f, master gain %.4f, lookahead %d samples, max reduction %.2f dB over %d chunks\n",
		c.KneeSharpness(), c.MasterGain(), c.Delay(), hist.Min(), len(hist.Values))

	return err
}

func writeProbe(w io.Writer, res thd.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Fundamental [Hz]\tTHD [%%]\tTHD [dB]\tTHD+N [dB]\tH2 [dB]\tH3 [dB]\n")
	fmt.Fprintf(tw, "%.1f\t%.4f\t%.2f\t%.2f\t%.2f\t%.2f\n",
		res.FundamentalFreq, res.THD*100, res.THD_dB, res.THDN_dB,
		harmonicDB(res.Harmonics, 0), harmonicDB(res.Harmonics, 1))

	return tw.Flush()
}

func harmonicDB(h []float64, i int) float64 {
	if i >= len(h) {
		return core.LinearToDB(0)
	}

	return core.LinearToDB(h[i])
}
