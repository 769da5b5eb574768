/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/pgkyl/data"
)

// PlotCmd represents the plot command
var PlotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Line plot of one dimensional data",
	Long: `
Plots the first component of one dimensional data sets, in a window or with --ascii
in the terminal. Modal data is interpolated first.

pgkyl plot -f field.gkz --ascii`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			files []string
			po    plotOptions
			delay int
		)
		if files, err = cmd.Flags().GetStringSlice("filename"); err != nil {
			return
		}
		if po.ASCII, err = cmd.Flags().GetBool("ascii"); err != nil {
			return
		}
		if po.Height, err = cmd.Flags().GetInt("height"); err != nil {
			return
		}
		if po.Width, err = cmd.Flags().GetInt("width"); err != nil {
			return
		}
		if delay, err = cmd.Flags().GetInt("delay"); err != nil {
			return
		}
		po.Delay = time.Duration(delay) * time.Millisecond
		return runPlot(files, loadOptions{PolyOrder: -1, Comp: viper.GetString("comp")}, po)
	},
}

func init() {
	rootCmd.AddCommand(PlotCmd)
	PlotCmd.Flags().StringSliceP("filename", "f", nil, "one or more files to work with, wild cards allowed when quoted")
	PlotCmd.Flags().BoolP("ascii", "a", false, "plot in the terminal instead of a window")
	PlotCmd.Flags().Int("height", 15, "terminal plot height in rows")
	PlotCmd.Flags().Int("width", 80, "terminal plot width in columns")
	PlotCmd.Flags().IntP("delay", "d", 0, "milliseconds to keep the window open, 0 = until interrupted")
}

type plotOptions struct {
	ASCII         bool
	Height, Width int
	Delay         time.Duration
}

type series struct {
	Name string
	X, F []float64
}

// lineSeries extracts the sub-cell centers and the first component of 1D values
func lineSeries(gd *data.GData) (s series, err error) {
	var (
		a    = gd.PeekValues()
		grid = gd.PeekGrid()
	)
	if gd.NumDims() != 1 {
		return s, fmt.Errorf("plot is available only for 1D data (used on %dD data)", gd.NumDims())
	}
	if a == nil || len(grid) != 1 {
		return s, fmt.Errorf("%s: nothing to plot", gd.FileName)
	}
	var (
		N  = a.Shape[0]
		Nc = gd.NumComps()
		g  = grid[0]
	)
	s = series{Name: gd.FileName, X: make([]float64, N), F: make([]float64, N)}
	for i := 0; i < N; i++ {
		switch len(g) {
		case N:
			s.X[i] = g[i]
		case N + 1:
			s.X[i] = 0.5 * (g[i] + g[i+1])
		default:
			return s, fmt.Errorf("%s: %d grid points for %d values", gd.FileName, len(g), N)
		}
		s.F[i] = a.Data[i*Nc]
	}
	return
}

func runPlot(files []string, lo loadOptions, po plotOptions) (err error) {
	var (
		sets []*data.GData
		ss   []series
	)
	vlog("Starting plot")
	if len(files) == 0 {
		return fmt.Errorf("must supply at least one file (-f, --filename)")
	}
	if sets, err = loadDataSets(files, lo); err != nil {
		return
	}
	for _, gd := range sets {
		if _, ok := gd.PolyOrder(); ok {
			vlog("plot: interpolating modal data of '%s'", gd.FileName)
			opts := interpolateOptions{PolyOrder: -1, ParallelDegree: viper.GetInt("parallel")}
			if err = interpolateDataSet(gd, opts); err != nil {
				return
			}
		}
		var s series
		if s, err = lineSeries(gd); err != nil {
			return
		}
		ss = append(ss, s)
	}
	if po.ASCII {
		for _, s := range ss {
			fmt.Println(asciiPlot(s, po))
		}
		return
	}
	return windowPlot(ss, po)
}

func asciiPlot(s series, po plotOptions) string {
	return asciigraph.Plot(s.F,
		asciigraph.Height(po.Height),
		asciigraph.Width(po.Width),
		asciigraph.Caption(fmt.Sprintf("%s [%.3g, %.3g]", s.Name, s.X[0], s.X[len(s.X)-1])))
}

func windowPlot(ss []series, po plotOptions) (err error) {
	var (
		xmin, xmax = ss[0].X[0], ss[0].X[0]
		fmin, fmax = ss[0].F[0], ss[0].F[0]
	)
	for _, s := range ss {
		for i := range s.X {
			xmin, xmax = min(xmin, s.X[i]), max(xmax, s.X[i])
			fmin, fmax = min(fmin, s.F[i]), max(fmax, s.F[i])
		}
	}
	pad := 0.05 * (fmax - fmin)
	if pad == 0 {
		pad = 0.5
	}
	chart := chart2d.NewChart2D(1280, 1024, float32(xmin), float32(xmax), float32(fmin-pad), float32(fmax+pad))
	colorMap := utils2.NewColorMap(-1, 1, 1)
	go chart.Plot()
	for i, s := range ss {
		color := float32(-0.7)
		if len(ss) > 1 {
			color = -0.7 + 1.4*float32(i)/float32(len(ss)-1)
		}
		if err = chart.AddSeries(s.Name, s.X, s.F, chart2d.NoGlyph, chart2d.Solid, colorMap.GetRGB(color)); err != nil {
			return fmt.Errorf("unable to add graph series: %w", err)
		}
	}
	if po.Delay > 0 {
		time.Sleep(po.Delay)
		return
	}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	vlog("Finishing plot")
	return
}
