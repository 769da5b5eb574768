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
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/notargets/pgkyl/data"
	"github.com/notargets/pgkyl/modalDG"
)

var (
	startTime    = time.Now()
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func vlog(format string, args ...interface{}) {
	if !viper.GetBool("verbose") {
		return
	}
	msg := fmt.Sprintf("[%f] %s", time.Since(startTime).Seconds(), fmt.Sprintf(format, args...))
	fmt.Println(verboseStyle.Render(msg))
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("ERROR: "+err.Error()))
}

func printWarning(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, warningStyle.Render("WARNING: "+fmt.Sprintf(format, args...)))
}

// expandFileNames resolves wild cards. Restart files are skipped and the files
// matched by a pattern are ordered by their _N frame number.
func expandFileNames(patterns []string) (fileNames []string, err error) {
	for _, pat := range patterns {
		if !strings.ContainsAny(pat, "*?[") {
			fileNames = append(fileNames, pat)
			continue
		}
		var matches, frames []string
		if matches, err = filepath.Glob(pat); err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !strings.Contains(m, "restart") {
				frames = append(frames, m)
			}
		}
		sortFrames(frames)
		fileNames = append(fileNames, frames...)
	}
	if len(patterns) != 0 && len(fileNames) == 0 {
		return nil, fmt.Errorf("no files loaded")
	}
	return
}

// frameNumber parses the integer after the last underscore of the base name
func frameNumber(fileName string) (frame int, ok bool) {
	var (
		base = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
		i    = strings.LastIndex(base, "_")
		err  error
	)
	if i < 0 {
		return 0, false
	}
	if frame, err = strconv.Atoi(base[i+1:]); err != nil {
		return 0, false
	}
	return frame, true
}

func sortFrames(names []string) {
	sort.Strings(names)
	for _, name := range names {
		if _, ok := frameNumber(name); !ok {
			printWarning("'%s' has no frame number, files are sorted by name", name)
			return
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		fi, _ := frameNumber(names[i])
		fj, _ := frameNumber(names[j])
		return fi < fj
	})
}

type loadOptions struct {
	Stack bool
	Comp  string // "N" or "lo:hi", empty keeps every component
	// Order and basis sizing the coefficient blocks of modal data, a negative
	// order and an empty basis defer to the values stored with the data
	PolyOrder int
	Basis     string
}

// parseComponents reads "N" or "lo:hi" into the half open range [lo,hi)
func parseComponents(comp string) (lo, hi int, err error) {
	var (
		fields = strings.Split(strings.TrimSpace(comp), ":")
	)
	if lo, err = strconv.Atoi(strings.TrimSpace(fields[0])); err != nil {
		return 0, 0, fmt.Errorf("invalid component selection %q: %w", comp, err)
	}
	switch len(fields) {
	case 1:
		hi = lo + 1
	case 2:
		if hi, err = strconv.Atoi(strings.TrimSpace(fields[1])); err != nil {
			return 0, 0, fmt.Errorf("invalid component selection %q: %w", comp, err)
		}
	default:
		return 0, 0, fmt.Errorf("invalid component selection %q", comp)
	}
	return
}

// componentBlockSize is the number of trailing entries per component, the basis
// size for modal data and 1 for nodal data
func componentBlockSize(gd *data.GData, lo loadOptions) (blockSize int, err error) {
	var (
		bt    = gd.Basis
		order = lo.PolyOrder
	)
	if order < 0 {
		var ok bool
		if order, ok = gd.PolyOrder(); !ok {
			return 1, nil
		}
	}
	if len(lo.Basis) != 0 {
		if bt, err = modalDG.NewBasisType(lo.Basis); err != nil {
			return
		}
	}
	return modalDG.NumBasisFuncs(bt, order, gd.NumDims()), nil
}

func loadDataSets(patterns []string, lo loadOptions) (sets []*data.GData, err error) {
	var (
		fileNames      []string
		gd             *data.GData
		cLo, cHi, blkN int
	)
	if len(lo.Comp) != 0 {
		if cLo, cHi, err = parseComponents(lo.Comp); err != nil {
			return
		}
	}
	if fileNames, err = expandFileNames(patterns); err != nil {
		return
	}
	for i, fileName := range fileNames {
		vlog("Loading '%s' as data set #%d", fileName, i)
		if gd, err = data.Load(fileName); err != nil {
			return nil, err
		}
		gd.Stack = lo.Stack
		if len(lo.Comp) != 0 {
			if blkN, err = componentBlockSize(gd, lo); err != nil {
				return nil, err
			}
			if err = gd.SelectComponents(cLo, cHi, blkN); err != nil {
				return nil, fmt.Errorf("%s: %w", fileName, err)
			}
		}
		sets = append(sets, gd)
	}
	return
}

// parseNodes reads a comma separated list of reference coordinates
func parseNodes(list string) (nodes []float64, err error) {
	if len(strings.TrimSpace(list)) == 0 {
		return
	}
	for _, field := range strings.Split(list, ",") {
		var x float64
		if x, err = strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return nil, fmt.Errorf("invalid node %q: %w", field, err)
		}
		if x <= -1 || x >= 1 {
			printWarning("node %v lies outside the open reference interval (-1,1)", x)
		}
		nodes = append(nodes, x)
	}
	return
}

type interpolateOptions struct {
	PolyOrder      int // negative means take it from the data
	Basis          string
	Nodes          []float64
	ParallelDegree int
}

func (opts interpolateOptions) params() (p modalDG.Params) {
	if opts.PolyOrder >= 0 {
		p.PolyOrder = modalDG.Order(opts.PolyOrder)
	}
	p.Nodes = opts.Nodes
	return
}

func interpolateDataSet(gd *data.GData, opts interpolateOptions) (err error) {
	var (
		bt = gd.Basis
	)
	if len(opts.Basis) != 0 {
		if bt, err = modalDG.NewBasisType(opts.Basis); err != nil {
			return
		}
	}
	ip := modalDG.NewInterpolator(modalDG.DefaultKernelTable(bt), opts.ParallelDegree)
	if err = ip.InterpolateData(gd, opts.params()); err != nil {
		return fmt.Errorf("%s: %w", gd.FileName, err)
	}
	// The values on the stack are nodal now
	gd.Basis = bt
	gd.ClearPolyOrder()
	return
}

// derivedName replaces the extension of fileName, appending a suffix
func derivedName(fileName, suffix, ext string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return base + suffix + ext
}
