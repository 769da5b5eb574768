package data

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/DataDog/zstd"

	"github.com/notargets/pgkyl/modalDG"
)

const (
	gkzMagic   = "GKZ1"
	gkzVersion = uint32(1)
	// Upper bounds used to reject corrupt headers before allocating
	maxRank     = 16
	maxGridLen  = 1 << 28
	zstdLevel   = 3
	float64Size = 8
)

var byteOrder = binary.LittleEndian

// Load reads a data set, dispatching on the file extension
func Load(fileName string) (gd *GData, err error) {
	var (
		f *os.File
	)
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".gkz":
	case ".h5", ".bp":
		return nil, fmt.Errorf("%w: %s (HDF5 and ADIOS files are not readable by this build)",
			ErrUnsupportedFormat, fileName)
	default:
		return nil, fmt.Errorf("%w: extension %q of %s", ErrUnsupportedFormat, ext, fileName)
	}
	if f, err = os.Open(fileName); err != nil {
		return
	}
	defer f.Close()
	if gd, err = ReadGKZ(f); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	gd.FileName = fileName
	return
}

// Save writes the top grid and values of the stack
func Save(gd *GData, fileName string) (err error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt":
		return createAndWrite(fileName, func(w io.Writer) error {
			return WriteText(w, gd.PeekGrid(), gd.PeekValues())
		})
	case ".gkz":
		return createAndWrite(fileName, func(w io.Writer) error {
			return WriteGKZ(w, gd)
		})
	default:
		return fmt.Errorf("%w: can not write %s", ErrUnsupportedFormat, fileName)
	}
}

// createAndWrite reports the Close error when the write itself succeeded
func createAndWrite(fileName string, write func(w io.Writer) error) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(fileName); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func WriteGKZ(w io.Writer, gd *GData) (err error) {
	var (
		buf       bytes.Buffer
		NDim      = gd.NumDims()
		a         = gd.PeekValues()
		grid      = gd.PeekGrid()
		p, hasP   = gd.PolyOrder()
		raw       []byte
		zipped    []byte
		writeAll  func(vals ...interface{})
		hasGrid   uint8
		hasPOrder uint8
	)
	if a == nil {
		return fmt.Errorf("%w: nothing to write", ErrEmptyStack)
	}
	writeAll = func(vals ...interface{}) {
		for _, v := range vals {
			if err := binary.Write(&buf, byteOrder, v); err != nil {
				panic(err) // bytes.Buffer writes do not fail
			}
		}
	}
	if hasP {
		hasPOrder = 1
	}
	if len(grid) != 0 {
		hasGrid = 1
	}
	buf.WriteString(gkzMagic)
	writeAll(gkzVersion, uint32(NDim))
	for d := 0; d < NDim; d++ {
		writeAll(int64(gd.Cells[d]), gd.LowerBounds[d], gd.UpperBounds[d])
	}
	writeAll(gd.Time, uint8(gd.Basis), hasPOrder, int32(p), hasGrid)
	if hasGrid == 1 {
		writeAll(uint32(len(grid)))
		for _, g := range grid {
			writeAll(int64(len(g)), g)
		}
	}
	writeAll(uint32(len(a.Shape)))
	for _, s := range a.Shape {
		writeAll(int64(s))
	}

	raw = make([]byte, float64Size*len(a.Data))
	for i, v := range a.Data {
		byteOrder.PutUint64(raw[float64Size*i:], math.Float64bits(v))
	}
	if zipped, err = zstd.CompressLevel(nil, raw, zstdLevel); err != nil {
		return
	}
	writeAll(uint64(len(a.Data)), uint64(len(zipped)))
	buf.Write(zipped)
	_, err = w.Write(buf.Bytes())
	return
}

func ReadGKZ(r io.Reader) (gd *GData, err error) {
	var (
		magic         = make([]byte, len(gkzMagic))
		version, NDim uint32
		basis         uint8
		hasPOrder     uint8
		hasGrid       uint8
		p             int32
		rank          uint32
		numVals, nZip uint64
		readErr       error
	)
	read := func(v interface{}) {
		if readErr == nil {
			readErr = binary.Read(r, byteOrder, v)
		}
	}
	if _, err = io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFile, err)
	}
	if string(magic) != gkzMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadFile, magic)
	}
	read(&version)
	read(&NDim)
	if readErr == nil && (version != gkzVersion || NDim > modalDG.MaxNumDims) {
		return nil, fmt.Errorf("%w: version %d with %d dimensions", ErrBadFile, version, NDim)
	}
	gd = &GData{
		Cells:       make([]int, NDim),
		LowerBounds: make([]float64, NDim),
		UpperBounds: make([]float64, NDim),
	}
	for d := 0; d < int(NDim); d++ {
		var nc int64
		read(&nc)
		read(&gd.LowerBounds[d])
		read(&gd.UpperBounds[d])
		if readErr == nil && (nc < 1 || nc > maxGridLen) {
			return nil, fmt.Errorf("%w: %d cells along axis %d", ErrBadFile, nc, d)
		}
		gd.Cells[d] = int(nc)
	}
	read(&gd.Time)
	read(&basis)
	read(&hasPOrder)
	read(&p)
	read(&hasGrid)
	if readErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFile, readErr)
	}
	if gd.Basis = modalDG.BasisType(basis); !gd.Basis.Valid() {
		return nil, fmt.Errorf("%w: basis type %d", ErrBadFile, basis)
	}
	if hasPOrder == 1 {
		gd.SetPolyOrder(int(p))
	}
	var grid [][]float64
	if hasGrid == 1 {
		var nAxes uint32
		read(&nAxes)
		if readErr == nil && nAxes != NDim {
			return nil, fmt.Errorf("%w: grid with %d axes for %d dimensions", ErrBadFile, nAxes, NDim)
		}
		grid = make([][]float64, nAxes)
		for d := range grid {
			var n int64
			read(&n)
			if readErr != nil || n < 0 || n > maxGridLen {
				return nil, fmt.Errorf("%w: grid axis %d", ErrBadFile, d)
			}
			if grid[d], err = readFloats(r, int(n)); err != nil {
				return nil, fmt.Errorf("%w: grid axis %d: %v", ErrBadFile, d, err)
			}
		}
	}
	read(&rank)
	if readErr == nil && rank > maxRank {
		return nil, fmt.Errorf("%w: values of rank %d", ErrBadFile, rank)
	}
	shape := make([]int, rank)
	size := 1
	for i := range shape {
		var s int64
		read(&s)
		if readErr == nil && (s < 0 || s > maxGridLen) {
			return nil, fmt.Errorf("%w: shape entry %d", ErrBadFile, s)
		}
		shape[i] = int(s)
		if size *= shape[i]; size > maxGridLen {
			return nil, fmt.Errorf("%w: values of shape %v", ErrBadFile, shape[:i+1])
		}
	}
	read(&numVals)
	read(&nZip)
	if readErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFile, readErr)
	}
	if int(numVals) != size {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrBadFile, numVals, shape)
	}
	if nZip > uint64(zstd.CompressBound(float64Size*size)) {
		return nil, fmt.Errorf("%w: compressed payload of %d bytes", ErrBadFile, nZip)
	}
	var zipped bytes.Buffer
	if _, err = io.CopyN(&zipped, r, int64(nZip)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFile, err)
	}
	raw, err := zstd.Decompress(nil, zipped.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFile, err)
	}
	if len(raw) != float64Size*size {
		return nil, fmt.Errorf("%w: payload of %d bytes for %d values", ErrBadFile, len(raw), size)
	}
	vals := make([]float64, size)
	for i := range vals {
		vals[i] = math.Float64frombits(byteOrder.Uint64(raw[float64Size*i:]))
	}
	if grid == nil {
		grid = modalDG.PhysicalGrid(gd.LowerBounds, gd.UpperBounds, gd.Cells, 1)
	}
	gd.grids = [][][]float64{grid}
	gd.values = []*Array{{Shape: shape, Data: vals}}
	return
}

// readFloats reads n values in bounded chunks, so a short stream fails before
// the full slice is allocated
func readFloats(r io.Reader, n int) (x []float64, err error) {
	const chunk = 4096
	var (
		buf = make([]byte, float64Size*min(n, chunk))
	)
	x = make([]float64, 0, min(n, chunk))
	for len(x) < n {
		m := min(n-len(x), chunk)
		if _, err = io.ReadFull(r, buf[:float64Size*m]); err != nil {
			return nil, err
		}
		for i := 0; i < m; i++ {
			x = append(x, math.Float64frombits(byteOrder.Uint64(buf[float64Size*i:])))
		}
	}
	return
}
