package transform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// precision is the number of decimals written for every value. It is a
// fixed decimal count, not significant digits, so values below 1 keep
// fewer than 15 significant digits.
const precision = 15

// Header describes a sequence of transforms. Width and Height are the
// frame dimensions the transforms were estimated on; only the legacy
// format stores them.
type Header struct {
	NParams     int
	NTransforms int
	Width       int
	Height      int
}

func (h Header) requireParams(params []float64) {
	if h.NParams < 0 || h.NTransforms < 0 || len(params) < h.NParams*h.NTransforms {
		panic(fmt.Sprintf("transform: %d×%d parameters requested, array holds %d",
			h.NTransforms, h.NParams, len(params)))
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func writeRow(w *bufio.Writer, values []float64) error {
	for i, v := range values {
		if i > 0 {
			if err := w.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(formatValue(v)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// WriteMatrices converts each of the h.NTransforms parameter blocks of
// length h.NParams with toMatrix and writes the nine matrix entries as
// one line. No header is written.
func WriteMatrices(w io.Writer, h Header, params []float64, toMatrix ToMatrix) error {
	h.requireParams(params)
	bw := bufio.NewWriter(w)
	for i := 0; i < h.NTransforms; i++ {
		m := toMatrix(params[i*h.NParams : (i+1)*h.NParams])
		if err := writeRow(bw, m[:]); err != nil {
			return fmt.Errorf("write transform %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadMatrices parses the matrix format. Blank lines are skipped; every
// other line must hold exactly nine values.
func ReadMatrices(r io.Reader) ([]Matrix, error) {
	var out []Matrix
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(Matrix{}) {
			return nil, fmt.Errorf("%w: line %d has %d values, want 9", ErrMalformed, line, len(fields))
		}
		var m Matrix
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformed, line, f)
			}
			m[i] = v
		}
		out = append(out, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read matrices: %w", err)
	}
	return out, nil
}

// WriteLegacy writes the header line followed by one row of raw
// parameters per transform.
func WriteLegacy(w io.Writer, h Header, params []float64) error {
	h.requireParams(params)
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", h.NParams, h.NTransforms, h.Width, h.Height); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < h.NTransforms; i++ {
		if err := writeRow(bw, params[i*h.NParams:(i+1)*h.NParams]); err != nil {
			return fmt.Errorf("write transform %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadLegacy parses the legacy format into out, in transform-major order,
// and returns the header. Values are whitespace separated; line breaks
// carry no meaning. The header must fit in out, and the stream must hold
// every value the header declares.
func ReadLegacy(r io.Reader, out []float64) (Header, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var dims [4]int
	for i := range dims {
		if !sc.Scan() {
			return Header{}, scanError(sc, "header")
		}
		n, err := strconv.Atoi(sc.Text())
		if err != nil || n < 0 {
			return Header{}, fmt.Errorf("%w: header value %q", ErrMalformed, sc.Text())
		}
		dims[i] = n
	}
	h := Header{NParams: dims[0], NTransforms: dims[1], Width: dims[2], Height: dims[3]}

	if h.NParams == 0 && h.NTransforms > 0 {
		return h, fmt.Errorf("%w: %d transforms of zero parameters", ErrMalformed, h.NTransforms)
	}
	if h.NTransforms != 0 && h.NParams > len(out)/h.NTransforms {
		return h, fmt.Errorf("%w: header declares %d×%d values, array holds %d",
			ErrHeaderMismatch, h.NTransforms, h.NParams, len(out))
	}
	total := h.NParams * h.NTransforms
	for i := 0; i < total; i++ {
		if !sc.Scan() {
			return h, scanError(sc, fmt.Sprintf("transform %d of %d", i/h.NParams+1, h.NTransforms))
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return h, fmt.Errorf("%w: value %q", ErrMalformed, sc.Text())
		}
		out[i] = v
	}
	return h, nil
}

func scanError(sc *bufio.Scanner, part string) error {
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", part, err)
	}
	return fmt.Errorf("%w: missing %s", ErrTruncated, part)
}

func createFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create transform file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close transform file: %w", cerr)
		}
	}()
	return write(f)
}

// SaveMatrices writes the matrix format to path. h.Width and h.Height
// are not stored.
func SaveMatrices(path string, h Header, params []float64, toMatrix ToMatrix) error {
	err := createFile(path, func(f *os.File) error {
		return WriteMatrices(f, h, params, toMatrix)
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":    "SaveMatrices",
		"path":        path,
		"nparams":     h.NParams,
		"ntransforms": h.NTransforms,
	}).Info("Transforms saved")
	return nil
}

// SaveLegacy writes the legacy format to path.
func SaveLegacy(path string, h Header, params []float64) error {
	err := createFile(path, func(f *os.File) error {
		return WriteLegacy(f, h, params)
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":    "SaveLegacy",
		"path":        path,
		"nparams":     h.NParams,
		"ntransforms": h.NTransforms,
	}).Info("Transforms saved")
	return nil
}

// LoadMatrices reads a matrix format file.
func LoadMatrices(path string) ([]Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transform file: %w", err)
	}
	defer f.Close()

	ms, err := ReadMatrices(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ms, nil
}

// LoadLegacy reads a legacy format file into out. nparams and ntransforms
// are the shape the caller expects; a header that disagrees with either
// returns ErrHeaderMismatch.
func LoadLegacy(path string, out []float64, nparams, ntransforms int) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "LoadLegacy",
			"path":     path,
			"error":    err.Error(),
		}).Error("Cannot open transform file")
		return Header{}, fmt.Errorf("open transform file: %w", err)
	}
	defer f.Close()

	h, err := ReadLegacy(f, out)
	if err != nil {
		return h, fmt.Errorf("%s: %w", path, err)
	}
	if h.NParams != nparams || h.NTransforms != ntransforms {
		return h, fmt.Errorf("%w: %s declares %d×%d, expected %d×%d",
			ErrHeaderMismatch, path, h.NTransforms, h.NParams, ntransforms, nparams)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "LoadLegacy",
		"path":        path,
		"nparams":     h.NParams,
		"ntransforms": h.NTransforms,
		"width":       h.Width,
		"height":      h.Height,
	}).Debug("Transforms loaded")
	return h, nil
}
