package verification

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/notargets/gomms/model_problems/NavierStokes3D/manufactured_solution"
)

var coordNames = [3]string{"x", "y", "z"}

func sampleHeader() (header []string) {
	header = append(header, coordNames[:]...)
	header = append(header, manufactured_solution.FieldNames...)
	return
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteSamples writes one CSV row per sample, headed by x,y,z and the field names
func WriteSamples(w io.Writer, samples []Sample) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write(sampleHeader()); err != nil {
		return
	}
	row := make([]string, 3+len(manufactured_solution.FieldNames))
	for _, s := range samples {
		for d := 0; d < 3; d++ {
			row[d] = formatFloat(s.X[d])
		}
		for i, name := range manufactured_solution.FieldNames {
			val, _ := s.Get(name)
			row[3+i] = formatFloat(val)
		}
		if err = cw.Write(row); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSamples reads a solution CSV with a header row. Columns are matched by
// name, x, y and z are required and any subset of the field columns may be
// present; absent fields are NaN and are not listed in fields.
func ReadSamples(r io.Reader) (samples []Sample, fields []string, err error) {
	var (
		records [][]string
		cols    = make(map[string]int)
	)
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	if records, err = cr.ReadAll(); err != nil {
		return
	}
	if len(records) == 0 {
		err = fmt.Errorf("solution file has no header")
		return
	}
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, name := range coordNames {
		if _, ok := cols[name]; !ok {
			err = fmt.Errorf("solution file is missing the %q column", name)
			return
		}
	}
	for _, name := range manufactured_solution.FieldNames {
		if _, ok := cols[name]; ok {
			fields = append(fields, name)
		}
	}
	samples = make([]Sample, 0, len(records)-1)
	for n, rec := range records[1:] {
		var (
			s   Sample
			val float64
		)
		get := func(name string) (f float64, err error) {
			if f, err = strconv.ParseFloat(rec[cols[name]], 64); err != nil {
				err = fmt.Errorf("row %d, column %q: %w", n+2, name, err)
			}
			return
		}
		for d, name := range coordNames {
			if s.X[d], err = get(name); err != nil {
				return
			}
		}
		s.State = manufactured_solution.State{
			Rho: math.NaN(), U: math.NaN(), V: math.NaN(), W: math.NaN(),
			P: math.NaN(), T: math.NaN(),
		}
		for _, name := range fields {
			if val, err = get(name); err != nil {
				return
			}
			s.State.Set(name, val)
		}
		samples = append(samples, s)
	}
	return
}
