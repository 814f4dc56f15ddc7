package verification

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
)

var normsHeader = []string{"title", "npts", "order", "field", "L1", "L2", "Linf"}

// ConvergenceStudy holds error norms for one case on a sequence of grids
type ConvergenceStudy struct {
	Title string
	Order int
	norms map[int]map[string]Norms // keyed by number of points, then field
}

func NewConvergenceStudy(title string, order int) *ConvergenceStudy {
	return &ConvergenceStudy{
		Title: title,
		Order: order,
		norms: make(map[int]map[string]Norms),
	}
}

func (cs *ConvergenceStudy) Add(numPTS int, field string, n Norms) {
	if _, ok := cs.norms[numPTS]; !ok {
		cs.norms[numPTS] = make(map[string]Norms)
	}
	cs.norms[numPTS][field] = n
}

// NumPTS returns the grid sizes in increasing order
func (cs *ConvergenceStudy) NumPTS() (npts []int) {
	for n := range cs.norms {
		npts = append(npts, n)
	}
	sort.Ints(npts)
	return
}

// Fields returns the field names present on every grid, sorted
func (cs *ConvergenceStudy) Fields() (fields []string) {
	counts := make(map[string]int)
	for _, fm := range cs.norms {
		for name := range fm {
			counts[name]++
		}
	}
	for name, c := range counts {
		if c == len(cs.norms) {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return
}

// ObservedOrders returns the order of accuracy between each pair of successive
// grids, p = log(e_coarse/e_fine) / log(h_coarse/h_fine) with h = N^(-1/3)
func (cs *ConvergenceStudy) ObservedOrders(field string, kind NormKind) (orders []float64, err error) {
	npts := cs.NumPTS()
	if len(npts) < 2 {
		err = fmt.Errorf("study %q needs at least two grids, has %d", cs.Title, len(npts))
		return
	}
	for i := 0; i < len(npts)-1; i++ {
		nc, okc := cs.norms[npts[i]][field]
		nf, okf := cs.norms[npts[i+1]][field]
		if !okc || !okf {
			err = fmt.Errorf("study %q has no %s norms for every grid", cs.Title, field)
			return
		}
		hc := math.Pow(float64(npts[i]), -1./3.)
		hf := math.Pow(float64(npts[i+1]), -1./3.)
		orders = append(orders, math.Log(nc.Get(kind)/nf.Get(kind))/math.Log(hc/hf))
	}
	return
}

// WriteNorms writes rows of title,npts,order,field,L1,L2,Linf
func WriteNorms(w io.Writer, title string, order, numPTS int, norms map[string]Norms, header bool) (err error) {
	cw := csv.NewWriter(w)
	if header {
		if err = cw.Write(normsHeader); err != nil {
			return
		}
	}
	names := make([]string, 0, len(norms))
	for name := range norms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n := norms[name]
		if err = cw.Write([]string{title, strconv.Itoa(numPTS), strconv.Itoa(order), name,
			formatFloat(n.L1), formatFloat(n.L2), formatFloat(n.LInf)}); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadStudies groups norm rows into studies keyed by title and order
func ReadStudies(r io.Reader) (studies map[string]*ConvergenceStudy, err error) {
	var (
		records [][]string
		ok      bool
		cs      *ConvergenceStudy
	)
	studies = make(map[string]*ConvergenceStudy)
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	if records, err = cr.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 && rec[0] == normsHeader[0] {
			continue
		}
		if len(rec) != len(normsHeader) {
			err = fmt.Errorf("row %d: want %d columns, have %d", i+1, len(normsHeader), len(rec))
			return
		}
		var (
			title, ntxt, field = rec[0], rec[2], rec[3]
			npts, order        int
			n                  Norms
		)
		if npts, err = strconv.Atoi(rec[1]); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if order, err = strconv.Atoi(ntxt); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		for j, dst := range []*float64{&n.L1, &n.L2, &n.LInf} {
			if *dst, err = strconv.ParseFloat(rec[4+j], 64); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		combTitle := title + "/" + ntxt
		if cs, ok = studies[combTitle]; !ok {
			cs = NewConvergenceStudy(title, order)
			studies[combTitle] = cs
		}
		cs.Add(npts, field, n)
	}
	return
}
