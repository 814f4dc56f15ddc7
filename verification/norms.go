package verification

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/gomms/model_problems/NavierStokes3D/manufactured_solution"
)

var ErrNoSamples = errors.New("no samples to compare")

type NormKind uint8

const (
	L1 NormKind = iota
	L2
	LInf
)

func (nk NormKind) String() string {
	switch nk {
	case L1:
		return "L1"
	case L2:
		return "L2"
	default:
		return "Linf"
	}
}

// Norms of the pointwise error, L1 and L2 are normalized by the point count
type Norms struct {
	L1, L2, LInf float64
}

func (n Norms) Get(kind NormKind) float64 {
	switch kind {
	case L1:
		return n.L1
	case L2:
		return n.L2
	default:
		return n.LInf
	}
}

// ComputeNorms compares solver output against the reference at the sampled
// coordinates, for each of the named fields
func ComputeNorms(ms *manufactured_solution.ManufacturedSolution, samples []Sample,
	fields []string) (norms map[string]Norms, err error) {
	var (
		N = len(samples)
	)
	if N == 0 {
		err = ErrNoSamples
		return
	}
	diffs := make(map[string][]float64, len(fields))
	for _, name := range fields {
		if _, ok := (manufactured_solution.State{}).Get(name); !ok {
			err = fmt.Errorf("unknown field %q", name)
			return
		}
		diffs[name] = make([]float64, N)
	}
	for i, s := range samples {
		ref := ms.GetState(s.X[0], s.X[1], s.X[2])
		for _, name := range fields {
			got, _ := s.Get(name)
			want, _ := ref.Get(name)
			diffs[name][i] = got - want
		}
	}
	norms = make(map[string]Norms, len(fields))
	for name, d := range diffs {
		norms[name] = Norms{
			L1:   floats.Norm(d, 1) / float64(N),
			L2:   floats.Norm(d, 2) / math.Sqrt(float64(N)),
			LInf: floats.Norm(d, math.Inf(1)),
		}
	}
	return
}

type FieldSummary struct {
	Min, Max, Mean float64
}

// Summarize returns the range and mean of every field over the samples
func Summarize(samples []Sample) (summary map[string]FieldSummary, err error) {
	if len(samples) == 0 {
		err = ErrNoSamples
		return
	}
	summary = make(map[string]FieldSummary)
	vals := make([]float64, len(samples))
	for _, name := range manufactured_solution.FieldNames {
		for i, s := range samples {
			vals[i], _ = s.Get(name)
		}
		summary[name] = FieldSummary{
			Min:  floats.Min(vals),
			Max:  floats.Max(vals),
			Mean: stat.Mean(vals, nil),
		}
	}
	return
}
