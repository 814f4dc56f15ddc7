package verification

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gomms/model_problems/NavierStokes3D/manufactured_solution"
	"github.com/notargets/gomms/utils"
)

// Grid is a structured lattice of N[d] points per direction spanning [Min, Max]
type Grid struct {
	N        [3]int
	Min, Max [3]float64
}

func NewGrid(Nx, Ny, Nz int, Min, Max [3]float64) (g Grid, err error) {
	if Nx < 1 || Ny < 1 || Nz < 1 {
		err = fmt.Errorf("grid dimensions must be positive, have %d x %d x %d", Nx, Ny, Nz)
		return
	}
	for d := 0; d < 3; d++ {
		if !utils.IsFinite([]float64{Min[d], Max[d]}) {
			err = fmt.Errorf("grid extent must be finite, have %v -> %v", Min, Max)
			return
		}
	}
	g = Grid{N: [3]int{Nx, Ny, Nz}, Min: Min, Max: Max}
	return
}

func (g Grid) NumPoints() int {
	return g.N[0] * g.N[1] * g.N[2]
}

// Coordinates returns the evenly spaced coordinates along each direction, a
// direction with a single point sits at Min
func (g Grid) Coordinates() (C [3][]float64) {
	for d := 0; d < 3; d++ {
		C[d] = make([]float64, g.N[d])
		if g.N[d] == 1 {
			C[d][0] = g.Min[d]
			continue
		}
		floats.Span(C[d], g.Min[d], g.Max[d])
	}
	return
}

// Point returns the coordinates of linear index ind, x varies fastest
func (g Grid) Point(C [3][]float64, ind int) (X [3]float64) {
	var (
		nx, ny = g.N[0], g.N[1]
		i      = ind % nx
		j      = (ind / nx) % ny
		k      = ind / (nx * ny)
	)
	X = [3]float64{C[0][i], C[1][j], C[2][k]}
	return
}

type Sample struct {
	X [3]float64
	manufactured_solution.State
}

// SampleGrid evaluates the reference solution at every grid point, splitting the
// points across ParallelDegree goroutines
func SampleGrid(ms *manufactured_solution.ManufacturedSolution, g Grid, ParallelDegree int) (samples []Sample) {
	var (
		Npts = g.NumPoints()
		C    = g.Coordinates()
		wg   = sync.WaitGroup{}
	)
	if ParallelDegree < 1 {
		ParallelDegree = utils.DefaultParallelDegree(Npts)
	}
	pm := utils.NewPartitionMap(ParallelDegree, Npts)
	log.WithFields(log.Fields{
		"points":         Npts,
		"parallelDegree": pm.ParallelDegree,
		"scale":          ms.Scale,
	}).Debug("sampling manufactured solution")
	samples = make([]Sample, Npts)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			for ind := kMin; ind < kMax; ind++ {
				X := g.Point(C, ind)
				samples[ind] = Sample{X: X, State: ms.GetState(X[0], X[1], X[2])}
			}
		}(np)
	}
	wg.Wait()
	return
}
