package manufactured_solution

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomms/utils"
)

const RAir = 287.1

func TestEnvelope(t *testing.T) {
	{ // Full support
		ms, err := NewManufacturedSolution(0, RAir)
		require.NoError(t, err)
		for _, X := range [][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}, {1, 1, 1}, {-3, 7, 0.2}} {
			assert.Equal(t, 1.0, ms.Envelope(X[0], X[1], X[2]))
		}
	}
	{ // Localized support
		ms, err := NewManufacturedSolution(1, RAir)
		require.NoError(t, err)
		assert.Equal(t, 1.0, ms.Envelope(0.5, 0.5, 0.5))
		assert.True(t, near(math.Exp(-16*0.75), ms.Envelope(0, 0, 0)))
		// Monotone decay away from the centroid along each axis
		for dir := 0; dir < 3; dir++ {
			prev := ms.Envelope(0.5, 0.5, 0.5)
			for i := 1; i <= 10; i++ {
				X := [3]float64{0.5, 0.5, 0.5}
				X[dir] += 0.05 * float64(i)
				S := ms.Envelope(X[0], X[1], X[2])
				assert.Less(t, S, prev)
				prev = S
				X[dir] = 1 - X[dir] // symmetric about the centroid
				assert.True(t, near(S, ms.Envelope(X[0], X[1], X[2]), 1.e-14))
			}
		}
	}
}

func TestGetState(t *testing.T) {
	{ // Origin: every sine vanishes, cosines are one
		ms, err := NewManufacturedSolution(0, RAir)
		require.NoError(t, err)
		s := ms.GetState(0, 0, 0)
		assert.True(t, near(1.0-0.1+0.1+0.08+0.12, s.Rho))
		assert.True(t, near(1.2, s.Rho))
		assert.True(t, near(48.0, s.U))
		assert.True(t, near(104.0, s.V))
		assert.True(t, near(101.0, s.W))
		assert.True(t, near(1.8e5, s.P))
	}
	{ // Centroid values from the symbolic reference
		for _, scale := range []int{0, 1} {
			ms, err := NewManufacturedSolution(scale, RAir)
			require.NoError(t, err)
			s := ms.GetState(0.5, 0.5, 0.5)
			assert.True(t, nearVec(
				[]float64{s.Rho, s.U, s.V, s.W, s.P},
				[]float64{1.3097326784451275, 68.51427923877385, 94.19999651076037,
					82.94103467750145, 206729.49203080792}, 1.e-12))
		}
	}
	{ // Off-centroid values, scale changes the result
		ms0, err := NewManufacturedSolution(0, RAir)
		require.NoError(t, err)
		ms1, err := NewManufacturedSolution(2, RAir)
		require.NoError(t, err)
		s0, s1 := ms0.GetState(0.25, 0.75, 0.1), ms1.GetState(0.25, 0.75, 0.1)
		assert.True(t, nearVec(
			[]float64{s0.Rho, s0.U, s0.V, s0.W, s0.P},
			[]float64{1.3288289067473915, 71.88673840849182, 89.96602566777219,
				80.97858209347355, 216500.07824312456}, 1.e-12))
		assert.True(t, nearVec(
			[]float64{s1.Rho, s1.U, s1.V, s1.W, s1.P},
			[]float64{1.0034402274046939, 70.01973916844045, 89.99964455853367,
				80.01023798354291, 101218.8306854934}, 1.e-12))
		assert.NotEqual(t, s0, s1)
	}
}

func TestTemperature(t *testing.T) {
	for _, R := range []float64{1, 287.1, 296.8, 4124.2} {
		ms, err := NewManufacturedSolution(0, R)
		require.NoError(t, err)
		for _, X := range [][3]float64{{0, 0, 0}, {0.1, 0.9, 0.3}, {0.5, 0.5, 0.5}, {1, 1, 1}} {
			s := ms.GetState(X[0], X[1], X[2])
			assert.Equal(t, s.P/(s.Rho*R), s.T)
		}
	}
}

func TestRefFunction(t *testing.T) {
	ms, err := NewManufacturedSolution(0, RAir)
	require.NoError(t, err)
	ref := ms.RefFunction(0.2, 0.4, 0.6, 0)
	assert.Len(t, ref, len(FieldNames))
	for _, name := range FieldNames {
		_, ok := ref[name]
		assert.True(t, ok, name)
	}
	s := ms.GetState(0.2, 0.4, 0.6)
	assert.Equal(t, s.Rho, ref["rho"])
	assert.Equal(t, s.P, ref["p"])
	assert.Equal(t, s.T, ref["T"])
	assert.Equal(t, s.U, ref["vel.x"])
	assert.Equal(t, s.V, ref["vel.y"])
	assert.Equal(t, s.W, ref["vel.z"])
	// Steady fields, time is ignored
	assert.Equal(t, ref, ms.RefFunction(0.2, 0.4, 0.6, 1.e3))
	for _, name := range FieldNames {
		val, ok := s.Get(name)
		assert.True(t, ok)
		assert.Equal(t, ref[name], val)
	}
	_, ok := s.Get("rhoE")
	assert.False(t, ok)
}

func TestDeterminism(t *testing.T) {
	ms, err := NewManufacturedSolution(1, RAir)
	require.NoError(t, err)
	want := ms.GetState(0.3, 0.6, 0.9)
	var (
		wg  sync.WaitGroup
		got = make([]State, 16)
	)
	for n := range got {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				got[n] = ms.GetState(0.3, 0.6, 0.9)
			}
		}(n)
	}
	wg.Wait()
	for n := range got {
		assert.Equal(t, want, got[n])
	}
	assert.Equal(t, DefaultCoefficients(), ms.Coefficients())
}

func TestConfigurationErrors(t *testing.T) {
	for _, R := range []float64{0, -287.1, math.NaN(), math.Inf(1)} {
		ms, err := NewManufacturedSolution(0, R)
		assert.Nil(t, ms)
		assert.True(t, errors.Is(err, ErrInvalidGasConstant), fmt.Sprintf("R_air = %v", R))
	}
	ms, err := NewManufacturedSolution(0, RAir, 1.0)
	assert.Nil(t, ms)
	assert.True(t, errors.Is(err, ErrInvalidGamma))
}

func TestNonFiniteInput(t *testing.T) {
	ms, err := NewManufacturedSolution(0, RAir)
	require.NoError(t, err)
	s := ms.GetState(math.NaN(), 0.5, 0.5)
	assert.True(t, math.IsNaN(s.Rho))
	assert.True(t, math.IsNaN(s.T))
	// Coordinates outside the unit cube are still defined
	s = ms.GetState(-2, 3, 10)
	assert.True(t, utils.IsFinite([]float64{s.Rho, s.U, s.V, s.W, s.P, s.T}))
}

func TestGetStateC(t *testing.T) {
	ms, err := NewManufacturedSolution(0, RAir)
	require.NoError(t, err)
	Rho, RhoU, RhoV, RhoW, E := ms.GetStateC(0, 0, 0)
	assert.True(t, near(1.2, Rho))
	assert.True(t, near(1.2*48, RhoU))
	assert.True(t, near(1.2*104, RhoV))
	assert.True(t, near(1.2*101, RhoW))
	assert.True(t, near(1.8e5/0.4+0.5*1.2*(48*48+104*104+101*101), E))
}

func TestSinCosTable(t *testing.T) {
	c := DefaultCoefficients()
	pattern := func(fc FieldCoeffs) (s string) {
		for i, tm := range fc.Terms {
			if i != 0 {
				s += ","
			}
			s += tm.Fn.String()
		}
		return
	}
	assert.Equal(t, "sin,cos,cos,cos,sin,cos,sin", pattern(c.Rho))
	assert.Equal(t, "sin,cos,cos,cos,sin,cos,sin", pattern(c.U))
	assert.Equal(t, "sin,cos,cos,cos,sin,sin,cos", pattern(c.V))
	assert.Equal(t, "sin,cos,cos,cos,cos,sin,sin", pattern(c.W))
	assert.Equal(t, "cos,sin,sin,sin,sin,cos,cos", pattern(c.P))
	assert.Equal(t, AxisX|AxisY|AxisZ, c.P.Terms[TermXYZ].Axes)
	assert.Equal(t, AxisY|AxisZ, c.V.Terms[TermYZ].Axes)
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			fmt.Printf("Diff = %v, Left[%d] = %v, Right[%d] = %v\n", math.Abs(val-b[i]), i, val, i, b[i])
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	return utils.Near(a, b, tolI...)
}
