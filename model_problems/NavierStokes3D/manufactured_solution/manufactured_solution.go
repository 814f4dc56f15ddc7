package manufactured_solution

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/gomms/utils"
)

const (
	// DomainLength is the edge length of the unit cube the case is defined on
	DomainLength = 1.0
	// EnvelopeDecay is the Gaussian exponent factor of the localized envelope
	EnvelopeDecay = 16.0
)

var (
	ErrInvalidGasConstant = errors.New("gas constant R_air must be positive and finite")
	ErrInvalidGamma       = errors.New("ratio of specific heats must be greater than one")
)

// Field names used as keys of a State map, matching the flow solver's
// variable naming
const (
	FieldRho  = "rho"
	FieldP    = "p"
	FieldT    = "T"
	FieldVelX = "vel.x"
	FieldVelY = "vel.y"
	FieldVelZ = "vel.z"
)

var FieldNames = []string{FieldRho, FieldP, FieldT, FieldVelX, FieldVelY, FieldVelZ}

type State struct {
	Rho, U, V, W, P, T float64
}

func (s State) Map() (m map[string]float64) {
	m = map[string]float64{
		FieldRho:  s.Rho,
		FieldP:    s.P,
		FieldT:    s.T,
		FieldVelX: s.U,
		FieldVelY: s.V,
		FieldVelZ: s.W,
	}
	return
}

// Get returns the named field, ok is false for an unknown name
func (s State) Get(field string) (val float64, ok bool) {
	ok = true
	switch field {
	case FieldRho:
		val = s.Rho
	case FieldP:
		val = s.P
	case FieldT:
		val = s.T
	case FieldVelX:
		val = s.U
	case FieldVelY:
		val = s.V
	case FieldVelZ:
		val = s.W
	default:
		ok = false
	}
	return
}

func (s *State) Set(field string, val float64) (ok bool) {
	ok = true
	switch field {
	case FieldRho:
		s.Rho = val
	case FieldP:
		s.P = val
	case FieldT:
		s.T = val
	case FieldVelX:
		s.U = val
	case FieldVelY:
		s.V = val
	case FieldVelZ:
		s.W = val
	default:
		ok = false
	}
	return
}

// ManufacturedSolution is immutable after construction and safe for
// concurrent use.
type ManufacturedSolution struct {
	Scale       int
	RAir, Gamma float64
	L           float64
	coeffs      Coefficients
}

func NewManufacturedSolution(scale int, RAir float64, GammaO ...float64) (ms *ManufacturedSolution, err error) {
	var (
		Gamma = 1.4
	)
	if len(GammaO) > 0 {
		Gamma = GammaO[0]
	}
	if !(RAir > 0) || math.IsInf(RAir, 0) {
		err = fmt.Errorf("%w: R_air = %v", ErrInvalidGasConstant, RAir)
		return
	}
	if !(Gamma > 1) || math.IsInf(Gamma, 0) {
		err = fmt.Errorf("%w: gamma = %v", ErrInvalidGamma, Gamma)
		return
	}
	ms = &ManufacturedSolution{
		Scale:  scale,
		RAir:   RAir,
		Gamma:  Gamma,
		L:      DomainLength,
		coeffs: DefaultCoefficients(),
	}
	return
}

func (ms *ManufacturedSolution) Coefficients() Coefficients {
	return ms.coeffs
}

// Envelope is 1 everywhere for scale 0, otherwise a Gaussian bump centered on
// the domain centroid that confines the perturbation for the smoke test
func (ms *ManufacturedSolution) Envelope(x, y, z float64) (S float64) {
	if ms.Scale == 0 {
		return 1.0
	}
	var (
		L  = ms.L
		hL = L / 2
	)
	r2 := utils.POW(x-hL, 2) + utils.POW(y-hL, 2) + utils.POW(z-hL, 2)
	S = math.Exp(-EnvelopeDecay * r2 / (L * L))
	return
}

func (ms *ManufacturedSolution) GetState(x, y, z float64) (s State) {
	var (
		c = &ms.coeffs
		L = ms.L
		S = ms.Envelope(x, y, z)
	)
	s.Rho = c.Rho.Eval(S, x, y, z, L)
	s.U = c.U.Eval(S, x, y, z, L)
	s.V = c.V.Eval(S, x, y, z, L)
	s.W = c.W.Eval(S, x, y, z, L)
	s.P = c.P.Eval(S, x, y, z, L)
	s.T = s.P / (s.Rho * ms.RAir)
	return
}

// RefFunction is the reference used by the verification harness, t is
// accepted for interface compatibility, the fields are steady
func (ms *ManufacturedSolution) RefFunction(x, y, z, t float64) map[string]float64 {
	return ms.GetState(x, y, z).Map()
}

func (ms *ManufacturedSolution) GetStateC(x, y, z float64) (Rho, RhoU, RhoV, RhoW, E float64) {
	var (
		ooGM1 = 1. / (ms.Gamma - 1.)
	)
	s := ms.GetState(x, y, z)
	q := 0.5 * s.Rho * (s.U*s.U + s.V*s.V + s.W*s.W)
	Rho, RhoU, RhoV, RhoW, E = s.Rho, s.Rho*s.U, s.Rho*s.V, s.Rho*s.W, s.P*ooGM1+q
	return
}
