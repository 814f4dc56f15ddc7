package manufactured_solution

import "math"

type TrigFunc uint8

const (
	Sin TrigFunc = iota
	Cos
)

func (tf TrigFunc) Eval(phase float64) float64 {
	switch tf {
	case Cos:
		return math.Cos(phase)
	default:
		return math.Sin(phase)
	}
}

func (tf TrigFunc) String() string {
	if tf == Cos {
		return "cos"
	}
	return "sin"
}

// Axis is a bitmask of the coordinates multiplied into a term's phase
type Axis uint8

const (
	AxisX Axis = 1 << iota
	AxisY
	AxisZ
)

// Term ordering within FieldCoeffs.Terms
const (
	TermX = iota
	TermY
	TermZ
	TermXY
	TermXZ
	TermYZ
	TermXYZ
	NumTerms
)

var termAxes = [NumTerms]Axis{
	AxisX, AxisY, AxisZ,
	AxisX | AxisY, AxisX | AxisZ, AxisY | AxisZ,
	AxisX | AxisY | AxisZ,
}

type Term struct {
	Amplitude, Frequency float64
	Fn                   TrigFunc
	Axes                 Axis
}

// Phase is Frequency*pi*(product of the selected coordinates)/L^n, n being the
// number of coordinates in the product
func (tm Term) Phase(x, y, z, L float64) (phase float64) {
	var (
		denom = 1.
	)
	phase = tm.Frequency * math.Pi
	if tm.Axes&AxisX != 0 {
		phase *= x
		denom *= L
	}
	if tm.Axes&AxisY != 0 {
		phase *= y
		denom *= L
	}
	if tm.Axes&AxisZ != 0 {
		phase *= z
		denom *= L
	}
	phase /= denom
	return
}

type FieldCoeffs struct {
	Name  string
	Base  float64
	Terms [NumTerms]Term
}

func newFieldCoeffs(name string, base float64, amp, freq [NumTerms]float64,
	fn [NumTerms]TrigFunc) (fc FieldCoeffs) {
	fc = FieldCoeffs{
		Name: name,
		Base: base,
	}
	for i := 0; i < NumTerms; i++ {
		fc.Terms[i] = Term{
			Amplitude: amp[i],
			Frequency: freq[i],
			Fn:        fn[i],
			Axes:      termAxes[i],
		}
	}
	return
}

// Eval sums the envelope weighted trig terms onto the base value
func (fc FieldCoeffs) Eval(S, x, y, z, L float64) (f float64) {
	f = fc.Base
	for _, tm := range fc.Terms {
		f += S * tm.Amplitude * tm.Fn.Eval(tm.Phase(x, y, z, L))
	}
	return
}

type Coefficients struct {
	Rho, U, V, W, P FieldCoeffs
}

// DefaultCoefficients returns the subsonic case of Veluri, Roy and Luke,
// "Comprehensive code verification techniques for finite volume CFD codes",
// Computers & Fluids 2012, Appendix A. The sin/cos pattern differs per field
// and is part of the case definition.
func DefaultCoefficients() (c Coefficients) {
	c.Rho = newFieldCoeffs("rho", 1.0,
		[NumTerms]float64{0.15, -0.1, 0.1, 0.08, 0.05, 0.12, 0.1},
		[NumTerms]float64{0.75, 0.45, 0.8, 0.65, 0.75, 0.5, 0.2},
		[NumTerms]TrigFunc{Sin, Cos, Cos, Cos, Sin, Cos, Sin})
	c.U = newFieldCoeffs("vel.x", 70.0,
		[NumTerms]float64{7.0, -15.0, -10.0, 7.0, 4.0, -4.0, -2.0},
		[NumTerms]float64{0.5, 0.85, 0.4, 0.6, 0.8, 0.9, 0.5},
		[NumTerms]TrigFunc{Sin, Cos, Cos, Cos, Sin, Cos, Sin})
	c.V = newFieldCoeffs("vel.y", 90.0,
		[NumTerms]float64{-5.0, 10.0, 5.0, -11.0, -5.0, 5.0, 10.0},
		[NumTerms]float64{0.8, 0.8, 0.5, 0.9, 0.4, 0.6, 0.2},
		[NumTerms]TrigFunc{Sin, Cos, Cos, Cos, Sin, Sin, Cos})
	c.W = newFieldCoeffs("vel.z", 80.0,
		[NumTerms]float64{-10.0, 10.0, 12.0, -12.0, 11.0, 5.0, 20.0},
		[NumTerms]float64{0.85, 0.9, 0.5, 0.4, 0.8, 0.75, 0.3},
		[NumTerms]TrigFunc{Sin, Cos, Cos, Cos, Cos, Sin, Sin})
	c.P = newFieldCoeffs("p", 1.0e5,
		[NumTerms]float64{0.2e5, 0.5e5, 0.2e5, -0.25e5, -0.1e5, 0.1e5, 0.5e5},
		[NumTerms]float64{0.4, 0.45, 0.85, 0.75, 0.7, 0.8, 0.3},
		[NumTerms]TrigFunc{Cos, Sin, Sin, Sin, Sin, Cos, Cos})
	return
}
