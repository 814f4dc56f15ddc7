package InputParameters

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"gopkg.in/ini.v1"
)

const (
	// GasConstantKey is the assignment read from the legacy constants file
	GasConstantKey = "R_air"
	DefaultGamma   = 1.4
	DefaultNPts    = 11
)

var ErrMissingGasConstant = errors.New("no gas constant supplied")

type Grid struct {
	Nx  int        `yaml:"Nx"`
	Ny  int        `yaml:"Ny"`
	Nz  int        `yaml:"Nz"`
	Min [3]float64 `yaml:"Min"`
	Max [3]float64 `yaml:"Max"`
}

// Parameters obtained from the YAML input file
type InputParametersMMS struct {
	Title          string  `yaml:"Title"`
	Scale          int     `yaml:"Scale"`
	RAir           float64 `yaml:"RAir"`
	Gamma          float64 `yaml:"Gamma"`
	ConstantsFile  string  `yaml:"ConstantsFile"` // Legacy "R_air = ..." definitions
	CaseFile       string  `yaml:"CaseFile"`      // Legacy one line scale flag
	Grid           Grid    `yaml:"Grid"`
	ParallelDegree int     `yaml:"ParallelDegree"`
}

func (ip *InputParametersMMS) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersMMS) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Scale\n", ip.Scale)
	fmt.Fprintf(w, "%8.5f\t\t= R_air\n", ip.RAir)
	fmt.Fprintf(w, "%8.5f\t\t= Gamma\n", ip.Gamma)
	fmt.Fprintf(w, "[%d x %d x %d]\t\t= Grid\n", ip.Grid.Nx, ip.Grid.Ny, ip.Grid.Nz)
	fmt.Fprintf(w, "%v -> %v\t= Grid Extent\n", ip.Grid.Min, ip.Grid.Max)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Parallel Degree\n", ip.ParallelDegree)
}

// Resolve loads values from the legacy files, fills defaults and validates.
// Values read from the legacy files replace those already present.
func (ip *InputParametersMMS) Resolve() (err error) {
	if len(ip.ConstantsFile) != 0 {
		if ip.RAir, err = ReadGasConstant(ip.ConstantsFile); err != nil {
			return
		}
	}
	if len(ip.CaseFile) != 0 {
		if ip.Scale, err = ReadScale(ip.CaseFile); err != nil {
			return
		}
	}
	if ip.RAir == 0 {
		return fmt.Errorf("%w: set RAir or point ConstantsFile at a file defining %s",
			ErrMissingGasConstant, GasConstantKey)
	}
	if ip.Gamma == 0 {
		ip.Gamma = DefaultGamma
	}
	g := &ip.Grid
	for _, n := range []*int{&g.Nx, &g.Ny, &g.Nz} {
		if *n == 0 {
			*n = DefaultNPts
		}
		if *n < 1 {
			return fmt.Errorf("grid dimensions must be positive, have %d x %d x %d", g.Nx, g.Ny, g.Nz)
		}
	}
	if g.Min == g.Max {
		g.Min, g.Max = [3]float64{0, 0, 0}, [3]float64{1, 1, 1}
	}
	return
}

// ReadGasConstant reads a definitions file of "name = value" lines, as used by
// the flow solver's test cases, and returns the R_air entry
func ReadGasConstant(path string) (RAir float64, err error) {
	var (
		cfg *ini.File
	)
	if cfg, err = ini.Load(path); err != nil {
		return
	}
	sec := cfg.Section(ini.DefaultSection)
	if !sec.HasKey(GasConstantKey) {
		err = fmt.Errorf("%w: %s not defined in %s", ErrMissingGasConstant, GasConstantKey, path)
		return
	}
	if RAir, err = sec.Key(GasConstantKey).Float64(); err != nil {
		err = fmt.Errorf("parsing %s in %s: %w", GasConstantKey, path, err)
	}
	return
}

// ReadScale returns the integer scale flag on the first line of a case file
func ReadScale(path string) (scale int, err error) {
	var (
		f *os.File
	)
	if f, err = os.Open(path); err != nil {
		return
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err = sc.Err(); err == nil {
			err = fmt.Errorf("case file %s is empty", path)
		}
		return
	}
	if scale, err = strconv.Atoi(strings.TrimSpace(sc.Text())); err != nil {
		err = fmt.Errorf("parsing scale flag in %s: %w", path, err)
	}
	return
}
