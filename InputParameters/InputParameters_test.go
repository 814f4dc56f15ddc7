package InputParameters

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) (path string) {
	path = filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return
}

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: NS 3D MMS smoke test
Scale: 1
RAir: 287.1
Grid:
  Nx: 5
  Ny: 6
  Nz: 7
  Min: [0, 0, 0]
  Max: [1, 1, 0.5]
ParallelDegree: 4
`)
	var input InputParametersMMS
	require.NoError(t, input.Parse(fileInput))
	assert.Equal(t, "NS 3D MMS smoke test", input.Title)
	assert.Equal(t, 1, input.Scale)
	assert.Equal(t, 287.1, input.RAir)
	assert.Equal(t, [3]float64{1, 1, 0.5}, input.Grid.Max)
	require.NoError(t, input.Resolve())
	assert.Equal(t, DefaultGamma, input.Gamma)
	assert.Equal(t, 5, input.Grid.Nx)
	assert.Equal(t, 7, input.Grid.Nz)
	var buf bytes.Buffer
	input.Print(&buf)
	assert.Contains(t, buf.String(), "= R_air")
	assert.Contains(t, buf.String(), "[5 x 6 x 7]")
}

func TestResolveLegacyFiles(t *testing.T) {
	constants := writeFile(t, "constants.txt", `# gas model constants
R_air = 287.1
gamma = 1.4
`)
	caseFile := writeFile(t, "case.txt", "1\n")
	ip := &InputParametersMMS{ConstantsFile: constants, CaseFile: caseFile}
	require.NoError(t, ip.Resolve())
	assert.Equal(t, 287.1, ip.RAir)
	assert.Equal(t, 1, ip.Scale)
	assert.Equal(t, DefaultNPts, ip.Grid.Ny)
	assert.Equal(t, [3]float64{1, 1, 1}, ip.Grid.Max)
}

func TestResolveErrors(t *testing.T) {
	{ // No gas constant anywhere
		ip := &InputParametersMMS{}
		assert.True(t, errors.Is(ip.Resolve(), ErrMissingGasConstant))
	}
	{ // Constants file lacking R_air
		ip := &InputParametersMMS{ConstantsFile: writeFile(t, "constants.txt", "gamma = 1.4\n")}
		assert.True(t, errors.Is(ip.Resolve(), ErrMissingGasConstant))
	}
	{ // Unparseable values
		_, err := ReadGasConstant(writeFile(t, "constants.txt", "R_air = air\n"))
		assert.Error(t, err)
		_, err = ReadScale(writeFile(t, "case.txt", "smoke\n"))
		assert.Error(t, err)
		_, err = ReadScale(writeFile(t, "case.txt", ""))
		assert.Error(t, err)
		_, err = ReadScale(filepath.Join(t.TempDir(), "missing.txt"))
		assert.Error(t, err)
	}
	{ // Bad grid
		ip := &InputParametersMMS{RAir: 287.1, Grid: Grid{Nx: -1}}
		assert.Error(t, ip.Resolve())
	}
}

func TestReadScale(t *testing.T) {
	scale, err := ReadScale(writeFile(t, "case.txt", "  0  \nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, scale)
	scale, err = ReadScale(writeFile(t, "case.txt", "2"))
	require.NoError(t, err)
	assert.Equal(t, 2, scale)
}
