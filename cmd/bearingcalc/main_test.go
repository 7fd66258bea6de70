package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Bearing/internal/calc/bearing"
	"Bearing/internal/calc/premium/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const laminatedJSON = `{
  "bearing_id": "P1-L",
  "a_mm": 300, "b_mm": 400, "te_mm": 10, "layers": 3, "ts_mm": 3,
  "shim_steel": "S275JR", "elastomer": "NR-G0.9",
  "fz_kn": 800, "fz_min_kn": 100, "vx_mm": 20, "alpha_a_mrad": 5,
  "load_type": "dynamic"
}`

func TestEval_Table(t *testing.T) {
	out, err := run(t, laminatedJSON, "eval", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "P1-L")
	assert.Regexp(t, `sigma_m\s+6\.667 MPa`, out)
	assert.Regexp(t, `min_compressive_stress\s+0\.8333\s+3\.0000\s+false\s+hard`, out)
	assert.Regexp(t, `OK\s+false \(advisories: 1\)`, out)
}

func TestEval_JSONAndReport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bearing.json")
	rep := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(in, []byte(laminatedJSON), 0o600))

	out, err := run(t, "", "eval", in, "--json")
	require.NoError(t, err)
	var res bearing.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "P1-L", res.BearingID)

	_, err = run(t, "", "eval", in, "--report", rep)
	require.NoError(t, err)
	text, err := os.ReadFile(rep)
	require.NoError(t, err)
	assert.Contains(t, string(text), "BEARING VERIFICATION REPORT")
}

func TestEval_Errors(t *testing.T) {
	_, err := run(t, `{"a_mm": 300, "unknown_field": 1}`, "eval", "-")
	assert.Error(t, err)

	_, err = run(t, strings.Replace(laminatedJSON, "NR-G0.9", "EPDM", 1), "eval", "-")
	assert.ErrorIs(t, err, bearing.ErrUnknownMaterial)

	_, err = run(t, "", "eval")
	assert.Error(t, err)
}

func TestMaterials(t *testing.T) {
	out, err := run(t, "", "materials")
	require.NoError(t, err)
	assert.Contains(t, out, "S355JR")
	assert.Contains(t, out, "LRB-G0.6")
	assert.Regexp(t, `NR-G1\.15\s+1\.15\s+2000`, out)
}

func TestBatchAndTemplate(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "template.xlsx")
	_, err := run(t, "", "template", "-o", tpl)
	require.NoError(t, err)
	_, err = os.Stat(tpl)
	require.NoError(t, err)

	var in bearing.Input
	require.NoError(t, json.Unmarshal([]byte(laminatedJSON), &in))
	bad := in
	bad.BearingID = "BAD"
	bad.LayerMM = 0
	data, err := importer.WriteInputs([]bearing.Input{in, bad})
	require.NoError(t, err)
	src := filepath.Join(dir, "in.xlsx")
	dst := filepath.Join(dir, "out.xlsx")
	require.NoError(t, os.WriteFile(src, data, 0o600))

	out, err := run(t, "", "batch", src, "-o", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "2 evaluated, 0 passed, 1 failed")
	assert.Contains(t, out, "non-positive dimension")

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
