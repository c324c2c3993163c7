package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/raddict/internal/testutil/testfile"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := testfile.Write(t, dir, "test.yaml", `
name: test_scenario
description: "Test scenario for validation"
files:
  dictionary: |
    VENDOR Acme 9
steps:
  - load: dictionary
  - buffer: "ATTRIBUTE X 1 bogustype"
    expect_error: INVALID_TYPE
  - free: true
assertions:
  - type: vendor_by_code
    code: 9
    absent: true
  - type: attribute_by_id
    code: 1
    vendor: 9
    expect: { name: X }
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, dir, scenario.Dir)
	assert.Equal(t, "VENDOR Acme 9\n", scenario.Files["dictionary"])
	require.Len(t, scenario.Steps, 3)
	assert.Equal(t, OpLoad, scenario.Steps[0].Op())
	assert.Equal(t, OpBuffer, scenario.Steps[1].Op())
	assert.Equal(t, "INVALID_TYPE", scenario.Steps[1].ExpectError)
	assert.Equal(t, OpFree, scenario.Steps[2].Op())

	require.Len(t, scenario.Assertions, 2)
	require.NotNil(t, scenario.Assertions[0].Code)
	assert.Equal(t, uint32(9), *scenario.Assertions[0].Code)
	assert.True(t, scenario.Assertions[0].Absent)
	assert.Equal(t, uint32(9), scenario.Assertions[1].Vendor)
	assert.Equal(t, "X", scenario.Assertions[1].Expect["name"])
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "scenario.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: a\ndescription: b\nsteps: [{free: true}]\nassertion: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: b\nsteps: [{free: true}]\nassertions: [{type: stats, expect: {values: 0}}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: a\nsteps: [{free: true}]\nassertions: [{type: stats, expect: {values: 0}}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: a\ndescription: b\nsteps: []\nassertions: [{type: stats, expect: {values: 0}}]\n",
			wantErr: "steps list is required",
		},
		{
			name:    "no assertions",
			yaml:    "name: a\ndescription: b\nsteps: [{free: true}]\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "empty step",
			yaml:    "name: a\ndescription: b\nsteps: [{expect_error: IO_FAILURE}]\nassertions: [{type: stats, expect: {values: 0}}]\n",
			wantErr: "steps[0]: exactly one of load, buffer or free is required",
		},
		{
			name:    "two ops in one step",
			yaml:    "name: a\ndescription: b\nsteps: [{load: d, free: true}]\nassertions: [{type: stats, expect: {values: 0}}]\n",
			wantErr: "steps[0]: exactly one of load, buffer or free is required",
		},
		{
			name:    "unknown error code",
			yaml:    "name: a\ndescription: b\nsteps: [{load: d, expect_error: BOOM}]\nassertions: [{type: stats, expect: {values: 0}}]\n",
			wantErr: `steps[0]: unknown error code "BOOM"`,
		},
		{
			name:    "free with expect_error",
			yaml:    "name: a\ndescription: b\nsteps: [{free: true, expect_error: IO_FAILURE}]\nassertions: [{type: stats, expect: {values: 0}}]\n",
			wantErr: "free cannot fail",
		},
		{
			name:    "escaping file name",
			yaml:    "name: a\ndescription: b\nfiles: {../x: y}\nsteps: [{free: true}]\nassertions: [{type: stats, expect: {values: 0}}]\n",
			wantErr: "must be a relative path inside the scenario",
		},
		{
			name:    "unknown assertion type",
			yaml:    "name: a\ndescription: b\nsteps: [{free: true}]\nassertions: [{type: final_state}]\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "lookup without name",
			yaml:    "name: a\ndescription: b\nsteps: [{free: true}]\nassertions: [{type: vendor_by_name}]\n",
			wantErr: "name is required for vendor_by_name",
		},
		{
			name:    "id lookup without code",
			yaml:    "name: a\ndescription: b\nsteps: [{free: true}]\nassertions: [{type: attribute_by_id, vendor: 9}]\n",
			wantErr: "code is required for attribute_by_id",
		},
		{
			name:    "value lookup without number",
			yaml:    "name: a\ndescription: b\nsteps: [{free: true}]\nassertions: [{type: value_by_attribute, attribute: Service-Type}]\n",
			wantErr: "number is required for value_by_attribute",
		},
		{
			name:    "stats without expect",
			yaml:    "name: a\ndescription: b\nsteps: [{free: true}]\nassertions: [{type: stats}]\n",
			wantErr: "expect is required for stats",
		},
		{
			name:    "absent with expect",
			yaml:    "name: a\ndescription: b\nsteps: [{free: true}]\nassertions: [{type: vendor_by_name, name: A, absent: true, expect: {code: 1}}]\n",
			wantErr: "absent and expect are mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_CodeZeroIsSet(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: a
description: b
steps: [{free: true}]
assertions:
  - type: vendor_by_code
    code: 0
    absent: true
`))
	require.NoError(t, err)
	require.NotNil(t, scenario.Assertions[0].Code)
	assert.Equal(t, uint32(0), *scenario.Assertions[0].Code)
}
