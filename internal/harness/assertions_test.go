package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/raddict/internal/dictionary"
	"github.com/roach88/raddict/internal/store"
	"github.com/roach88/raddict/internal/testutil"
)

func newAssertionContext(t *testing.T, content string) *AssertionContext {
	t.Helper()
	d := dictionary.New(dictionary.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, d.LoadBuffer([]byte(content)))
	return &AssertionContext{Dict: d, Ctx: context.Background()}
}

const assertionFixture = `VENDOR Acme 9
ATTRIBUTE Service-Type 6 integer
ATTRIBUTE Acme-Thing 1 ipaddr Acme
VALUE Service-Type Login-User 1
`

func TestEvaluate_Lookups(t *testing.T) {
	actx := newAssertionContext(t, assertionFixture)

	passing := []Assertion{
		{Type: AssertAttributeByName, Name: "SERVICE-TYPE", Expect: map[string]any{"code": 6, "type": "integer"}},
		{Type: AssertAttributeByID, Code: u32(1), Vendor: 9, Expect: map[string]any{"name": "Acme-Thing", "type": "ipaddr"}},
		{Type: AssertAttributeByID, Code: u32(1), Absent: true},
		{Type: AssertValueByName, Name: "login-user", Expect: map[string]any{"attribute": "Service-Type", "number": 1}},
		{Type: AssertValueByAttribute, Attribute: "Service-Type", Number: u32(1), Expect: map[string]any{"name": "Login-User"}},
		{Type: AssertValueByAttribute, Attribute: "service-type", Number: u32(1), Absent: true},
		{Type: AssertVendorByName, Name: "acme", Expect: map[string]any{"code": 9}},
		{Type: AssertVendorByCode, Code: u32(9), Expect: map[string]any{"name": "Acme"}},
		{Type: AssertVendorByCode, Code: u32(311), Absent: true},
		{Type: AssertStats, Expect: map[string]any{"attributes": 2, "values": 1, "vendors": 1}},
	}

	for _, a := range passing {
		assert.NoError(t, evaluate(actx, a), "%s %+v", a.Type, a)
	}
}

func TestEvaluate_NotFound(t *testing.T) {
	actx := newAssertionContext(t, assertionFixture)

	err := evaluate(actx, Assertion{Type: AssertVendorByName, Name: "Cisco"})
	require.Error(t, err)

	assertErr, ok := err.(*AssertionError)
	require.True(t, ok)
	assert.Equal(t, AssertVendorByName, assertErr.Type)
	assert.Equal(t, `VendorByName("Cisco") found`, assertErr.Expected)
	assert.Equal(t, "not found", assertErr.Actual)
}

func TestEvaluate_UnexpectedlyFound(t *testing.T) {
	actx := newAssertionContext(t, assertionFixture)

	err := evaluate(actx, Assertion{Type: AssertVendorByCode, Code: u32(9), Absent: true})
	require.Error(t, err)

	assertErr, ok := err.(*AssertionError)
	require.True(t, ok)
	assert.Equal(t, "VendorByCode(9) not found", assertErr.Expected)
	assert.Equal(t, "found {code=9 name=Acme}", assertErr.Actual)
}

func TestEvaluate_FieldMismatch(t *testing.T) {
	actx := newAssertionContext(t, assertionFixture)

	err := evaluate(actx, Assertion{Type: AssertAttributeByName, Name: "Acme-Thing", Expect: map[string]any{"vendor": 0}})
	require.Error(t, err)

	assertErr, ok := err.(*AssertionError)
	require.True(t, ok)
	assert.Equal(t, `AttributeByName("Acme-Thing") field "vendor" = 0`, assertErr.Expected)
	assert.Equal(t, `AttributeByName("Acme-Thing") field "vendor" = 9`, assertErr.Actual)
}

func TestEvaluate_UnknownField(t *testing.T) {
	actx := newAssertionContext(t, assertionFixture)

	err := evaluate(actx, Assertion{Type: AssertVendorByName, Name: "Acme", Expect: map[string]any{"enterprise": 9}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "enterprise" to exist`)
}

func TestEvaluate_Journal(t *testing.T) {
	actx := newAssertionContext(t, assertionFixture)

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	actx.Store = st

	_, err = st.WriteLoad(actx.Ctx, store.LoadRecord{DictID: "d", Source: "memory", OK: true})
	require.NoError(t, err)
	_, err = st.WriteLoad(actx.Ctx, store.LoadRecord{DictID: "d", Source: "memory", ErrorCode: "IO_FAILURE"})
	require.NoError(t, err)

	assert.NoError(t, evaluate(actx, Assertion{Type: AssertJournal, Expect: map[string]any{"loads": 2, "ok": 1, "failed": 1}}))
	assert.Error(t, evaluate(actx, Assertion{Type: AssertJournal, Expect: map[string]any{"failed": 0}}))
}

func TestEvaluateAssertions_MissingContext(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{{Type: AssertStats, Expect: map[string]any{"values": 0}}}, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires a dictionary")

	actx := newAssertionContext(t, "")
	errs = EvaluateAssertions(NewResult(), []Assertion{{Type: AssertJournal, Expect: map[string]any{"loads": 0}}}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires a load journal")
}

func TestAssertionError_IncludesSteps(t *testing.T) {
	actx := newAssertionContext(t, "")
	result := NewResult()
	result.AddStep(StepResult{Index: 1, Op: OpFree})

	errs := EvaluateAssertions(result, []Assertion{{Type: AssertVendorByName, Name: "Acme"}}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Assertion failed: vendor_by_name")
	assert.Contains(t, errs[0], "Steps:\n  [1] free: ok [attributes=0 values=0 vendors=0]")
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		expected any
		actual   any
		want     bool
	}{
		{1, uint32(1), true},
		{int64(9), 9, true},
		{float64(3), uint32(3), true},
		{1.5, uint32(1), false},
		{"1", uint32(1), false},
		{"integer", "integer", true},
		{"Integer", "integer", false},
		{true, true, true},
		{nil, nil, true},
		{nil, 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, valuesEqual(tt.expected, tt.actual), "%#v vs %#v", tt.expected, tt.actual)
	}
}
