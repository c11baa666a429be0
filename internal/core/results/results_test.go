package results

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Compare(t *testing.T) {
	t1 := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	tests := []struct {
		name string
		a, b Result
		want int
	}{
		{"earlier before later", Result{SyncTime: t1}, Result{SyncTime: t2}, -1},
		{"later after earlier", Result{SyncTime: t2}, Result{SyncTime: t1}, 1},
		{"same time equal", Result{SyncTime: t1, Major: MajorFailed}, Result{SyncTime: t1}, 0},
		{"unset before set", Result{}, Result{SyncTime: t1}, -1},
		{"set after unset", Result{SyncTime: t1}, Result{}, 1},
		{"both unset equal", Result{}, Result{Major: MajorFailed}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, tt.want < 0, tt.a.Less(tt.b))
		})
	}
}

func TestResult_CloneIsDeep(t *testing.T) {
	orig := Result{
		SyncTime: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Targets: []TargetResult{
			{Name: "contacts", Local: ItemCounts{Added: 1}},
		},
	}

	c := orig.Clone()
	c.Targets[0].Name = "calendar"
	c.Targets[0].Local.Added = 99

	assert.Equal(t, "contacts", orig.Targets[0].Name)
	assert.Equal(t, 1, orig.Targets[0].Local.Added)
}

func TestResult_Totals(t *testing.T) {
	r := Result{
		Targets: []TargetResult{
			{Name: "contacts", Local: ItemCounts{Added: 1, Deleted: 2}, Remote: ItemCounts{Modified: 3}},
			{Name: "calendar", Local: ItemCounts{Added: 4}, Remote: ItemCounts{Added: 1, Modified: 1}},
		},
	}

	local, remote := r.Totals()
	assert.Equal(t, ItemCounts{Added: 5, Deleted: 2}, local)
	assert.Equal(t, ItemCounts{Added: 1, Modified: 4}, remote)
	assert.Equal(t, 7, local.Total())
}

func TestParseCodes(t *testing.T) {
	major, err := ParseMajorCode(" Success ")
	require.NoError(t, err)
	assert.Equal(t, MajorSuccess, major)

	minor, err := ParseMinorCode("connection-error")
	require.NoError(t, err)
	assert.Equal(t, MinorConnectionError, minor)

	_, err = ParseMajorCode("bogus")
	assert.Error(t, err)

	_, err = ParseMinorCode("bogus")
	assert.Error(t, err)
}

func TestCodeStrings(t *testing.T) {
	assert.Equal(t, "failed", MajorFailed.String())
	assert.Equal(t, "major(42)", MajorCode(42).String())
	assert.Equal(t, "item-failures", MinorItemFailures.String())
	assert.Equal(t, MinorCode(201), MinorItemFailures)
	assert.Equal(t, "minor(7)", MinorCode(7).String())
}
