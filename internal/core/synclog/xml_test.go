package synclog

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/hay-kot/synclog/internal/core/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, l *Log) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, l.Encode(&buf))
	return buf.String()
}

func decode(t *testing.T, doc string) *Log {
	t.Helper()
	l, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return l
}

// entryTimes parses a log document and returns the time attribute of every
// syncresults child in document order.
func entryTimes(t *testing.T, doc string) []time.Time {
	t.Helper()
	var raw logXML
	require.NoError(t, xml.Unmarshal([]byte(doc), &raw))
	return times(raw.Results)
}

func TestLog_MarshalEmpty(t *testing.T) {
	doc := encode(t, New("work"))

	assert.Contains(t, doc, `<synclog name="work">`)
	assert.Empty(t, entryTimes(t, doc))
}

func TestLog_MarshalSkipsSummaryWhenRetained(t *testing.T) {
	l := New("p")
	l.Record(success(1))
	l.Record(failure(2))
	l.Record(success(3))

	doc := encode(t, l)

	assert.Equal(t, []time.Time{at(1), at(2), at(3)}, entryTimes(t, doc))
}

func TestLog_MarshalSkipsSummaryWhenFirstRetained(t *testing.T) {
	l := New("p")
	l.Record(success(1))
	for i := 2; i <= MaxEntries; i++ {
		l.Record(failure(i))
	}

	doc := encode(t, l)

	assert.Equal(t, times(l.All()), entryTimes(t, doc))
}

func TestLog_MarshalIncludesEvictedSummary(t *testing.T) {
	l := New("p")
	l.Record(success(1))
	for i := 2; i <= 6; i++ {
		l.Record(failure(i))
	}

	doc := encode(t, l)

	want := append([]time.Time{at(1)}, times(l.All())...)
	assert.Equal(t, want, entryTimes(t, doc))
}

func TestLog_MarshalIncludesSummaryWhenRetainedEmpty(t *testing.T) {
	l := &Log{profile: "p"}
	r := success(1)
	l.lastSuccessful = &r

	doc := encode(t, l)

	assert.Equal(t, []time.Time{at(1)}, entryTimes(t, doc))
}

func TestLog_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		record []results.Result
	}{
		{"empty", nil},
		{"partial", []results.Result{success(1), failure(2)}},
		{"full of successes", []results.Result{success(1), success(2), success(3), success(4), success(5), success(6)}},
		{"evicted success", []results.Result{success(1), failure(2), failure(3), failure(4), failure(5), failure(6)}},
		{"no success", []results.Result{failure(1), failure(2), {Major: results.MajorSuccess}}},
		{"sub-second evicted success", []results.Result{
			{SyncTime: base.Add(200 * time.Millisecond), Major: results.MajorSuccess},
			{SyncTime: base.Add(400 * time.Millisecond), Major: results.MajorFailed},
			{SyncTime: base.Add(500 * time.Millisecond), Major: results.MajorFailed},
			{SyncTime: base.Add(600 * time.Millisecond), Major: results.MajorFailed},
			{SyncTime: base.Add(700 * time.Millisecond), Major: results.MajorFailed},
			{SyncTime: base.Add(800 * time.Millisecond), Major: results.MajorFailed},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := New("profile-" + tt.name)
			for _, r := range tt.record {
				orig.Record(r)
			}

			doc := encode(t, orig)
			got := decode(t, doc)

			assert.Equal(t, orig.ProfileName(), got.ProfileName())
			assert.Equal(t, times(orig.All()), times(got.All()))

			wantBest, wantOK := orig.LastSuccessful()
			gotBest, gotOK := got.LastSuccessful()
			require.Equal(t, wantOK, gotOK)
			assert.True(t, wantBest.SyncTime.Equal(gotBest.SyncTime))

			assert.Equal(t, doc, encode(t, got), "re-encoding must be stable")

			again := decode(t, encode(t, got))
			againBest, againOK := again.LastSuccessful()
			require.Equal(t, wantOK, againOK)
			assert.True(t, wantBest.SyncTime.Equal(againBest.SyncTime))
		})
	}
}

func TestLog_EncodeKeepsSubSecondTimes(t *testing.T) {
	l := New("p")
	l.Record(results.Result{SyncTime: base.Add(250 * time.Millisecond), Major: results.MajorSuccess})

	doc := encode(t, l)
	assert.Contains(t, doc, `time="2024-01-15T10:00:00.25Z"`)

	last, ok := decode(t, doc).Last()
	require.True(t, ok)
	assert.True(t, base.Add(250*time.Millisecond).Equal(last.SyncTime))
}

func TestDecode_HydratesThroughRecord(t *testing.T) {
	doc := `<synclog name="work">
  <syncresults time="2024-01-15T10:01:00Z" majorcode="0" minorcode="0"/>
  <ignored/>
  <syncresults time="2024-01-15T10:02:00Z" majorcode="1" minorcode="207"/>
  <syncresults time="2024-01-15T10:03:00Z" majorcode="1" minorcode="207"/>
  <syncresults time="2024-01-15T10:04:00Z" majorcode="1" minorcode="207"/>
  <syncresults time="2024-01-15T10:05:00Z" majorcode="1" minorcode="207"/>
  <syncresults time="2024-01-15T10:06:00Z" majorcode="1" minorcode="207"/>
  <syncresults time="2024-01-15T10:07:00Z" majorcode="2" minorcode="206"/>
</synclog>`

	l := decode(t, doc)

	assert.Equal(t, "work", l.ProfileName())
	assert.Equal(t, []time.Time{at(3), at(4), at(5), at(6), at(7)}, times(l.All()))

	best, ok := l.LastSuccessful()
	require.True(t, ok)
	assert.True(t, at(1).Equal(best.SyncTime))

	last, _ := l.Last()
	assert.Equal(t, results.MajorCancelled, last.Major)
}

func TestDecode_UnsetTimeNeverBest(t *testing.T) {
	doc := `<synclog name="work">
  <syncresults majorcode="0" minorcode="0"/>
  <syncresults majorcode="0" minorcode="0" scheduled="true"/>
</synclog>`

	l := decode(t, doc)

	assert.Equal(t, 2, l.Len())
	last, ok := l.Last()
	require.True(t, ok)
	assert.False(t, last.HasSyncTime())
	_, ok = l.LastSuccessful()
	assert.False(t, ok)

	assert.Len(t, entryTimes(t, encode(t, l)), 2)
}

func TestDecode_EqualTimeSuccessKeepsFirst(t *testing.T) {
	doc := `<synclog name="work">
  <syncresults time="2024-01-15T10:01:00Z" majorcode="0" minorcode="0" targetid="first"/>
  <syncresults time="2024-01-15T10:01:00Z" majorcode="0" minorcode="0" targetid="second"/>
</synclog>`

	best, ok := decode(t, doc).LastSuccessful()
	require.True(t, ok)
	assert.Equal(t, "first", best.TargetID)
}

func TestDecode_NoEntries(t *testing.T) {
	l := decode(t, `<synclog name="empty"><other/></synclog>`)

	assert.Equal(t, "empty", l.ProfileName())
	assert.Equal(t, 0, l.Len())
	_, ok := l.LastSuccessful()
	assert.False(t, ok)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"wrong root", `<profile name="x"/>`},
		{"malformed result", `<synclog name="x"><syncresults time="never" majorcode="0" minorcode="0"/></synclog>`},
		{"empty input", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}
