package auditlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(ts time.Time) Entry {
	return Entry{
		Timestamp:  ts,
		Source:     "postings.csv",
		EntryCount: 4,
		Valid:      false,
		Errors:     2,
		Warnings:   1,
	}
}

func TestAppendRead(t *testing.T) {
	root := t.TempDir()
	ts := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, Append(root, []Entry{sample(ts)}))
	require.NoError(t, Append(root, []Entry{sample(ts.Add(time.Hour))}))

	got, err := Read(root)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, ts, got[0].Timestamp)
	assert.Equal(t, "postings.csv", got[0].Source)
	assert.Equal(t, 4, got[0].EntryCount)
	assert.False(t, got[0].Valid)
	assert.Equal(t, 2, got[0].Errors)
	assert.Equal(t, 1, got[0].Warnings)
	assert.Equal(t, ts.Add(time.Hour), got[1].Timestamp)
}

func TestRead_Missing(t *testing.T) {
	got, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppend_WritesHeaderOnce(t *testing.T) {
	root := t.TempDir()
	ts := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, Append(root, []Entry{sample(ts)}))
	require.NoError(t, Append(root, []Entry{sample(ts)}))

	data, err := os.ReadFile(filepath.Join(root, "logs", "validation-log.csv"))
	require.NoError(t, err)

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 3, lines) // header + 2 rows
}

func TestUnmarshalEntry_BadRow(t *testing.T) {
	_, err := UnmarshalEntry([]string{"not-a-time", "src", "1", "true", "0", "0"})
	require.Error(t, err)

	_, err = UnmarshalEntry([]string{"too", "short"})
	require.Error(t, err)
}
