package diagnostic

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLog(buf *bytes.Buffer) *Log {
	return NewLog("convert", slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestLog_BranchAndLevel(t *testing.T) {
	var buf bytes.Buffer

	root := newTestLog(&buf)
	blk := root.Branch("block Sample")
	obj := blk.Branch("object S1")

	assert.Equal(t, slog.LevelDebug, root.Level())

	obj.Log(slog.LevelWarn, "odd value")
	assert.Equal(t, slog.LevelWarn, root.Level())

	blk.Logf(slog.LevelError, "column %d invalid", 3)
	assert.Equal(t, slog.LevelError, root.Level())
	assert.Equal(t, slog.LevelWarn, obj.Level())

	assert.Equal(t, "convert > block Sample > object S1", obj.Path())
	assert.Contains(t, buf.String(), "column 3 invalid")
	assert.Contains(t, buf.String(), "scope=\"convert > block Sample\"")
}

func TestLog_PrintSkipsQuietBranches(t *testing.T) {
	var buf bytes.Buffer

	root := newTestLog(&buf)
	root.Branch("quiet").Log(slog.LevelInfo, "fine")
	root.Branch("loud").Log(slog.LevelError, "broken")

	var out bytes.Buffer
	root.Print(&out, slog.LevelWarn)

	assert.Contains(t, out.String(), "loud")
	assert.Contains(t, out.String(), "ERROR: broken")
	assert.NotContains(t, out.String(), "quiet")
}
