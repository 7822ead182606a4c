package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "", want: LevelInfo},
		{in: "debug", want: LevelDebug},
		{in: "WARNING", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New("graphschema-test", "1.0.0")
	log.SetOutput(&buf)
	log.SetLevel(LevelWarn)

	log.Info("hidden")
	log.Debugf("hidden %d", 1)
	log.Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New("graphschema-test", "1.0.0")
	log.SetOutput(&buf)

	log.WithFields(map[string]string{"graph": "first"}).With("operation", "ensure_vertex_label").Info("done")

	assert.Contains(t, buf.String(), "done graph=first operation=ensure_vertex_label")
}

func TestSubscribe(t *testing.T) {
	log := New("graphschema-test", "1.0.0")
	log.DisableConsoleOutput()
	ch := log.Subscribe()

	log.Error("boom")

	select {
	case entry := <-ch:
		assert.Equal(t, "ERROR", entry.Level)
		assert.Equal(t, "boom", entry.Message)
	default:
		require.Fail(t, "expected a log entry")
	}
}
