package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/logging"
)

type recordingEmitter struct {
	events []entity.Event
	err    error
}

func (r *recordingEmitter) Emit(_ context.Context, evt entity.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, evt)
	return nil
}

func TestRun_EmitsLifecycleEvents(t *testing.T) {
	em := &recordingEmitter{}
	err := NewRunner(em).Run(context.Background(), "lifecycle.js", `
		emit("ready");
		emit("showConfiguration", {});
		emit("webviewclosed", {response: "CANCELLED"});
	`)

	require.NoError(t, err)
	assert.Equal(t, []entity.Event{
		{Name: entity.EventReady},
		{Name: entity.EventShowConfiguration},
		{Name: entity.EventWebviewClosed, Response: "CANCELLED"},
	}, em.events)
}

func TestRun_CloseConfigurationEncodesObject(t *testing.T) {
	em := &recordingEmitter{}
	err := NewRunner(em).Run(context.Background(), "close.js", `
		closeConfiguration({backgroundColor: "1E90FF", bluetoothVibes: true});
	`)

	require.NoError(t, err)
	require.Len(t, em.events, 1)
	assert.Equal(t, entity.EventWebviewClosed, em.events[0].Name)
	assert.Equal(t,
		entity.EncodeResponse(`{"backgroundColor":"1E90FF","bluetoothVibes":true}`),
		em.events[0].Response)
}

func TestRun_ConsoleLogWritesInfoLine(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: zerolog.InfoLevel, Format: "json", Output: &buf})
	ctx := logging.WithContext(context.Background(), logger)

	err := NewRunner(&recordingEmitter{}).Run(ctx, "log.js", `console.log("hello", 42);`)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"hello 42"`)
	assert.Contains(t, buf.String(), `"component":"script"`)
}

func TestRun_EmitErrorSurfaces(t *testing.T) {
	em := &recordingEmitter{err: entity.ErrBusClosed}

	err := NewRunner(em).Run(context.Background(), "closed.js", `emit("ready");`)

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrBusClosed)
}

func TestRun_ScriptCanCatchEmitError(t *testing.T) {
	em := &recordingEmitter{err: entity.ErrBusClosed}

	err := NewRunner(em).Run(context.Background(), "catch.js", `
		try { emit("ready"); } catch (e) { console.log("caught"); }
	`)

	assert.NoError(t, err)
}

func TestRun_SyntaxError(t *testing.T) {
	err := NewRunner(&recordingEmitter{}).Run(context.Background(), "bad.js", `emit(`)

	assert.Error(t, err)
}

func TestRun_ContextCancelInterrupts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := NewRunner(&recordingEmitter{}).Run(ctx, "loop.js", `for (;;) {}`)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.js")
	require.NoError(t, os.WriteFile(path, []byte(`emit("ready")`), 0o600))
	em := &recordingEmitter{}

	require.NoError(t, NewRunner(em).RunFile(context.Background(), path))
	assert.Len(t, em.events, 1)

	assert.Error(t, NewRunner(em).RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.js")))
}
