package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briwestervelt/formal/internal/domain/build"
	"github.com/briwestervelt/formal/internal/domain/entity"
)

func TestWriteEncoding_FullPayload(t *testing.T) {
	var out bytes.Buffer
	payload := `{"backgroundColor":"1E90FF","tickColor":"000000","hourColor":"FF0000","minuteColor":"00FF00","dotColor":"0000FF","dateColor":"FFFFFF","bluetoothVibes":true}`

	require.NoError(t, writeEncoding(context.Background(), &out, payload))

	text := out.String()
	assert.Contains(t, text, "response:   "+entity.EncodeResponse(payload))
	assert.Contains(t, text, `"backgroundColor":2003199`)
	assert.Contains(t, text, `"bluetoothVibes":true`)
	assert.Contains(t, text, "(75 bytes)")
}

func TestWriteEncoding_NoBackground(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, writeEncoding(context.Background(), &out, `{"tickColor":"000000"}`))

	assert.Contains(t, out.String(), "message:    none")
	assert.NotContains(t, out.String(), "appmessage:")
}

func TestWriteEncoding_Malformed(t *testing.T) {
	var out bytes.Buffer

	err := writeEncoding(context.Background(), &out, `[1,2]`)

	assert.ErrorIs(t, err, entity.ErrMalformedPayload)
}

func TestFormatVersion(t *testing.T) {
	text := formatVersion(build.Info{Version: "1.2.0", Commit: "abc123"})

	assert.Contains(t, text, "formal 1.2.0")
	assert.Contains(t, text, "commit:  abc123")
	assert.Contains(t, text, "built:   unknown")
	assert.Contains(t, text, "https://github.com/briwestervelt/formal")
}

func TestSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"schema", "payload"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "backgroundColor")
	assert.Contains(t, out.String(), "bluetoothVibes")
}

func TestSchemaCommand_RejectsUnknownKind(t *testing.T) {
	rootCmd.SetArgs([]string{"schema", "favorites"})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
	})

	assert.Error(t, rootCmd.Execute())
}
