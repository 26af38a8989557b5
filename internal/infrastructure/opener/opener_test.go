package opener

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogOnly_RecordsInOrder(t *testing.T) {
	o := NewLogOnly()

	require.NoError(t, o.Open(context.Background(), "http://a.example"))
	require.NoError(t, o.Open(context.Background(), "http://b.example"))

	assert.Equal(t, []string{"http://a.example", "http://b.example"}, o.Opened())
}

func TestBrowser_WithoutLauncherFails(t *testing.T) {
	b := &Browser{}

	assert.False(t, b.Available())
	assert.ErrorIs(t, b.Open(context.Background(), "http://a.example"), ErrNoLauncher)
}
