package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitDecodeMessage(t *testing.T) {
	cmd, err := decodeMessage([]byte(`{"sku":"B0TEST","query":"iphone 15 pro","forceRefresh":true}`))

	require.NoError(t, err, "shouldn't return any errors")
	assert.Equal(t, "B0TEST", cmd.SKU, "should decode sku")
	assert.Equal(t, "iphone 15 pro", cmd.Query, "should decode query")
	assert.True(t, cmd.ForceRefresh, "should decode force refresh flag")
}

func TestUnitDecodeMessageInvalidJSON(t *testing.T) {
	cmd, err := decodeMessage([]byte(`not-json`))

	assert.Nil(t, cmd, "shouldn't return a command")
	require.ErrorContains(t, err, "can't decode price command", "should return decoding error")
}
