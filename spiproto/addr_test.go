package spiproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressTable(t *testing.T) {
	all := Addresses()
	require.Len(t, all, 114)
	seen := make(map[string]bool)
	for i, a := range all {
		if i > 0 {
			assert.Less(t, all[i-1], a)
		}
		name := a.String()
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}

	// spot checks against the datasheet register map
	assert.Equal(t, Addr(0x0F), CANCTRL)
	assert.Equal(t, Addr(0x2B), CANINTE)
	assert.Equal(t, Addr(0x2C), CANINTF)
	assert.Equal(t, Addr(0x1B), RXF5EID0)
	assert.Equal(t, Addr(0x27), RXM1EID0)
	assert.Equal(t, Addr(0x56), TXB2D0)
	assert.Equal(t, Addr(0x74), RXB1EID0)
	assert.Equal(t, Addr(0x7D), RXB1D7)
}

func TestAddrString(t *testing.T) {
	assert.Equal(t, "CANCTRL", CANCTRL.String())
	assert.Equal(t, "RXF3SIDL", RXF3SIDL.String())
	assert.Equal(t, "Addr(0x7e)", Addr(0x7E).String())
	assert.False(t, Addr(0x2E).Known())
	assert.True(t, TXRTSCTRL.Known())
}

func TestParseAddr(t *testing.T) {
	a, err := ParseAddr("canintf")
	require.NoError(t, err)
	assert.Equal(t, CANINTF, a)

	a, err = ParseAddr("0x2b")
	require.NoError(t, err)
	assert.Equal(t, CANINTE, a)

	_, err = ParseAddr("nope")
	assert.Error(t, err)
	_, err = ParseAddr("0x100")
	assert.Error(t, err)
}
