package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeID(t *testing.T) {
	tests := []struct {
		id       uint32
		extended bool
		want     [4]byte
	}{
		{0x000, false, [4]byte{0x00, 0x00, 0, 0}},
		{0x123, false, [4]byte{0x24, 0x60, 0, 0}},
		{MaxStandardID, false, [4]byte{0xFF, 0xE0, 0, 0}},
		{0x12345678, true, [4]byte{0x91, 0xA8, 0x56, 0x78}},
		{MaxExtendedID, true, [4]byte{0xFF, 0xEB, 0xFF, 0xFF}},
		{0, true, [4]byte{0x00, 0x08, 0, 0}},
	}
	for _, tc := range tests {
		b, err := EncodeID(tc.id, tc.extended)
		require.NoError(t, err)
		assert.Equal(t, tc.want, b, "%#x", tc.id)

		id, ext := DecodeID(b[:])
		assert.Equal(t, tc.id, id)
		assert.Equal(t, tc.extended, ext)
	}
}

func TestEncodeIDRange(t *testing.T) {
	_, err := EncodeID(MaxStandardID+1, false)
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = EncodeID(MaxExtendedID+1, true)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestDecodeIDIgnoresSRR(t *testing.T) {
	// SRR is set in RXBnSIDL for standard remote frames
	id, ext := DecodeID([]byte{0x24, 0x70, 0xAA, 0xBB})
	assert.Equal(t, uint32(0x123), id)
	assert.False(t, ext)
}
