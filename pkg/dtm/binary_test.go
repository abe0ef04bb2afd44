package dtm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinary_RoundTrip(t *testing.T) {
	m := sampleMovie()
	data := encodeBinary(t, m)
	require.Len(t, data, HeaderSize+FrameSize*len(m.Frames))

	got, err := DecodeBinary(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, m, got)
	assert.True(t, m.Equal(got))

	// 再エンコードしても同じバイト列になる
	assert.Equal(t, data, encodeBinary(t, got))
}

func TestEncodeBinary_FrameLayout(t *testing.T) {
	m := &Movie{
		Header: Header{InputCount: 1},
		Frames: []ControllerFrame{{Start: true, A: true, LPressure: 5, RPressure: 10, AnalogX: 128, AnalogY: 130, CY: 255}},
	}
	data := encodeBinary(t, m)
	assert.Equal(t, []byte{0x03, 0x00, 5, 10, 128, 130, 0, 255}, data[HeaderSize:])
	assert.Equal(t, uint64(1), binary.LittleEndian.Uint64(data[21:]))
}

func TestDecodeBinary_TrustsInputCount(t *testing.T) {
	m := sampleMovie()
	m.Header.InputCount = 2
	data := encodeBinary(t, m)

	// 宣言された2フレームだけを読み、残りは無視する
	got, err := DecodeBinary(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, got.Frames, 2)
	assert.Equal(t, m.Frames[:2], got.Frames)
}

func TestDecodeBinary_TruncatedFrames(t *testing.T) {
	m := sampleMovie()
	data := encodeBinary(t, m)

	tests := []struct {
		name string
		size int
	}{
		{"フレームが丸ごと足りない", HeaderSize + FrameSize*2},
		{"フレームの途中", HeaderSize + FrameSize*2 + 3},
		{"フレームなし", HeaderSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBinary(bytes.NewReader(data[:tt.size]))
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		})
	}
}

func TestDecodeBinary_BadMagic(t *testing.T) {
	data := encodeBinary(t, sampleMovie())
	data[0] = 'd'

	got, err := DecodeBinary(bytes.NewReader(data))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestDecodeBinary_HugeInputCount(t *testing.T) {
	m := &Movie{Header: Header{InputCount: 1 << 40}}
	data := encodeBinary(t, m)

	_, err := DecodeBinary(bytes.NewReader(data))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestEncodeBinary_StringTooLong(t *testing.T) {
	m := sampleMovie()
	m.Header.VideoBackend = "a backend name that is too long"

	var buf bytes.Buffer
	err := EncodeBinary(&buf, m)
	require.ErrorIs(t, err, ErrStringTooLong)
	assert.Zero(t, buf.Len())
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestEncodeBinary_WriteError(t *testing.T) {
	want := errors.New("disk full")
	err := EncodeBinary(failingWriter{err: want}, sampleMovie())
	assert.ErrorIs(t, err, want)
}
