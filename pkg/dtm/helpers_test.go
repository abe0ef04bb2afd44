package dtm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleHeader はテスト用のヘッダを返します
func sampleHeader() Header {
	h := Header{
		GameID:          "GALE01",
		Controllers:     1,
		VICount:         3600,
		InputCount:      3,
		LagCounter:      12,
		RerecordCount:   42,
		Author:          "OnVar",
		VideoBackend:    "OGL",
		StartTime:       1500000000,
		ValidConfig:     true,
		DualCore:        true,
		DSPHLE:          true,
		FastDisc:        true,
		CPUCore:         1,
		EFBAccess:       true,
		EFBToTexture:    true,
		EFBCopyCache:    true,
		MemoryCards:     1,
		SecondDisc:      "disc2.iso",
		DSPIROMHash:     0xDEADBEEF,
		DSPCoefHash:     0x01020304,
		TickCount:       123456789,
		MemoryCardBlank: true,
	}
	copy(h.AudioEmulator[:], "HLE")
	for i := range h.MD5 {
		h.MD5[i] = byte(i * 17)
	}
	for i := range h.GitRevision {
		h.GitRevision[i] = byte(0xF0 - i)
	}
	h.Reserved3[10] = 0xAB
	return h
}

// sampleMovie はテスト用のムービーを返します
func sampleMovie() *Movie {
	return &Movie{
		Header: sampleHeader(),
		Frames: []ControllerFrame{
			{Start: true, A: true, LPressure: 5, RPressure: 10, AnalogX: 128, AnalogY: 130, CX: 0, CY: 255},
			{B: true, Down: true, L: true, ChangeDisc: true, Reserved: true, AnalogX: 128, AnalogY: 128, CX: 128, CY: 128},
			{Up: true, Right: true, R: true, Reset: true, ControllerConnected: true, LPressure: 255, RPressure: 255},
		},
	}
}

// encodeText はテキスト形式に変換した結果を返します
func encodeText(t *testing.T, m *Movie) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeText(&buf, m))
	return buf.Bytes()
}

// encodeBinary はバイナリ形式に変換した結果を返します
func encodeBinary(t *testing.T, m *Movie) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeBinary(&buf, m))
	return buf.Bytes()
}

// headerText はヘッダのJSON部分と、その行数を返します
func headerText(t *testing.T, h Header) ([]byte, int) {
	t.Helper()
	b, err := marshalHeader(&h)
	require.NoError(t, err)
	return b, bytes.Count(b, []byte{'\n'}) + 1
}
