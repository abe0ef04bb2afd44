package dtm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_RoundTrip(t *testing.T) {
	m := sampleMovie()
	got, err := DecodeText(bytes.NewReader(encodeText(t, m)))
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestDecodeText_InputCountFromLines(t *testing.T) {
	m := sampleMovie()
	m.Header.InputCount = 999

	got, err := DecodeText(bytes.NewReader(encodeText(t, m)))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.Header.InputCount)
	assert.Equal(t, m.Frames, got.Frames)

	want := m.Header
	want.InputCount = 3
	assert.Equal(t, want, got.Header)
}

func TestEncodeText_Layout(t *testing.T) {
	m := sampleMovie()
	out := string(encodeText(t, m))

	header, headerLines := headerText(t, m.Header)
	require.True(t, strings.HasPrefix(out, string(header)+"\n"))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, headerLines+len(m.Frames)+1)
	assert.Equal(t, "", lines[len(lines)-1], "最後は改行で終わる")
	assert.Equal(t, "S A b x y z u d l r lt rt   5  10 128 130   0 255", lines[headerLines])
	assert.Equal(t, "s a B x y z u D l r LT rt   0   0 128 128 128 128 CD RSV", lines[headerLines+1])
	assert.Equal(t, "s a b x y z U d l R lt RT 255 255   0   0   0   0 RST CC", lines[headerLines+2])
}

func TestEncodeText_NoFrames(t *testing.T) {
	m := &Movie{Header: sampleHeader()}
	out := encodeText(t, m)

	got, err := DecodeText(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Empty(t, got.Frames)
	assert.Zero(t, got.Header.InputCount)
}

func TestDecodeText_FrameErrorLine(t *testing.T) {
	header, headerLines := headerText(t, sampleHeader())
	good := "S a B x Y z U d L r LT rt 5 10 128 130 0 255 CD"

	tests := []struct {
		name     string
		body     string
		wantLine int
		reason   error
	}{
		{
			name:     "最初のフレームでトークン不足",
			body:     "S a B x Y z U d L r LT rt 5 10 128 130 0\n",
			wantLine: headerLines + 1,
			reason:   ErrMissingToken,
		},
		{
			name:     "2行目でトークン不足",
			body:     good + "\nS a B x Y z U d L r LT rt 5 10 128 130 0\n",
			wantLine: headerLines + 2,
			reason:   ErrMissingToken,
		},
		{
			name:     "空行も行番号に数える",
			body:     good + "\n\n   \n" + good + "\nS a B x Y z U d L r LT rt 5 10 128 130 0 999\n",
			wantLine: headerLines + 5,
			reason:   ErrInvalidAxis,
		},
		{
			name:     "CRLFの行",
			body:     good + "\r\n" + "S a B x Y z U d L r LT rt 5 10 128 130 0 255 XX\r\n",
			wantLine: headerLines + 2,
			reason:   ErrUnknownFlag,
		},
		{
			name:     "最終行に改行がない",
			body:     good + "\nq a B x Y z U d L r LT rt 5 10 128 130 0 255",
			wantLine: headerLines + 2,
			reason:   ErrInvalidButton,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := string(header) + "\n" + tt.body
			_, err := DecodeText(strings.NewReader(input))
			require.ErrorIs(t, err, tt.reason)

			var fe *FrameError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantLine, fe.Line)
			assert.Contains(t, err.Error(), fmt.Sprintf("line %d", tt.wantLine))
		})
	}
}

func TestDecodeText_LeadingBlankLines(t *testing.T) {
	header, headerLines := headerText(t, sampleHeader())
	input := "\n\n" + string(header) + "\nbad\n"

	_, err := DecodeText(strings.NewReader(input))
	var fe *FrameError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, headerLines+3, fe.Line)
}

func TestDecodeText_CompactHeader(t *testing.T) {
	// 1行のJSONでも閉じ括弧の行の残りは読み飛ばされる
	m := sampleMovie()
	var sb strings.Builder
	object, err := json.Marshal(m.Header)
	require.NoError(t, err)
	sb.Write(object)
	sb.WriteString(" ignored\n")
	for _, f := range m.Frames {
		sb.WriteString(f.String() + "\n")
	}
	sb.WriteString("bad\n")

	_, err = DecodeText(strings.NewReader(sb.String()))
	var fe *FrameError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 5, fe.Line)
}

func TestDecodeText_BOM(t *testing.T) {
	m := sampleMovie()
	input := append([]byte("\xEF\xBB\xBF"), encodeText(t, m)...)

	got, err := DecodeText(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestDecodeText_HeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"空", ""},
		{"JSONでない", "S a B x Y z U d L r LT rt 5 10 128 130 0 255\n"},
		{"途中で終わる", "{\n  \"game_id\": \"GALE01\",\n"},
		{"オブジェクトでない", "[1, 2, 3]\n"},
		{"キーが足りない", "{\"game_id\": \"GALE01\"}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(strings.NewReader(tt.input))
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrInvalidHeader)
		})
	}
}

func TestDecodeText_InvalidUTF8Line(t *testing.T) {
	header, headerLines := headerText(t, sampleHeader())
	input := string(header) + "\n" + "S a B x Y z U d L r LT rt 5 10 128 130 0 255 \xFF\n"

	_, err := DecodeText(strings.NewReader(input))
	require.ErrorIs(t, err, ErrInvalidText)
	assert.Contains(t, err.Error(), fmt.Sprintf("line %d", headerLines+1))
}

func TestDecodeText_InvalidUTF8Header(t *testing.T) {
	header, _ := headerText(t, sampleHeader())
	input := strings.Replace(string(header), "\"OnVar\"", "\"a\xffb\"", 1) + "\n"

	got, err := DecodeText(strings.NewReader(input))
	assert.Nil(t, got)
	require.ErrorIs(t, err, ErrInvalidText)
	assert.NotErrorIs(t, err, ErrInvalidHeader)
}

type errReader struct {
	data []byte
	err  error
}

func (r *errReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestDecodeText_ReadError(t *testing.T) {
	want := errors.New("connection reset")
	m := sampleMovie()

	tests := []struct {
		name string
		data []byte
	}{
		{"ヘッダの途中", encodeText(t, m)[:20]},
		{"フレームの後", encodeText(t, m)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeText(&errReader{data: tt.data, err: want})
			assert.ErrorIs(t, err, want)
			assert.NotErrorIs(t, err, ErrInvalidHeader)
		})
	}
}

func TestEncodeText_WriteError(t *testing.T) {
	want := errors.New("broken pipe")
	err := EncodeText(failingWriter{err: want}, sampleMovie())
	assert.ErrorIs(t, err, want)
}

func TestLineCounter(t *testing.T) {
	lc := newLineCounter(strings.NewReader("a\nb\n\nc"))
	b, err := io.ReadAll(lc)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n\nc", string(b))
	assert.Equal(t, 3, lc.Lines())
}
