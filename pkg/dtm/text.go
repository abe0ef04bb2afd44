package dtm

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineSize はテキスト形式の1行の最大バイト数
const maxLineSize = 1 << 20

// DecodeText はテキスト形式のムービーを読み込みます。
//
// 先頭のJSONオブジェクトをヘッダとして読み、閉じ括弧の行の残りを読み飛ばしてから、
// 空行以外の各行を1フレームとして解析します。フレームの解析エラーは行番号付きの
// *FrameError になります。ヘッダの InputCount は実際に読み込んだフレーム数で
// 上書きされます。
func DecodeText(r io.Reader) (*Movie, error) {
	// エディタが付けたBOMを取り除く (UTF-16はUTF-8に変換される)
	lc := newLineCounter(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))

	dec := json.NewDecoder(lc)
	var object json.RawMessage
	if err := dec.Decode(&object); err != nil {
		return nil, headerDecodeError(err)
	}
	header, err := unmarshalHeader(object)
	if err != nil {
		return nil, err
	}

	// JSONデコーダが先読みした分の改行は数えない
	tail, err := io.ReadAll(dec.Buffered())
	if err != nil {
		return nil, err
	}
	closingLine := lc.Lines() - bytes.Count(tail, []byte{'\n'}) + 1

	scanner := bufio.NewScanner(io.MultiReader(bytes.NewReader(tail), lc))
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var frames []ControllerFrame
	lineNo := closingLine - 1
	for scanner.Scan() {
		lineNo++
		if lineNo == closingLine {
			continue
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, _, err := transform.String(encoding.UTF8Validator, line); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidText, lineNo, err)
		}
		frame, err := ParseFrame(line)
		if err != nil {
			var fe *FrameError
			if errors.As(err, &fe) {
				fe.Line = lineNo
			}
			return nil, err
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	m := &Movie{Header: header, Frames: frames}
	m.SyncInputCount()
	return m, nil
}

// headerDecodeError はJSONの構文エラーや途中終了をヘッダエラーとして包みます。
// それ以外の読み込みエラーはそのまま返します。
func headerDecodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: unexpected end of input: %w", ErrInvalidHeader, err)
	}
	return err
}

// EncodeText はムービーをテキスト形式で書き込みます
func EncodeText(w io.Writer, m *Movie) error {
	object, err := marshalHeader(&m.Header)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.Write(object)
	bw.WriteByte('\n')
	for _, frame := range m.Frames {
		bw.WriteString(frame.String())
		bw.WriteByte('\n')
	}
	// bufio.Writer のエラーは Flush で返る
	return bw.Flush()
}
