package dtm

import (
	"bufio"
	"io"
)

// maxPrealloc は宣言されたフレーム数を信用して確保する上限です
const maxPrealloc = 1 << 16

// DecodeBinary はバイナリ形式のムービーを読み込みます。
// フレームはヘッダの InputCount の数だけ読み込みます。
// 途中でストリームが終わった場合は io.ErrUnexpectedEOF を返します。
func DecodeBinary(r io.Reader) (*Movie, error) {
	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	frames := make([]ControllerFrame, 0, min(header.InputCount, maxPrealloc))
	var buf [FrameSize]byte
	for i := uint64(0); i < header.InputCount; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		var frame ControllerFrame
		if err := frame.UnmarshalBinary(buf[:]); err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	return &Movie{Header: header, Frames: frames}, nil
}

// EncodeBinary はムービーをバイナリ形式で書き込みます。
// ヘッダの InputCount はそのまま書き込まれます。
func EncodeBinary(w io.Writer, m *Movie) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, &m.Header); err != nil {
		return err
	}

	buf := make([]byte, 0, FrameSize)
	for _, frame := range m.Frames {
		b, err := frame.AppendBinary(buf[:0])
		if err != nil {
			return err
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
	}
	return bw.Flush()
}
