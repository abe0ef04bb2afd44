package dtm

import (
	"fmt"
	"strconv"
	"strings"
)

// FrameSize はバイナリ形式の1フレームのバイト数
const FrameSize = 8

// ControllerFrame は1フレーム分のコントローラ入力です
type ControllerFrame struct {
	Start bool
	A     bool
	B     bool
	X     bool
	Y     bool
	Z     bool
	Up    bool
	Down  bool
	Left  bool
	Right bool
	L     bool
	R     bool

	ChangeDisc          bool
	Reset               bool
	ControllerConnected bool
	Reserved            bool

	LPressure uint8
	RPressure uint8
	AnalogX   uint8
	AnalogY   uint8
	CX        uint8
	CY        uint8
}

// Flag はフラグ1つ分のビット位置とテキスト表現です
type Flag struct {
	Name string
	Byte int   // 0 または 1
	Bit  uint8 // 0 がLSB

	// Token は押下時のトークン。Optional でなければ小文字が非押下を表します。
	Token    string
	Optional bool

	field func(*ControllerFrame) *bool
}

// Get はフレームのフラグ値を返します
func (f Flag) Get(frame *ControllerFrame) bool { return *f.field(frame) }

// Set はフレームのフラグ値を設定します
func (f Flag) Set(frame *ControllerFrame, v bool) { *f.field(frame) = v }

func (f Flag) mask() byte { return 1 << f.Bit }

// Flags はバイナリ形式とテキスト形式の両方が参照するフラグ表です。
// 並び順がそのままテキスト形式のトークン順になります。
var Flags = []Flag{
	{"start", 0, 0, "S", false, func(c *ControllerFrame) *bool { return &c.Start }},
	{"a", 0, 1, "A", false, func(c *ControllerFrame) *bool { return &c.A }},
	{"b", 0, 2, "B", false, func(c *ControllerFrame) *bool { return &c.B }},
	{"x", 0, 3, "X", false, func(c *ControllerFrame) *bool { return &c.X }},
	{"y", 0, 4, "Y", false, func(c *ControllerFrame) *bool { return &c.Y }},
	{"z", 0, 5, "Z", false, func(c *ControllerFrame) *bool { return &c.Z }},
	{"up", 0, 6, "U", false, func(c *ControllerFrame) *bool { return &c.Up }},
	{"down", 0, 7, "D", false, func(c *ControllerFrame) *bool { return &c.Down }},
	{"left", 1, 0, "L", false, func(c *ControllerFrame) *bool { return &c.Left }},
	{"right", 1, 1, "R", false, func(c *ControllerFrame) *bool { return &c.Right }},
	{"l", 1, 2, "LT", false, func(c *ControllerFrame) *bool { return &c.L }},
	{"r", 1, 3, "RT", false, func(c *ControllerFrame) *bool { return &c.R }},
	{"change_disc", 1, 4, "CD", true, func(c *ControllerFrame) *bool { return &c.ChangeDisc }},
	{"reset", 1, 5, "RST", true, func(c *ControllerFrame) *bool { return &c.Reset }},
	{"controller_connected", 1, 6, "CC", true, func(c *ControllerFrame) *bool { return &c.ControllerConnected }},
	{"reserved", 1, 7, "RSV", true, func(c *ControllerFrame) *bool { return &c.Reserved }},
}

// axes はアナログ値をバイナリ・テキスト共通の順序で返します
func (c *ControllerFrame) axes() [6]*uint8 {
	return [6]*uint8{&c.LPressure, &c.RPressure, &c.AnalogX, &c.AnalogY, &c.CX, &c.CY}
}

// AppendBinary はフレームの8バイト表現を b に追加します
func (c ControllerFrame) AppendBinary(b []byte) ([]byte, error) {
	var flags [2]byte
	for _, f := range Flags {
		if f.Get(&c) {
			flags[f.Byte] |= f.mask()
		}
	}
	b = append(b, flags[0], flags[1])
	for _, v := range c.axes() {
		b = append(b, *v)
	}
	return b, nil
}

// MarshalBinary は encoding.BinaryMarshaler を実装します
func (c ControllerFrame) MarshalBinary() ([]byte, error) {
	return c.AppendBinary(make([]byte, 0, FrameSize))
}

// UnmarshalBinary は8バイトのフレームを読み込みます
func (c *ControllerFrame) UnmarshalBinary(data []byte) error {
	if len(data) != FrameSize {
		return fmt.Errorf("dtm: frame must be %d bytes, got %d", FrameSize, len(data))
	}
	for _, f := range Flags {
		f.Set(c, data[f.Byte]&f.mask() != 0)
	}
	for i, v := range c.axes() {
		*v = data[2+i]
	}
	return nil
}

// String はテキスト形式の1行を返します (改行なし)。
//
//	S A B X Y Z U D L R LT RT   0   0 128 128 128 128 [CD RST CC RSV]
func (c ControllerFrame) String() string {
	var sb strings.Builder
	for _, f := range Flags {
		if f.Optional {
			continue
		}
		if f.Get(&c) {
			sb.WriteString(f.Token)
		} else {
			sb.WriteString(strings.ToLower(f.Token))
		}
		sb.WriteByte(' ')
	}
	for i, v := range c.axes() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%3d", *v)
	}
	for _, f := range Flags {
		if f.Optional && f.Get(&c) {
			sb.WriteByte(' ')
			sb.WriteString(f.Token)
		}
	}
	return sb.String()
}

// ParseFrame はテキスト形式の1行をフレームに変換します。
// エラーは *FrameError で、行番号は呼び出し側で設定されます。
func ParseFrame(line string) (ControllerFrame, error) {
	var c ControllerFrame
	tokens := strings.Fields(line)
	next := 0

	take := func() (string, error) {
		if next >= len(tokens) {
			return "", &FrameError{Reason: ErrMissingToken}
		}
		tok := tokens[next]
		next++
		return tok, nil
	}

	for _, f := range Flags {
		if f.Optional {
			continue
		}
		tok, err := take()
		if err != nil {
			return ControllerFrame{}, err
		}
		switch tok {
		case f.Token:
			f.Set(&c, true)
		case strings.ToLower(f.Token):
			f.Set(&c, false)
		default:
			return ControllerFrame{}, &FrameError{Token: tok, Reason: ErrInvalidButton}
		}
	}

	for _, v := range c.axes() {
		tok, err := take()
		if err != nil {
			return ControllerFrame{}, err
		}
		n, err := strconv.ParseUint(tok, 10, 8)
		if err != nil {
			return ControllerFrame{}, &FrameError{Token: tok, Reason: ErrInvalidAxis}
		}
		*v = uint8(n)
	}

	for _, tok := range tokens[next:] {
		f, ok := optionalFlag(tok)
		if !ok {
			return ControllerFrame{}, &FrameError{Token: tok, Reason: ErrUnknownFlag}
		}
		f.Set(&c, true)
	}

	return c, nil
}

func optionalFlag(token string) (Flag, bool) {
	for _, f := range Flags {
		if f.Optional && f.Token == token {
			return f, true
		}
	}
	return Flag{}, false
}
