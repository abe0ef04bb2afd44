package dtm

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// EncodeHex はバイト列を区切りなしの大文字16進文字列に変換します
func EncodeHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// DecodeHex は16進文字列を dst に復元します。
// 文字列の長さは len(dst) のちょうど2倍でなければなりません。
// 英字は大文字・小文字のどちらも受け付けます。
func DecodeHex(dst []byte, s string) error {
	if len(s) != len(dst)*2 {
		return fmt.Errorf("%w: got %d characters, want %d", ErrHexLength, len(s), len(dst)*2)
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return fmt.Errorf("%w: %q at offset %d", ErrHexCharacter, s[i], i)
		}
	}
	// 文字は検証済みなのでエラーにはならない
	_, err := hex.Decode(dst, []byte(s))
	return err
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('A' <= c && c <= 'F') || ('a' <= c && c <= 'f')
}

// 固定長の不透明なバイト列。ヘッダ内の音声エミュレータ名、MD5、予約領域、
// Gitリビジョンに使われ、テキスト形式では16進文字列として表現されます。
type (
	Bytestring11 [11]byte
	Bytestring12 [12]byte
	Bytestring16 [16]byte
	Bytestring20 [20]byte
)

func (b Bytestring11) String() string { return EncodeHex(b[:]) }
func (b Bytestring12) String() string { return EncodeHex(b[:]) }
func (b Bytestring16) String() string { return EncodeHex(b[:]) }
func (b Bytestring20) String() string { return EncodeHex(b[:]) }

// MarshalText は encoding.TextMarshaler を実装します
func (b Bytestring11) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
func (b Bytestring12) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
func (b Bytestring16) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
func (b Bytestring20) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText は encoding.TextUnmarshaler を実装します
func (b *Bytestring11) UnmarshalText(text []byte) error { return DecodeHex(b[:], string(text)) }
func (b *Bytestring12) UnmarshalText(text []byte) error { return DecodeHex(b[:], string(text)) }
func (b *Bytestring16) UnmarshalText(text []byte) error { return DecodeHex(b[:], string(text)) }
func (b *Bytestring20) UnmarshalText(text []byte) error { return DecodeHex(b[:], string(text)) }
