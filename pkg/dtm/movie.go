// Package dtm は Dolphin のムービーファイル(.dtm)を読み書きするためのパッケージです。
//
// ムービーはバイナリ形式とテキスト形式の2つの表現を持ちます。
//
//   - バイナリ形式: シグネチャ "DTM\x1A"、256バイトの固定長ヘッダ、8バイトのフレームの並び
//   - テキスト形式: ヘッダのJSONオブジェクトに続けて、1行1フレームの入力
//
// 基本的な使い方:
//
//	movie, err := dtm.DecodeBinary(r)
//	if err != nil {
//	    return err
//	}
//	if err := dtm.EncodeText(w, movie); err != nil {
//	    return err
//	}
package dtm

// Movie はヘッダとフレーム列からなるムービー全体です
type Movie struct {
	Header Header
	Frames []ControllerFrame
}

// SyncInputCount はヘッダの入力数を実際のフレーム数に合わせます
func (m *Movie) SyncInputCount() {
	m.Header.InputCount = uint64(len(m.Frames))
}

// Equal は2つのムービーのヘッダとフレームがすべて一致するかを返します
func (m *Movie) Equal(other *Movie) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Header != other.Header || len(m.Frames) != len(other.Frames) {
		return false
	}
	for i := range m.Frames {
		if m.Frames[i] != other.Frames[i] {
			return false
		}
	}
	return true
}
