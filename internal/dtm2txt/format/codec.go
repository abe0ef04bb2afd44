package format

import (
	"bytes"
	"fmt"

	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/errors"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/models"
	"github.com/shiroemons/go-dtm2txt/pkg/dtm"
)

// Decode は指定された形式のデータをムービーに変換します
func Decode(f models.Format, data []byte) (*dtm.Movie, error) {
	switch f {
	case models.FormatBinary:
		return dtm.DecodeBinary(bytes.NewReader(data))
	case models.FormatText:
		return dtm.DecodeText(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownFormat, f)
	}
}

// Encode はムービーを指定された形式のデータに変換します
func Encode(f models.Format, m *dtm.Movie) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case models.FormatBinary:
		err = dtm.EncodeBinary(&buf, m)
	case models.FormatText:
		err = dtm.EncodeText(&buf, m)
	default:
		err = fmt.Errorf("%w: %s", errors.ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
