package app

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/shiroemons/go-dtm2txt/pkg/dtm"
)

// HeaderField はヘッダの1項目の名前と表示用の値です
type HeaderField struct {
	Name  string
	Value string
}

// HeaderFields はヘッダの各項目をテキスト形式と同じ名前・順序で返します
func HeaderFields(h dtm.Header) []HeaderField {
	v := reflect.ValueOf(h)
	t := v.Type()

	fields := make([]HeaderField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		value := v.Field(i).Interface()
		var s string
		switch x := value.(type) {
		case fmt.Stringer:
			s = x.String()
		case string:
			s = fmt.Sprintf("%q", x)
		default:
			s = fmt.Sprint(x)
		}
		fields = append(fields, HeaderField{Name: name, Value: s})
	}
	return fields
}
