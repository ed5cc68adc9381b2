package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-garmin-csv/internal/core/upload"
)

// JSONFormatter writes the successful datasets as an indented JSON array.
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(w io.Writer, entries []upload.Entry) error {
	data, err := sonic.ConfigStd.MarshalIndent(datasets(entries), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
