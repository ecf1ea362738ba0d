package export

import (
	"bufio"
	"strings"
)

// writeRecord writes one quoted-as-needed record followed by a newline.
func writeRecord(w *bufio.Writer, sep rune, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := w.WriteRune(sep); err != nil {
				return err
			}
		}
		// A leading '#' on the first field would read as a file header.
		if needsQuotes(field, sep) || (i == 0 && strings.HasPrefix(field, "#")) {
			field = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		if _, err := w.WriteString(field); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func needsQuotes(field string, sep rune) bool {
	return strings.ContainsRune(field, sep) || strings.ContainsAny(field, "\"\r\n")
}
