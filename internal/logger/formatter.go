package logger

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// CLIFormatter renders entries as plain terminal lines: an optional
// colored level prefix, the message, and any extra fields as key=value
// pairs in stable order.
type CLIFormatter struct {
	DisableLevel  bool
	DisableColors bool
}

// internal routing fields, never rendered
var hiddenFields = map[string]bool{
	"log_type": true,
}

// Format implements logrus.Formatter.
func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableLevel {
		color, reset := f.levelColors(entry.Level)
		b.WriteString(color)
		b.WriteString(strings.ToUpper(entry.Level.String()))
		b.WriteString(reset)
		b.WriteString(": ")
	}

	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if !hiddenFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *CLIFormatter) levelColors(level logrus.Level) (string, string) {
	if f.DisableColors {
		return "", ""
	}
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "\033[31m", "\033[0m"
	case logrus.WarnLevel:
		return "\033[33m", "\033[0m"
	case logrus.InfoLevel:
		return "\033[36m", "\033[0m"
	default:
		return "\033[37m", "\033[0m"
	}
}
