package lib

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

var Log = NewLogger()

func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&TextFormatter{})
	return log
}

// GetLoggerEntry returns a logger tagged with the given module name.
func GetLoggerEntry(module string) *logrus.Entry {
	return Log.WithField("module", module)
}

// SetLevel parses level and applies it to Log. Unknown levels fall back to info.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

type TextFormatter struct{}

func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
	b.WriteString(fmt.Sprintf(" [%s] ", entry.Level.String()))
	module, ok := entry.Data["module"].(string)
	if !ok {
		module = "default"
	}
	b.WriteString(module)
	b.WriteString(": ")
	b.WriteString(entry.Message)
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "module" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
	}
	b.WriteByte('\n')

	return b.Bytes(), nil
}
