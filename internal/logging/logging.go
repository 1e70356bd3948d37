package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// locationFormatter renders timestamps in a fixed location before delegating to JSON.
type locationFormatter struct {
	loc  *time.Location
	next logrus.Formatter
}

func (f locationFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.In(f.loc)
	return f.next.Format(e)
}

// New returns a JSON logger writing one object per line to stdout.
func New(level string, loc *time.Location) *logrus.Logger {
	return NewWithWriter(os.Stdout, level, loc)
}

// NewWithWriter is New with an explicit destination, used by tests.
func NewWithWriter(w io.Writer, level string, loc *time.Location) *logrus.Logger {
	if loc == nil {
		loc = time.UTC
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(locationFormatter{
		loc: loc,
		next: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		},
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Discard returns an entry that drops everything; handy as a default.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
