// Package logrus adapts a logrus.Entry to the bucket.Logger interface.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/bucket"
)

type Logger struct{ E *logrus.Entry }

var _ bucket.Logger = Logger{}

func (l Logger) Debug(msg string, f bucket.Fields) { l.E.WithFields(logrus.Fields(f)).Debug(msg) }
func (l Logger) Info(msg string, f bucket.Fields)  { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l Logger) Warn(msg string, f bucket.Fields)  { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l Logger) Error(msg string, f bucket.Fields) { l.E.WithFields(logrus.Fields(f)).Error(msg) }
