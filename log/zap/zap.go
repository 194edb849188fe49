// Package zap adapts a zap.Logger to the bucket.Logger interface.
package zap

import (
	"go.uber.org/zap"

	"github.com/unkn0wn-root/bucket"
)

type Logger struct{ L *zap.Logger }

var _ bucket.Logger = Logger{}

func (z Logger) Debug(msg string, f bucket.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f bucket.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f bucket.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f bucket.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f bucket.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
