package logger

import (
	"context"
)

type nopLogger struct{}

// NewNopLogger returns a Logger that discards everything. Used in tests.
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Info(context.Context, string, map[string]interface{})         {}
func (nopLogger) Error(context.Context, string, error, map[string]interface{}) {}
func (nopLogger) Warn(context.Context, string, map[string]interface{})         {}
func (nopLogger) Debug(context.Context, string, map[string]interface{})        {}
func (n nopLogger) WithFields(map[string]interface{}) Logger                   { return n }
