package logger

import (
	"go.uber.org/zap"
)

var Log *zap.Logger

// Init builds the process logger. Debug mode gets the human-readable
// development encoder, everything else JSON at info level.
func Init(mode string) error {
	var err error
	if mode == "release" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(Log)
	return nil
}

// Sync flushes buffered entries. Safe to call on shutdown even if Init failed.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
