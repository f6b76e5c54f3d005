package logging

import (
	"os"

	"go.uber.org/zap/zapcore"
)

var zapOut = os.Stdout

// fileSync opens (creating/truncating) the mirror log file and wraps it as
// a zapcore.WriteSyncer. The returned close function lets a caller that
// wants to flush-and-close the file before process exit do so explicitly;
// most callers just let the process exit handle it.
func fileSync(path string) (zapcore.WriteSyncer, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return zapcore.AddSync(f), f.Close, nil
}

// MirrorPath replaces ext on outputPath with ".log", implementing the
// "console output is mirrored to a file co-located with the output motion,
// with the motion extension replaced by .log".
func MirrorPath(outputPath string) string {
	for i := len(outputPath) - 1; i >= 0; i-- {
		if outputPath[i] == '.' {
			return outputPath[:i] + ".log"
		}
		if outputPath[i] == '/' || outputPath[i] == '\\' {
			break
		}
	}
	return outputPath + ".log"
}
