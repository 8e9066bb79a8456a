// internal/logging/logging.go
//
// 建立結構化 logger。輸出一律寫到 stderr，讓 console 的 stdout 只有選單與結果。

package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 依等級建立 logger；dev 為 true 時使用易讀的 console 格式。
func New(level string, dev bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	return cfg.Build(zap.Fields(zap.String("app", "bankledger")))
}

// Must 與 New 相同，但等級無法解析時退回 info。
func Must(level string, dev bool) *zap.Logger {
	l, err := New(level, dev)
	if err == nil {
		return l
	}
	l, err = New("info", dev)
	if err != nil {
		return zap.NewNop()
	}
	l.Warn("unknown log level, using info", zap.String("level", level))
	return l
}
