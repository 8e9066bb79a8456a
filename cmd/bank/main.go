// cmd/bank/main.go

// 互動式銀行帳本：開戶、存提款、轉帳、報表、文字檔存取與並發示範。
// 此檔案負責組裝模組（config, logging, bank, console），
// 啟動時可載入上次的文字檔，結束時（收到訊號）依設定保存。

package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"bankledger/internal/bank"
	"bankledger/internal/config"
	"bankledger/internal/console"
	"bankledger/internal/logging"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file with BANK_* settings")
	flag.Parse()

	cfg := config.Load(*envFile)
	logger := logging.Must(cfg.LogLevel, cfg.LogDev)
	defer logger.Sync()
	if !cfg.EnvLoaded {
		logger.Debug("no env file found, relying on environment", zap.String("file", *envFile))
	}

	// 初始化帳本
	ledger := bank.NewLedger(
		bank.WithLogger(logger),
		bank.WithFiles(cfg.AccountsPath(), cfg.TransactionsPath()),
	)

	// 嘗試載入上次的資料；檔案不存在時以空帳本啟動
	if cfg.LoadOnStart {
		if _, err := ledger.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("could not load saved ledger", zap.Error(err))
		}
	}
	if cfg.SeedDemo && ledger.AccountCount() == 0 {
		if err := bank.SeedDemoData(ledger); err != nil {
			logger.Fatal("seed demo data", zap.Error(err))
		}
		logger.Info("demo data seeded", zap.Int("accounts", ledger.AccountCount()))
	}

	var opts []console.Option
	opts = append(opts, console.WithLogger(logger))
	if cfg.AutoSave {
		opts = append(opts, console.WithPersist(ledger.Save))
	}
	c := console.New(ledger, os.Stdin, os.Stdout, opts...)

	// 監聽 SIGINT/SIGTERM，結束前依設定保存狀態
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-ch
		logger.Info("signal received", zap.String("signal", sig.String()))
		if cfg.AutoSave {
			if err := ledger.Save(); err != nil {
				logger.Error("save on shutdown failed", zap.Error(err))
			}
		}
		_ = logger.Sync()
		os.Exit(0)
	}()

	if err := c.Run(); err != nil {
		logger.Error("console stopped", zap.Error(err))
	}
}
