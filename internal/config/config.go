// internal/config/config.go
//
// 執行期設定：先讀取 .env（若存在），再以環境變數覆蓋預設值。

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 為整個 console 程式的設定。
type AppConfig struct {
	DataDir          string
	AccountsFile     string
	TransactionsFile string

	AutoSave    bool // 每次成功變更後寫檔
	SeedDemo    bool // 帳本為空時載入示範資料
	LoadOnStart bool

	LogLevel string
	LogDev   bool

	// EnvLoaded 表示是否成功讀到 .env 檔；由呼叫端決定是否記錄。
	EnvLoaded bool
}

// Load 讀取 envFiles（未指定時為 ./.env）後組出設定。
// 找不到 .env 不算錯誤，直接使用系統環境變數。
func Load(envFiles ...string) AppConfig {
	err := godotenv.Load(envFiles...)

	return AppConfig{
		DataDir:          getEnv("BANK_DATA_DIR", "data"),
		AccountsFile:     getEnv("BANK_ACCOUNTS_FILE", "accounts.txt"),
		TransactionsFile: getEnv("BANK_TRANSACTIONS_FILE", "transactions.txt"),
		AutoSave:         getEnvBool("BANK_AUTOSAVE", false),
		SeedDemo:         getEnvBool("BANK_SEED_DEMO", true),
		LoadOnStart:      getEnvBool("BANK_LOAD_ON_START", true),
		LogLevel:         getEnv("BANK_LOG_LEVEL", "info"),
		LogDev:           getEnvBool("BANK_LOG_DEV", false),
		EnvLoaded:        err == nil,
	}
}

// AccountsPath 回傳帳戶檔完整路徑；檔名為絕對路徑時不接上 DataDir。
func (c AppConfig) AccountsPath() string { return join(c.DataDir, c.AccountsFile) }

// TransactionsPath 回傳交易檔完整路徑。
func (c AppConfig) TransactionsPath() string { return join(c.DataDir, c.TransactionsFile) }

func join(dir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
