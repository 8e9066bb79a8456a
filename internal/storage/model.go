// internal/storage/model.go
//
// 定義「資料持久化層 (storage layer)」的紀錄格式。
// 該層只負責「一行一筆、逗號分隔」的文字序列化，不涉入任何商業規則；
// 帳戶類型標籤是否合法、欄位數是否足夠由 bank 層判斷。
//
// ───────────────────────────────
// 行格式：
//   - 帳戶：accountId,customerName,balance,accountTypeTag,status[,field1,field2]
//   - 交易：transactionId,accountId,type,amount,balanceAfter,timestamp
//
// 欄位不做跳脫：名稱內含逗號會讓該行格式錯誤（已知限制）。
// ───────────────────────────────
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout 為交易時間欄位格式 YYYY-MM-DD HH:MM:SS。
const TimestampLayout = "2006-01-02 15:04:05"

// ErrMalformedLine 代表一行無法解析成紀錄。
var ErrMalformedLine = errors.New("malformed line")

// AccountRecord 為帳戶在儲存層的序列化格式。
// 客戶只保存姓名；其他客戶資料不會寫入檔案。
type AccountRecord struct {
	Number       string
	CustomerName string
	Balance      decimal.Decimal
	Kind         string // 帳戶類型標籤，例如 SavingsAccount
	Status       string
	Extra        []decimal.Decimal // 類型專屬欄位，依序保存
}

// TransactionRecord 為交易在儲存層的序列化格式。
type TransactionRecord struct {
	ID            string
	AccountNumber string
	Type          string
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	Timestamp     time.Time
}

// LineError 描述被略過的一行：來源檔案、行號、原文與原因。
type LineError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
