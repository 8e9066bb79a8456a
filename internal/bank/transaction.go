// internal/bank/transaction.go

package bank

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bankledger/internal/storage"
)

// TransactionType 為會影響餘額的交易類型。
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
)

// ParseTransactionType 解析交易類型標籤（不分大小寫）。
func ParseTransactionType(s string) (TransactionType, error) {
	switch {
	case strings.EqualFold(s, string(Deposit)):
		return Deposit, nil
	case strings.EqualFold(s, string(Withdraw)), strings.EqualFold(s, "WITHDRAWAL"):
		return Withdraw, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
}

// TimestampLayout 為交易時間的文字格式（精確到秒）。
const TimestampLayout = storage.TimestampLayout

// Transaction 為一次成功的餘額變動紀錄；建立後不可變更。
// 以值傳遞，呼叫端拿到的都是副本。
type Transaction struct {
	ID            string
	AccountNumber string
	Type          TransactionType
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	Timestamp     time.Time
}

// Signed 回傳帶方向的金額：提款為負、存款為正。
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Withdraw {
		return t.Amount.Neg()
	}
	return t.Amount
}
