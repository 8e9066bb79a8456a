// internal/bank/persist.go
//
// Save / Load：在 Ledger 與 storage 文字紀錄之間轉換。
//   - Save 依帳戶加入順序、交易建立順序寫出；失敗不影響記憶體狀態。
//   - Load 先把兩個檔案完整解析到暫存，全部成功才一次替換；
//     任何 I/O 錯誤都會保留原本狀態。格式錯誤或類型未知的行只會略過並記錄。
//   - 帳戶檔只保存客戶姓名，載入後客戶是僅含姓名的 Regular stub（已知的有損行為）。

package bank

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bankledger/internal/storage"
)

// 帳戶類型在檔案中的標籤。
const (
	savingsTag  = "SavingsAccount"
	checkingTag = "CheckingAccount"
)

// LoadReport 彙整一次 Load 載入的筆數與被略過的行。
type LoadReport struct {
	Accounts     int
	Transactions int
	Skipped      []error
}

// toRecord 在帳戶鎖內取出一致的欄位快照。
func toRecord(acc Account) storage.AccountRecord {
	c := acc.core()
	c.mu.Lock()
	defer c.mu.Unlock()
	r := storage.AccountRecord{
		Number:       c.number,
		CustomerName: c.customer.Name,
		Balance:      c.balance,
		Status:       string(c.status),
	}
	switch a := acc.(type) {
	case *SavingsAccount:
		r.Kind = savingsTag
		r.Extra = []decimal.Decimal{a.interestRate, a.minimumBalance}
	case *CheckingAccount:
		r.Kind = checkingTag
		r.Extra = []decimal.Decimal{a.overdraftLimit, a.monthlyFee}
	}
	return r
}

func fromRecord(r storage.AccountRecord) (Account, error) {
	if r.Kind != savingsTag && r.Kind != checkingTag {
		return nil, fmt.Errorf("unknown account type: %s", r.Kind)
	}
	if len(r.Extra) != 2 {
		return nil, fmt.Errorf("%w: %s needs 2 type fields, got %d", storage.ErrMalformedLine, r.Kind, len(r.Extra))
	}
	c := customerStub(r.CustomerName)
	var acc Account
	switch r.Kind {
	case savingsTag:
		acc = NewSavingsAccount(r.Number, c, r.Balance, r.Extra[0], r.Extra[1])
	default:
		acc = NewCheckingAccount(r.Number, c, r.Balance, r.Extra[0], r.Extra[1])
	}
	if r.Status != "" {
		acc.core().status = Status(r.Status)
	}
	return acc, nil
}

// Save 將所有帳戶與交易寫入設定的兩個檔案。
func (l *Ledger) Save() error {
	accs := l.Accounts()
	recs := make([]storage.AccountRecord, 0, len(accs))
	for _, acc := range accs {
		recs = append(recs, toRecord(acc))
	}
	if err := storage.WriteAccounts(l.accountsPath, recs); err != nil {
		l.log.Error("save accounts failed", zap.String("path", l.accountsPath), zap.Error(err))
		return fmt.Errorf("save accounts: %w", err)
	}

	txns := l.Transactions()
	trecs := make([]storage.TransactionRecord, len(txns))
	for i, tx := range txns {
		trecs[i] = storage.TransactionRecord{
			ID:            tx.ID,
			AccountNumber: tx.AccountNumber,
			Type:          string(tx.Type),
			Amount:        tx.Amount,
			BalanceAfter:  tx.BalanceAfter,
			Timestamp:     tx.Timestamp,
		}
	}
	if err := storage.WriteTransactions(l.transactionsPath, trecs); err != nil {
		l.log.Error("save transactions failed", zap.String("path", l.transactionsPath), zap.Error(err))
		return fmt.Errorf("save transactions: %w", err)
	}

	l.log.Info("ledger saved",
		zap.Int("accounts", len(recs)),
		zap.Int("transactions", len(trecs)),
		zap.String("accounts_file", l.accountsPath),
		zap.String("transactions_file", l.transactionsPath))
	return nil
}

// Load 以檔案內容取代整個記憶體中的帳戶與交易集合。
// 帳戶檔不存在時回傳包裝 fs.ErrNotExist 的錯誤；交易檔不存在視為沒有交易。
func (l *Ledger) Load() (LoadReport, error) {
	var rep LoadReport

	arecs, askipped, err := storage.ReadAccounts(l.accountsPath)
	if err != nil {
		l.log.Warn("load accounts failed", zap.String("path", l.accountsPath), zap.Error(err))
		return rep, fmt.Errorf("load accounts: %w", err)
	}
	trecs, tskipped, err := storage.ReadTransactions(l.transactionsPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.log.Warn("load transactions failed", zap.String("path", l.transactionsPath), zap.Error(err))
		return rep, fmt.Errorf("load transactions: %w", err)
	}
	for _, e := range askipped {
		rep.Skipped = append(rep.Skipped, e)
	}
	for _, e := range tskipped {
		rep.Skipped = append(rep.Skipped, e)
	}

	accounts := make(map[string]Account, len(arecs))
	var order []string
	for _, r := range arecs {
		acc, err := fromRecord(r)
		if err != nil {
			rep.Skipped = append(rep.Skipped, fmt.Errorf("%s: account %s: %w", l.accountsPath, r.Number, err))
			continue
		}
		k := key(acc.Number())
		if _, ok := accounts[k]; !ok {
			order = append(order, k)
		}
		accounts[k] = acc
	}

	txns := make([]Transaction, 0, len(trecs))
	for _, r := range trecs {
		kind, err := ParseTransactionType(r.Type)
		if err != nil {
			rep.Skipped = append(rep.Skipped, fmt.Errorf("%s: transaction %s: %w", l.transactionsPath, r.ID, err))
			continue
		}
		txns = append(txns, Transaction{
			ID:            r.ID,
			AccountNumber: r.AccountNumber,
			Type:          kind,
			Amount:        r.Amount,
			BalanceAfter:  r.BalanceAfter,
			Timestamp:     r.Timestamp,
		})
	}

	for _, e := range rep.Skipped {
		l.log.Warn("skipped record", zap.Error(e))
	}

	// 全部解析成功後才替換
	l.mu.Lock()
	l.accounts, l.order = accounts, order
	l.accountNo.Reset()
	for _, k := range order {
		l.accountNo.Advance(accounts[k].Number())
	}
	l.mu.Unlock()

	l.txMu.Lock()
	l.txns = txns
	l.txnNo.Reset()
	for _, tx := range txns {
		l.txnNo.Advance(tx.ID)
	}
	l.txMu.Unlock()

	rep.Accounts, rep.Transactions = len(accounts), len(txns)
	l.log.Info("ledger loaded",
		zap.Int("accounts", rep.Accounts),
		zap.Int("transactions", rep.Transactions),
		zap.Int("skipped", len(rep.Skipped)))
	return rep, nil
}
