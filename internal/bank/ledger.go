// internal/bank/ledger.go

// Package bank 定義核心商業邏輯：客戶、帳戶、交易、轉帳、彙總與文字檔持久化。
//
// 同步策略：
//   - 每個帳戶自帶互斥鎖，Ledger 在同一個臨界區內「變更餘額 + 追加交易」，
//     因此交易的 BalanceAfter 一定對應真實發生過的餘額。
//   - 帳戶索引表由 mu（RWMutex）保護；交易清單由 txMu 保護，
//     不同帳戶的鎖可同時追加交易。
//   - 金額一律使用 decimal.Decimal，避免浮點誤差。
package bank

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ledger 為聚合根 (Aggregate Root)：管理所有帳戶與交易。
// - accounts：以大寫帳號為 key，查詢不分大小寫。
// - order：帳戶加入順序，列表與存檔都依此順序輸出。
// - txns：只追加，順序即建立順序。
type Ledger struct {
	log *zap.Logger
	now func() time.Time

	customers *Sequence
	accountNo *Sequence
	txnNo     *Sequence

	mu       sync.RWMutex
	accounts map[string]Account
	order    []string

	txMu sync.Mutex
	txns []Transaction

	accountsPath     string
	transactionsPath string
}

// Option 用來設定 Ledger。
type Option func(*Ledger)

// WithLogger 注入結構化 logger；傳入 nil 時維持 no-op logger。
func WithLogger(l *zap.Logger) Option {
	return func(lg *Ledger) {
		if l != nil {
			lg.log = l
		}
	}
}

// WithClock 替換交易時間戳記的來源。
func WithClock(now func() time.Time) Option {
	return func(lg *Ledger) { lg.now = now }
}

// WithFiles 設定 Save 與 Load 讀寫的檔案路徑。
func WithFiles(accountsPath, transactionsPath string) Option {
	return func(lg *Ledger) {
		lg.accountsPath = accountsPath
		lg.transactionsPath = transactionsPath
	}
}

// NewLedger 建立空白帳本（僅 in-memory 狀態，序號各自從 1 開始）。
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		log:              zap.NewNop(),
		now:              time.Now,
		customers:        NewSequence("CUS", 3),
		accountNo:        NewSequence("ACC", 3),
		txnNo:            NewSequence("TXN", 4),
		accounts:         make(map[string]Account),
		accountsPath:     "data/accounts.txt",
		transactionsPath: "data/transactions.txt",
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func key(id string) string { return strings.ToUpper(strings.TrimSpace(id)) }

// NewCustomer 以下一個客戶序號建立客戶。
func (l *Ledger) NewCustomer(name string, age int, contact, address string, cat Category) *Customer {
	return newCustomer(l.customers.Next(), name, age, contact, address, cat)
}

// OpenAccount 依客戶等級套用預設規則開戶並加入帳本；初始餘額不得為負。
// 開戶本身不產生交易紀錄。
func (l *Ledger) OpenAccount(c *Customer, kind AccountType, initial decimal.Decimal) (Account, error) {
	if initial.IsNegative() {
		return nil, ErrInvalidAmount
	}
	acc, err := newAccountFor(l.accountNo.Next(), c, kind, initial)
	if err != nil {
		return nil, err
	}
	l.AddAccount(acc)
	l.log.Info("account opened",
		zap.String("account", acc.Number()),
		zap.String("type", string(acc.Type())),
		zap.String("customer", c.Name))
	return acc, nil
}

// AddAccount 以帳號為 key 加入帳戶；重複帳號直接覆寫（保留原本的排列位置）。
func (l *Ledger) AddAccount(acc Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := key(acc.Number())
	if _, ok := l.accounts[k]; !ok {
		l.order = append(l.order, k)
	}
	l.accounts[k] = acc
}

// FindAccount 不分大小寫精確比對；找不到回傳 ErrAccountNotFound。
func (l *Ledger) FindAccount(id string) (Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acc, ok := l.accounts[key(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return acc, nil
}

// Accounts 依加入順序回傳所有帳戶。
func (l *Ledger) Accounts() []Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Account, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.accounts[k])
	}
	return out
}

func (l *Ledger) AccountCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.accounts)
}

// TotalBalance 每次呼叫即時加總所有帳戶餘額（不快取）。
func (l *Ledger) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, acc := range l.Accounts() {
		total = total.Add(acc.Balance())
	}
	return total
}

// AddTransaction 追加一筆交易；並發安全。
// ID 為空時配發下一個交易序號，時間為零值時填入目前時間。
// 回傳實際存入的副本。
func (l *Ledger) AddTransaction(tx Transaction) Transaction {
	l.txMu.Lock()
	defer l.txMu.Unlock()
	if tx.ID == "" {
		tx.ID = l.txnNo.Next()
	} else {
		l.txnNo.Advance(tx.ID)
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = l.now().Truncate(time.Second)
	}
	l.txns = append(l.txns, tx)
	return tx
}

// Transactions 回傳所有交易的副本（建立順序）。
func (l *Ledger) Transactions() []Transaction {
	l.txMu.Lock()
	defer l.txMu.Unlock()
	out := make([]Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

func (l *Ledger) TransactionCount() int {
	l.txMu.Lock()
	defer l.txMu.Unlock()
	return len(l.txns)
}

// TransactionsForAccount 回傳指定帳戶的交易（保留建立順序，帳號不分大小寫）。
func (l *Ledger) TransactionsForAccount(id string) []Transaction {
	l.txMu.Lock()
	defer l.txMu.Unlock()
	var out []Transaction
	for _, tx := range l.txns {
		if strings.EqualFold(tx.AccountNumber, id) {
			out = append(out, tx)
		}
	}
	return out
}

// TotalByType 加總指定帳戶、指定類型的交易金額。
func (l *Ledger) TotalByType(id string, kind TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.TransactionsForAccount(id) {
		if strings.EqualFold(string(tx.Type), string(kind)) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func (l *Ledger) TotalDeposits(id string) decimal.Decimal    { return l.TotalByType(id, Deposit) }
func (l *Ledger) TotalWithdrawals(id string) decimal.Decimal { return l.TotalByType(id, Withdraw) }

// Process 對指定帳戶執行存款或提款，成功時追加一筆交易。
// 失敗（金額非法、違反餘額規則、類型未知）時餘額不變、不產生紀錄。
func (l *Ledger) Process(id string, kind TransactionType, amount decimal.Decimal) (Transaction, error) {
	acc, err := l.FindAccount(id)
	if err != nil {
		return Transaction{}, err
	}
	return l.apply(acc, kind, amount)
}

// apply 為「變更餘額 + 追加交易」的原子單位：整段期間持有帳戶鎖。
func (l *Ledger) apply(acc Account, kind TransactionType, amount decimal.Decimal) (Transaction, error) {
	c := acc.core()
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := processLocked(acc, amount, kind); err != nil {
		l.log.Debug("transaction rejected",
			zap.String("account", c.number),
			zap.String("type", string(kind)),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return Transaction{}, err
	}
	kind, _ = ParseTransactionType(string(kind)) // 已由 processLocked 驗證
	return l.AddTransaction(Transaction{
		AccountNumber: c.number,
		Type:          kind,
		Amount:        amount,
		BalanceAfter:  c.balance,
	}), nil
}

// Transfer 轉帳：先自來源提款（套用來源帳戶規則），再存入目標，
// 成功時依序紀錄 WITHDRAW 與 DEPOSIT 兩筆交易。
// 兩個帳戶依帳號排序上鎖，避免對向轉帳互相等待。
func (l *Ledger) Transfer(fromID, toID string, amount decimal.Decimal) (out, in Transaction, err error) {
	if !amount.IsPositive() {
		return out, in, ErrInvalidAmount
	}
	from, err := l.FindAccount(fromID)
	if err != nil {
		return out, in, err
	}
	to, err := l.FindAccount(toID)
	if err != nil {
		return out, in, err
	}
	if key(from.Number()) == key(to.Number()) {
		return out, in, ErrSameAccount
	}

	locks := []*accountCore{from.core(), to.core()}
	sort.Slice(locks, func(i, j int) bool { return key(locks[i].number) < key(locks[j].number) })
	for _, c := range locks {
		c.mu.Lock()
	}
	defer func() {
		for _, c := range locks {
			c.mu.Unlock()
		}
	}()

	if err := from.withdrawLocked(amount); err != nil {
		return out, in, err
	}
	if err := to.core().depositLocked(amount); err != nil {
		// 來源已扣款，存入失敗時退回
		_ = from.core().depositLocked(amount)
		return out, in, err
	}

	out = l.AddTransaction(Transaction{AccountNumber: from.Number(), Type: Withdraw, Amount: amount, BalanceAfter: from.core().balance})
	in = l.AddTransaction(Transaction{AccountNumber: to.Number(), Type: Deposit, Amount: amount, BalanceAfter: to.core().balance})
	l.log.Info("transfer completed",
		zap.String("from", from.Number()),
		zap.String("to", to.Number()),
		zap.String("amount", amount.String()))
	return out, in, nil
}

// ApplyMonthlyFee 對支票帳戶扣除月費並回傳新餘額；不產生交易紀錄。
func (l *Ledger) ApplyMonthlyFee(id string) (decimal.Decimal, error) {
	acc, err := l.FindAccount(id)
	if err != nil {
		return decimal.Zero, err
	}
	chk, ok := acc.(*CheckingAccount)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNotCheckingAccount, acc.Number())
	}
	bal := chk.ApplyMonthlyFee()
	l.log.Info("monthly fee applied", zap.String("account", chk.Number()), zap.String("balance", bal.String()))
	return bal, nil
}
