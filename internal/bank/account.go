// internal/bank/account.go
//
// 本檔定義 Account 介面及兩種帳戶變體（儲蓄、支票），不含任何 console 或儲存細節。
//
// 每個帳戶各自持有一把 sync.Mutex；不同帳戶的操作互不競爭。
// 匯出的變更方法（Deposit、Withdraw…）會自行取得鎖；
// 名稱以 Locked 結尾的內部方法則假設呼叫端已持有鎖，
// 讓 Ledger 能把「變更餘額 + 追加交易」包在同一個臨界區內。

package bank

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// AccountType 為帳戶變體。
type AccountType string

const (
	Savings  AccountType = "Savings"
	Checking AccountType = "Checking"
)

// ParseAccountType 解析帳戶類型（不分大小寫）。
func ParseAccountType(s string) (AccountType, error) {
	switch {
	case strings.EqualFold(s, string(Savings)), strings.EqualFold(s, "saving"):
		return Savings, nil
	case strings.EqualFold(s, string(Checking)):
		return Checking, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// Status 為帳戶狀態；目前只會產生 ACTIVE。
type Status string

const StatusActive Status = "ACTIVE"

// 開戶預設值。
var (
	regularSavingsRate = decimal.RequireFromString("3.5")
	premiumSavingsRate = decimal.NewFromInt(5)
	regularSavingsMin  = decimal.NewFromInt(500)
	premiumSavingsMin  = decimal.NewFromInt(100)

	defaultOverdraftLimit = decimal.NewFromInt(1000)
	defaultMonthlyFee     = decimal.NewFromInt(10)
)

// Account 是所有帳戶類型共用的操作集合。
type Account interface {
	Number() string
	Customer() *Customer
	Balance() decimal.Decimal
	Status() Status
	Type() AccountType

	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	ProcessTransaction(amount decimal.Decimal, kind TransactionType) error
	Details() string

	core() *accountCore
	withdrawLocked(amount decimal.Decimal) error
}

// accountCore 為所有變體共用的狀態。
// mu 保護 balance 與 status；number、customer 建立後不變。
type accountCore struct {
	mu       sync.Mutex
	number   string
	customer *Customer
	balance  decimal.Decimal
	status   Status
}

func (a *accountCore) core() *accountCore { return a }

func (a *accountCore) Number() string      { return a.number }
func (a *accountCore) Customer() *Customer { return a.customer }

func (a *accountCore) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *accountCore) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Deposit 存款：金額需 > 0，否則回傳 ErrInvalidAmount 且餘額不變。
// 不會產生交易紀錄，紀錄由呼叫端（Ledger）負責。
func (a *accountCore) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.depositLocked(amount)
}

func (a *accountCore) depositLocked(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

func (a *accountCore) header(kind AccountType) string {
	return fmt.Sprintf("ACC NO: %s | CUSTOMER: %s | TYPE: %s | BALANCE: %s | STATUS: %s",
		a.number, a.customer.Name, kind, a.balance.StringFixed(2), a.status)
}

// processLocked 依交易類型分派到存款或提款；呼叫端須持有 acc 的鎖。
// 標籤解析與載入時共用 ParseTransactionType，別名規則只有一套。
func processLocked(acc Account, amount decimal.Decimal, kind TransactionType) error {
	k, err := ParseTransactionType(string(kind))
	if err != nil {
		return err
	}
	if k == Deposit {
		return acc.core().depositLocked(amount)
	}
	return acc.withdrawLocked(amount)
}

// SavingsAccount 儲蓄帳戶：提款後餘額不得低於 minimumBalance。
type SavingsAccount struct {
	accountCore
	interestRate   decimal.Decimal
	minimumBalance decimal.Decimal
}

// NewSavingsAccount 以指定的利率與最低餘額建立 ACTIVE 狀態的儲蓄帳戶。
func NewSavingsAccount(number string, c *Customer, balance, rate, minimumBalance decimal.Decimal) *SavingsAccount {
	return &SavingsAccount{
		accountCore:    accountCore{number: number, customer: c, balance: balance, status: StatusActive},
		interestRate:   rate,
		minimumBalance: minimumBalance,
	}
}

func (s *SavingsAccount) Type() AccountType { return Savings }

func (s *SavingsAccount) InterestRate() decimal.Decimal   { return s.interestRate }
func (s *SavingsAccount) MinimumBalance() decimal.Decimal { return s.minimumBalance }

// Withdraw 僅在 balance-amount >= minimumBalance 時成功；
// 失敗時回傳包裝 ErrInsufficientFunds 的錯誤，餘額不變。
func (s *SavingsAccount) Withdraw(amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withdrawLocked(amount)
}

func (s *SavingsAccount) withdrawLocked(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	next := s.balance.Sub(amount)
	if next.LessThan(s.minimumBalance) {
		return fmt.Errorf("%w: minimum balance $%s must be maintained", ErrInsufficientFunds, s.minimumBalance.StringFixed(2))
	}
	s.balance = next
	return nil
}

func (s *SavingsAccount) ProcessTransaction(amount decimal.Decimal, kind TransactionType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return processLocked(s, amount, kind)
}

// InterestEarned 回傳 餘額 * 利率 / 100。
func (s *SavingsAccount) InterestEarned() decimal.Decimal {
	return s.Balance().Mul(s.interestRate).Div(decimal.NewFromInt(100))
}

func (s *SavingsAccount) Details() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	interest := s.balance.Mul(s.interestRate).Div(decimal.NewFromInt(100))
	return s.header(Savings) + fmt.Sprintf("\n    | Interest Rate: %s%% | Minimum Balance: $%s | Interest Earned: $%s",
		s.interestRate.String(), s.minimumBalance.StringFixed(2), interest.StringFixed(2))
}

// CheckingAccount 支票帳戶：餘額可透支至 -overdraftLimit，另有固定月費。
type CheckingAccount struct {
	accountCore
	overdraftLimit decimal.Decimal
	monthlyFee     decimal.Decimal
}

// NewCheckingAccount 以指定的透支額度與月費建立 ACTIVE 狀態的支票帳戶。
func NewCheckingAccount(number string, c *Customer, balance, overdraftLimit, monthlyFee decimal.Decimal) *CheckingAccount {
	return &CheckingAccount{
		accountCore:    accountCore{number: number, customer: c, balance: balance, status: StatusActive},
		overdraftLimit: overdraftLimit,
		monthlyFee:     monthlyFee,
	}
}

func (c *CheckingAccount) Type() AccountType { return Checking }

func (c *CheckingAccount) OverdraftLimit() decimal.Decimal { return c.overdraftLimit }
func (c *CheckingAccount) MonthlyFee() decimal.Decimal     { return c.monthlyFee }

// Withdraw 在 balance-amount < -overdraftLimit 時回傳包裝 ErrOverdraftExceeded 的錯誤。
func (c *CheckingAccount) Withdraw(amount decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.withdrawLocked(amount)
}

func (c *CheckingAccount) withdrawLocked(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	next := c.balance.Sub(amount)
	if next.LessThan(c.overdraftLimit.Neg()) {
		return fmt.Errorf("%w: overdraft limit $%s", ErrOverdraftExceeded, c.overdraftLimit.StringFixed(2))
	}
	c.balance = next
	return nil
}

func (c *CheckingAccount) ProcessTransaction(amount decimal.Decimal, kind TransactionType) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return processLocked(c, amount, kind)
}

// ApplyMonthlyFee 無條件扣除月費並回傳新餘額；沒有排程，由呼叫端決定何時執行。
func (c *CheckingAccount) ApplyMonthlyFee() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance = c.balance.Sub(c.monthlyFee)
	return c.balance
}

func (c *CheckingAccount) Details() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header(Checking) + fmt.Sprintf("\n    | Overdraft Limit: $%s | Monthly Fee: $%s | Balance after Fee: $%s",
		c.overdraftLimit.StringFixed(2), c.monthlyFee.StringFixed(2), c.balance.Sub(c.monthlyFee).StringFixed(2))
}

// newAccountFor 依客戶等級套用預設規則建立新帳戶。
func newAccountFor(number string, c *Customer, kind AccountType, initial decimal.Decimal) (Account, error) {
	switch kind {
	case Savings:
		rate, floor := regularSavingsRate, regularSavingsMin
		if c.IsPremium() {
			rate, floor = premiumSavingsRate, premiumSavingsMin
		}
		return NewSavingsAccount(number, c, initial, rate, floor), nil
	case Checking:
		return NewCheckingAccount(number, c, initial, defaultOverdraftLimit, defaultMonthlyFee), nil
	}
	return nil, fmt.Errorf("unknown account type %q", kind)
}
