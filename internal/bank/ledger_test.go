// internal/bank/ledger_test.go
//
// Ledger 的單元與整合測試：帳戶索引、交易紀錄、轉帳、彙總與並發安全。
// 全部在記憶體中執行，不依賴外部服務。

package bank

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// find 為小工具：安全取出帳戶，失敗時立即讓測試失敗。
func find(t *testing.T, l *Ledger, id string) Account {
	t.Helper()
	acc, err := l.FindAccount(id)
	if err != nil {
		t.Fatalf("FindAccount(%s) err=%v", id, err)
	}
	return acc
}

// open 以一般客戶開戶。
func open(t *testing.T, l *Ledger, kind AccountType, initial string) Account {
	t.Helper()
	c := l.NewCustomer("Test", 30, "0788000000", "test@example.com", Regular)
	acc, err := l.OpenAccount(c, kind, d(initial))
	if err != nil {
		t.Fatal(err)
	}
	return acc
}

// assertChain 驗證交易的 BalanceAfter 與某個序列化順序一致：
// 從 start 依建立順序套用每筆交易，每一步都要等於該筆的 BalanceAfter。
func assertChain(t *testing.T, start decimal.Decimal, txns []Transaction) decimal.Decimal {
	t.Helper()
	running := start
	for i, tx := range txns {
		running = running.Add(tx.Signed())
		if !running.Equal(tx.BalanceAfter) {
			t.Fatalf("txn #%d %s: running=%s balanceAfter=%s", i, tx.ID, running, tx.BalanceAfter)
		}
	}
	return running
}

// TestFindAccountCaseInsensitive 查詢不分大小寫；找不到時回傳 ErrAccountNotFound。
func TestFindAccountCaseInsensitive(t *testing.T) {
	l := NewLedger()
	acc := open(t, l, Savings, "1000")

	if got := find(t, l, "acc001"); got != acc {
		t.Fatalf("lower-case lookup returned %v", got.Number())
	}
	if _, err := l.FindAccount("ACC999"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

// TestAddAccountOverwrites 重複帳號會覆寫，且保留原本的排列位置。
func TestAddAccountOverwrites(t *testing.T) {
	l := NewLedger()
	open(t, l, Savings, "1000")
	open(t, l, Checking, "200")

	replacement := NewCheckingAccount("ACC001", customerStub("New"), d("42"), d("0"), d("0"))
	l.AddAccount(replacement)

	if l.AccountCount() != 2 {
		t.Fatalf("count=%d want=2", l.AccountCount())
	}
	all := l.Accounts()
	if all[0] != Account(replacement) || all[1].Number() != "ACC002" {
		t.Fatalf("order after overwrite: %s %s", all[0].Number(), all[1].Number())
	}
}

// TestProcessRecordsTransaction
// ✅ 成功時追加一筆交易，BalanceAfter 等於變更後餘額；
// ❌ 失敗時餘額不變，也不產生紀錄。
func TestProcessRecordsTransaction(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 30, 15, 500, time.Local)
	l := NewLedger(WithClock(func() time.Time { return at }))
	acc := open(t, l, Savings, "1000")

	tx, err := l.Process("acc001", "deposit", d("250"))
	if err != nil {
		t.Fatal(err)
	}
	if tx.ID != "TXN0001" || tx.Type != Deposit || tx.AccountNumber != "ACC001" {
		t.Fatalf("unexpected txn %+v", tx)
	}
	if !tx.BalanceAfter.Equal(d("1250")) {
		t.Fatalf("balanceAfter=%s want=1250", tx.BalanceAfter)
	}
	if !tx.Timestamp.Equal(at.Truncate(time.Second)) {
		t.Fatalf("timestamp=%v", tx.Timestamp)
	}

	// ❌ 違反最低餘額
	if _, err := l.Process("ACC001", Withdraw, d("1000")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	// ❌ 未知類型
	if _, err := l.Process("ACC001", "INTEREST", d("1")); !errors.Is(err, ErrUnknownTransactionType) {
		t.Fatalf("want ErrUnknownTransactionType, got %v", err)
	}
	// ❌ 不存在的帳戶
	if _, err := l.Process("ACC404", Deposit, d("1")); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}

	assertBalance(t, acc, "1250")
	if n := l.TransactionCount(); n != 1 {
		t.Fatalf("transactions=%d want=1", n)
	}
}

// TestProcessAcceptsWithdrawalAlias 直接呼叫與檔案載入使用同一套標籤規則。
func TestProcessAcceptsWithdrawalAlias(t *testing.T) {
	l := NewLedger()
	acc := open(t, l, Checking, "100")

	tx, err := l.Process(acc.Number(), "withdrawal", d("40"))
	if err != nil {
		t.Fatalf("WITHDRAWAL alias: %v", err)
	}
	if tx.Type != Withdraw || !tx.BalanceAfter.Equal(d("60")) {
		t.Fatalf("txn %+v", tx)
	}
	if err := acc.ProcessTransaction(d("10"), "WITHDRAWAL"); err != nil {
		t.Fatalf("account-level alias: %v", err)
	}
	assertBalance(t, acc, "50")
}

// TestTransferScenario
// 儲蓄 1000 → 支票 50 轉 100：恰好兩筆交易（WITHDRAW 在前），餘額 900 / 150。
func TestTransferScenario(t *testing.T) {
	l := NewLedger()
	src := open(t, l, Savings, "1000")
	dst := open(t, l, Checking, "50")

	out, in, err := l.Transfer(src.Number(), dst.Number(), d("100"))
	if err != nil {
		t.Fatal(err)
	}
	assertBalance(t, src, "900")
	assertBalance(t, dst, "150")

	txns := l.Transactions()
	if len(txns) != 2 {
		t.Fatalf("transactions=%d want=2", len(txns))
	}
	if txns[0] != out || txns[1] != in {
		t.Fatalf("returned transactions differ from recorded ones")
	}
	if out.Type != Withdraw || out.AccountNumber != "ACC001" || !out.BalanceAfter.Equal(d("900")) {
		t.Fatalf("withdraw leg %+v", out)
	}
	if in.Type != Deposit || in.AccountNumber != "ACC002" || !in.BalanceAfter.Equal(d("150")) {
		t.Fatalf("deposit leg %+v", in)
	}
}

// TestTransferFailures 失敗時兩邊餘額皆不變，也不產生任何紀錄。
func TestTransferFailures(t *testing.T) {
	l := NewLedger()
	src := open(t, l, Savings, "600")
	dst := open(t, l, Checking, "0")

	cases := []struct {
		name     string
		from, to string
		amount   string
		want     error
	}{
		{"below minimum", "ACC001", "ACC002", "200", ErrInsufficientFunds},
		{"zero amount", "ACC001", "ACC002", "0", ErrInvalidAmount},
		{"same account", "ACC001", "acc001", "10", ErrSameAccount},
		{"missing source", "ACC009", "ACC002", "10", ErrAccountNotFound},
		{"missing target", "ACC001", "ACC009", "10", ErrAccountNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := l.Transfer(tc.from, tc.to, d(tc.amount)); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
	assertBalance(t, src, "600")
	assertBalance(t, dst, "0")
	if n := l.TransactionCount(); n != 0 {
		t.Fatalf("transactions=%d want=0", n)
	}
}

// TestTotals 總餘額為即時加總；依類型加總只計算指定帳戶。
func TestTotals(t *testing.T) {
	l := NewLedger()
	a := open(t, l, Savings, "1000")
	b := open(t, l, Checking, "0")

	if got := l.TotalBalance(); !got.Equal(d("1000")) {
		t.Fatalf("total=%s want=1000", got)
	}

	steps := []struct {
		acc    Account
		kind   TransactionType
		amount string
	}{
		{a, Deposit, "100"},
		{a, Deposit, "50.5"},
		{a, Withdraw, "20"},
		{b, Withdraw, "300"},
		{b, Deposit, "75"},
	}
	for _, s := range steps {
		if _, err := l.Process(s.acc.Number(), s.kind, d(s.amount)); err != nil {
			t.Fatal(err)
		}
	}

	if got := l.TotalBalance(); !got.Equal(d("905.5")) {
		t.Fatalf("total=%s want=905.5", got)
	}
	if got := l.TotalDeposits("ACC001"); !got.Equal(d("150.5")) {
		t.Fatalf("deposits=%s want=150.5", got)
	}
	if got := l.TotalWithdrawals("acc001"); !got.Equal(d("20")) {
		t.Fatalf("withdrawals=%s want=20", got)
	}
	if got := l.TotalByType("ACC002", Withdraw); !got.Equal(d("300")) {
		t.Fatalf("ACC002 withdrawals=%s want=300", got)
	}
	if got := l.TotalByType("ACC003", Deposit); !got.IsZero() {
		t.Fatalf("unknown account total=%s want=0", got)
	}
	if n := len(l.TransactionsForAccount("ACC002")); n != 2 {
		t.Fatalf("ACC002 transactions=%d want=2", n)
	}
}

// TestLedgerApplyMonthlyFee 只適用支票帳戶，且不產生交易紀錄。
func TestLedgerApplyMonthlyFee(t *testing.T) {
	l := NewLedger()
	open(t, l, Savings, "1000")
	chk := open(t, l, Checking, "100")

	bal, err := l.ApplyMonthlyFee("acc002")
	if err != nil {
		t.Fatal(err)
	}
	if !bal.Equal(d("90")) {
		t.Fatalf("balance=%s want=90", bal)
	}
	assertBalance(t, chk, "90")

	if _, err := l.ApplyMonthlyFee("ACC001"); !errors.Is(err, ErrNotCheckingAccount) {
		t.Fatalf("want ErrNotCheckingAccount, got %v", err)
	}
	if n := l.TransactionCount(); n != 0 {
		t.Fatalf("transactions=%d want=0", n)
	}
}

// TestAddTransactionConcurrent 並發追加不會遺失紀錄，ID 也不會重複。
func TestAddTransactionConcurrent(t *testing.T) {
	l := NewLedger()
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.AddTransaction(Transaction{
				AccountNumber: fmt.Sprintf("ACC%03d", i%5+1),
				Type:          Deposit,
				Amount:        decimal.NewFromInt(int64(i + 1)),
			})
		}(i)
	}
	wg.Wait()

	txns := l.Transactions()
	if len(txns) != n {
		t.Fatalf("transactions=%d want=%d", len(txns), n)
	}
	seen := make(map[string]bool, n)
	for i, tx := range txns {
		if want := fmt.Sprintf("TXN%04d", i+1); tx.ID != want {
			t.Fatalf("txns[%d].ID=%s want=%s", i, tx.ID, want)
		}
		if seen[tx.ID] {
			t.Fatalf("duplicate id %s", tx.ID)
		}
		seen[tx.ID] = true
	}
}

// TestAddTransactionKeepsGivenID 帶入的 ID 會推進序號，之後配發的 ID 不會撞號。
func TestAddTransactionKeepsGivenID(t *testing.T) {
	l := NewLedger()
	l.AddTransaction(Transaction{ID: "TXN0041", AccountNumber: "ACC001", Type: Deposit, Amount: d("1")})
	tx := l.AddTransaction(Transaction{AccountNumber: "ACC001", Type: Deposit, Amount: d("1")})
	if tx.ID != "TXN0042" {
		t.Fatalf("next id=%s want=TXN0042", tx.ID)
	}
}

// TestConcurrentProcessSameAccount
// 多個 goroutine 同時對同一帳戶存提款：
// 每筆成功交易都必須記錄，且 BalanceAfter 與建立順序構成一致的餘額鏈。
func TestConcurrentProcessSameAccount(t *testing.T) {
	l := NewLedger()
	acc := open(t, l, Checking, "100")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := Deposit
			if i%2 == 1 {
				kind = Withdraw
			}
			_, _ = l.Process(acc.Number(), kind, decimal.NewFromInt(int64(i%7+1)))
		}(i)
	}
	wg.Wait()

	final := assertChain(t, d("100"), l.TransactionsForAccount(acc.Number()))
	if !final.Equal(acc.Balance()) {
		t.Fatalf("chain end=%s balance=%s", final, acc.Balance())
	}
}

// TestConcurrentOppositeTransfers 對向並發轉帳不可死結，總額守恆。
func TestConcurrentOppositeTransfers(t *testing.T) {
	l := NewLedger()
	a := open(t, l, Checking, "1000")
	b := open(t, l, Checking, "1000")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, _ = l.Transfer(a.Number(), b.Number(), d("3"))
		}()
		go func() {
			defer wg.Done()
			_, _, _ = l.Transfer(b.Number(), a.Number(), d("2"))
		}()
	}
	wg.Wait()

	if got := l.TotalBalance(); !got.Equal(d("2000")) {
		t.Fatalf("total=%s want=2000", got)
	}
	assertBalance(t, a, "900")
	assertBalance(t, b, "1100")
	if n := l.TransactionCount(); n != 400 {
		t.Fatalf("transactions=%d want=400", n)
	}
	assertChain(t, d("1000"), l.TransactionsForAccount(a.Number()))
	assertChain(t, d("1000"), l.TransactionsForAccount(b.Number()))
}

// TestSeedDemoData 示範資料：五個帳戶、五筆交易。
func TestSeedDemoData(t *testing.T) {
	l := NewLedger()
	if err := SeedDemoData(l); err != nil {
		t.Fatal(err)
	}
	if l.AccountCount() != 5 || l.TransactionCount() != 5 {
		t.Fatalf("accounts=%d transactions=%d", l.AccountCount(), l.TransactionCount())
	}
	assertBalance(t, find(t, l, "ACC001"), "5500")
	assertBalance(t, find(t, l, "ACC003"), "6600")
	assertBalance(t, find(t, l, "ACC005"), "6500")
	if got := l.TotalBalance(); !got.Equal(d("27300")) {
		t.Fatalf("total=%s want=27300", got)
	}
	if c := find(t, l, "ACC004").Customer(); !c.IsPremium() || c.ID != "CUS004" {
		t.Fatalf("ACC004 customer %+v", c)
	}
}
