// internal/bank/simulate_test.go

package bank

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TestSimulateDefaultOperations
// 三個 worker 同時對同一帳戶 +500、+300、-200：最終餘額 B+600，恰好三筆交易，
// 且 BalanceAfter 與某個執行順序一致。
func TestSimulateDefaultOperations(t *testing.T) {
	for round := 0; round < 20; round++ {
		l := NewLedger(WithLogger(zap.NewNop()))
		acc := open(t, l, Savings, "1000")

		res, err := l.Simulate("acc001")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := uuid.Parse(res.RunID); err != nil {
			t.Fatalf("run id %q: %v", res.RunID, err)
		}
		if res.Account != "ACC001" || len(res.Outcomes) != 3 {
			t.Fatalf("result %+v", res)
		}
		for _, o := range res.Outcomes {
			if o.Err != nil {
				t.Fatalf("worker %d: %v", o.Worker, o.Err)
			}
		}
		if !res.FinalBalance.Equal(d("1600")) {
			t.Fatalf("final=%s want=1600", res.FinalBalance)
		}
		assertBalance(t, acc, "1600")

		txns := l.TransactionsForAccount("ACC001")
		if len(txns) != 3 {
			t.Fatalf("transactions=%d want=3", len(txns))
		}
		assertChain(t, d("1000"), txns)
	}
}

// TestSimulateRejectedWorker 個別 worker 失敗不影響其他 worker，也不產生紀錄。
func TestSimulateRejectedWorker(t *testing.T) {
	l := NewLedger()
	open(t, l, Savings, "500")

	res, err := l.Simulate("ACC001",
		Operation{Kind: Withdraw, Amount: d("100")},
		Operation{Kind: Deposit, Amount: d("50")},
	)
	if err != nil {
		t.Fatal(err)
	}

	// 無論執行順序，提款都會跌破最低餘額 500
	failed := 0
	for _, o := range res.Outcomes {
		if o.Err != nil {
			failed++
			if !errors.Is(o.Err, ErrInsufficientFunds) || o.Tx.ID != "" {
				t.Fatalf("unexpected failed outcome %+v", o)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("failed=%d want=1", failed)
	}
	txns := l.TransactionsForAccount("ACC001")
	if len(txns) != 1 || txns[0].Type != Deposit {
		t.Fatalf("transactions %+v", txns)
	}
	if !res.FinalBalance.Equal(d("550")) {
		t.Fatalf("final=%s want=550", res.FinalBalance)
	}
}

func TestSimulateUnknownAccount(t *testing.T) {
	l := NewLedger()
	if _, err := l.Simulate("ACC001"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}
