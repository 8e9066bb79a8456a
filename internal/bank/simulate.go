// internal/bank/simulate.go

package bank

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// simulationWorkers 為示範用的固定 worker 數。
const simulationWorkers = 3

// Operation 為模擬中的一個存款或提款動作。
type Operation struct {
	Kind   TransactionType
	Amount decimal.Decimal
}

// DefaultOperations 兩筆存款、一筆提款。
var DefaultOperations = []Operation{
	{Kind: Deposit, Amount: decimal.NewFromInt(500)},
	{Kind: Deposit, Amount: decimal.NewFromInt(300)},
	{Kind: Withdraw, Amount: decimal.NewFromInt(200)},
}

// Outcome 為單一 worker 的結果；Err 不為 nil 時 Tx 為零值。
type Outcome struct {
	Worker int
	Op     Operation
	Tx     Transaction
	Err    error
}

// SimulationResult 彙整一次並發模擬。
type SimulationResult struct {
	RunID        string
	Account      string
	Outcomes     []Outcome
	FinalBalance decimal.Decimal
}

// Simulate 對同一帳戶並發執行 ops（未指定時使用 DefaultOperations）。
// 每個動作與其交易紀錄在帳戶鎖內一次完成，
// 所以每筆交易的 BalanceAfter 都等於該動作完成當下的帳戶餘額。
// 個別動作失敗不會中斷其他 worker，只記錄在對應的 Outcome。
func (l *Ledger) Simulate(id string, ops ...Operation) (SimulationResult, error) {
	acc, err := l.FindAccount(id)
	if err != nil {
		return SimulationResult{}, err
	}
	if len(ops) == 0 {
		ops = DefaultOperations
	}

	res := SimulationResult{
		RunID:    uuid.NewString(),
		Account:  acc.Number(),
		Outcomes: make([]Outcome, len(ops)),
	}
	log := l.log.With(zap.String("run_id", res.RunID), zap.String("account", acc.Number()))
	log.Info("simulation started", zap.Int("operations", len(ops)))

	var g errgroup.Group
	g.SetLimit(simulationWorkers)
	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			tx, err := l.apply(acc, op.Kind, op.Amount)
			res.Outcomes[i] = Outcome{Worker: i + 1, Op: op, Tx: tx, Err: err}
			if err != nil {
				log.Warn("worker rejected",
					zap.Int("worker", i+1),
					zap.String("type", string(op.Kind)),
					zap.String("amount", op.Amount.String()),
					zap.Error(err))
				return nil
			}
			log.Info("worker applied",
				zap.Int("worker", i+1),
				zap.String("txn", tx.ID),
				zap.String("type", string(tx.Type)),
				zap.String("amount", tx.Amount.String()),
				zap.String("balance_after", tx.BalanceAfter.String()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	res.FinalBalance = acc.Balance()
	log.Info("simulation finished", zap.String("final_balance", res.FinalBalance.String()))
	return res, nil
}
