// internal/bank/seed.go

package bank

import "github.com/shopspring/decimal"

// SeedDemoData 建立示範資料：五位客戶、五個帳戶，各一筆初始交易。
func SeedDemoData(l *Ledger) error {
	type row struct {
		name, contact, address string
		age                    int
		cat                    Category
		kind                   AccountType
		opening                int64
		op                     TransactionType
		amount                 int64
	}
	rows := []row{
		{"Alice", "0788555555", "alice@example.com", 64, Regular, Savings, 5000, Deposit, 500},
		{"Shema", "0788544335", "shema@example.com", 54, Regular, Savings, 2000, Deposit, 1500},
		{"Bruce", "0788522522", "bruce@example.com", 24, Regular, Savings, 7500, Withdraw, 900},
		{"Ange", "0788115511", "ange@example.com", 30, Premium, Checking, 4000, Deposit, 1200},
		{"Peace", "0788235445", "peace@example.com", 54, Premium, Checking, 8000, Withdraw, 1500},
	}
	for _, r := range rows {
		c := l.NewCustomer(r.name, r.age, r.contact, r.address, r.cat)
		acc, err := l.OpenAccount(c, r.kind, decimal.NewFromInt(r.opening))
		if err != nil {
			return err
		}
		if _, err := l.apply(acc, r.op, decimal.NewFromInt(r.amount)); err != nil {
			return err
		}
	}
	return nil
}
