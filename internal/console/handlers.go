// internal/console/handlers.go

package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"bankledger/internal/bank"
)

// openAccount 互動式開戶：依序詢問客戶資料、等級、帳戶類型與初始金額。
func (c *Console) openAccount([]string) error {
	c.println("\n--- OPEN NEW ACCOUNT ---")
	name, err := c.ask("Customer name: ", validName)
	if err != nil {
		return err
	}
	ageStr, err := c.ask("Age: ", validAge)
	if err != nil {
		return err
	}
	contact, err := c.ask("Contact: ", validContact)
	if err != nil {
		return err
	}
	email, err := c.ask("Email: ", validEmail)
	if err != nil {
		return err
	}
	catStr, err := c.ask("Customer type (regular/premium): ", oneOf("regular", "premium"))
	if err != nil {
		return err
	}
	kindStr, err := c.ask("Account type (savings/checking): ", oneOf("savings", "checking"))
	if err != nil {
		return err
	}
	var initial decimal.Decimal
	if _, err := c.ask("Initial deposit: ", func(s string) error {
		v, err := parseAmount(s, true)
		initial = v
		return err
	}); err != nil {
		return err
	}

	age, _ := strconv.Atoi(ageStr)
	cat, _ := bank.ParseCategory(catStr)
	kind, _ := bank.ParseAccountType(kindStr)

	cust := c.ledger.NewCustomer(name, age, contact, email, cat)
	acc, err := c.ledger.OpenAccount(cust, kind, initial)
	if err != nil {
		return err
	}
	c.printf("\nAccount created successfully!\n%s\n\n%s\n", acc.Details(), cust.Details())
	return nil
}

// listAccounts 依加入順序列出帳戶，最後附上帳戶數與總餘額。
func (c *Console) listAccounts([]string) error {
	accs := c.ledger.Accounts()
	if len(accs) == 0 {
		c.println("No accounts yet.")
		return nil
	}
	tw := c.table()
	fmt.Fprintln(tw, "ACC NO\tCUSTOMER\tTYPE\tBALANCE\tSTATUS")
	for _, a := range accs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.Number(), a.Customer().Name, a.Type(), a.Balance().StringFixed(2), a.Status())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	c.println(rule)
	c.printf("Total Accounts: %d\n", len(accs))
	c.printf("Total Bank Balance: $%s\n", c.ledger.TotalBalance().StringFixed(2))
	return nil
}

func (c *Console) showAccount(args []string) error {
	acc, err := c.account(args[0])
	if err != nil {
		return err
	}
	c.println(acc.Details())
	if cust := acc.Customer(); cust.ID != "" {
		c.println()
		c.println(cust.Details())
	}
	return nil
}

func (c *Console) deposit(args []string) error { return c.process(args, bank.Deposit) }

func (c *Console) withdraw(args []string) error { return c.process(args, bank.Withdraw) }

func (c *Console) process(args []string, kind bank.TransactionType) error {
	if err := validAccount(args[0]); err != nil {
		return err
	}
	amount, err := parseAmount(args[1], false)
	if err != nil {
		return err
	}
	tx, err := c.ledger.Process(args[0], kind, amount)
	if err != nil {
		return err
	}
	c.printf("Transaction %s completed: %s %s on %s. New balance: $%s\n",
		tx.ID, tx.Type, tx.Amount.StringFixed(2), tx.AccountNumber, tx.BalanceAfter.StringFixed(2))
	return nil
}

func (c *Console) transfer(args []string) error {
	for _, id := range args[:2] {
		if err := validAccount(id); err != nil {
			return err
		}
	}
	amount, err := parseAmount(args[2], false)
	if err != nil {
		return err
	}
	out, in, err := c.ledger.Transfer(args[0], args[1], amount)
	if err != nil {
		return err
	}
	c.printf("Transfer of $%s completed.\n", amount.StringFixed(2))
	c.printf("  %s %s balance: $%s\n", out.ID, out.AccountNumber, out.BalanceAfter.StringFixed(2))
	c.printf("  %s %s balance: $%s\n", in.ID, in.AccountNumber, in.BalanceAfter.StringFixed(2))
	return nil
}

func (c *Console) monthlyFee(args []string) error {
	if err := validAccount(args[0]); err != nil {
		return err
	}
	bal, err := c.ledger.ApplyMonthlyFee(args[0])
	if err != nil {
		return err
	}
	c.printf("Monthly fee applied to %s. New balance: $%s\n", strings.ToUpper(args[0]), bal.StringFixed(2))
	return nil
}

// history 由新到舊列出交易，並附上存款、提款與淨變動。
func (c *Console) history(args []string) error {
	acc, err := c.account(args[0])
	if err != nil {
		return err
	}
	id := acc.Number()
	txns := c.ledger.TransactionsForAccount(id)

	c.printf("\n--- TRANSACTION HISTORY FOR %s ---\n", id)
	c.println(rule)
	if len(txns) == 0 {
		c.printf("No transactions found for account %s.\n", id)
		c.println(rule)
		return nil
	}
	tw := c.table()
	fmt.Fprintln(tw, "TXN ID\tDATE/TIME\tTYPE\tAMOUNT\tBALANCE")
	for i := len(txns) - 1; i >= 0; i-- {
		tx := txns[i]
		amt := tx.Signed().StringFixed(2)
		if tx.Signed().IsPositive() {
			amt = "+" + amt
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Timestamp.Format(bank.TimestampLayout), tx.Type, amt, tx.BalanceAfter.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	c.println(rule)

	dep, wd := c.ledger.TotalDeposits(id), c.ledger.TotalWithdrawals(id)
	net := dep.Sub(wd)
	sign := "+"
	if net.IsNegative() {
		sign = "-"
	}
	c.printf("SUMMARY: Total Deposits: $%s | Total Withdrawals: $%s | Net Change: %s$%s\n",
		dep.StringFixed(2), wd.StringFixed(2), sign, net.Abs().StringFixed(2))
	c.println(rule)
	return nil
}

func (c *Console) save([]string) error {
	if err := c.ledger.Save(); err != nil {
		return err
	}
	c.printf("Saved %d accounts and %d transactions.\n", c.ledger.AccountCount(), c.ledger.TransactionCount())
	return nil
}

func (c *Console) load([]string) error {
	rep, err := c.ledger.Load()
	if err != nil {
		return err
	}
	c.printf("Loaded %d accounts and %d transactions.\n", rep.Accounts, rep.Transactions)
	for _, e := range rep.Skipped {
		c.printf("  skipped: %v\n", e)
	}
	return nil
}

func (c *Console) simulate(args []string) error {
	if err := validAccount(args[0]); err != nil {
		return err
	}
	acc, err := c.ledger.FindAccount(args[0])
	if err != nil {
		return err
	}
	start := acc.Balance()

	c.println("\nRunning concurrent transaction simulation...")
	res, err := c.ledger.Simulate(acc.Number())
	if err != nil {
		return err
	}
	for _, o := range res.Outcomes {
		if o.Err != nil {
			c.printf("  worker-%d: %s %s on %s rejected: %v\n", o.Worker, o.Op.Kind, o.Op.Amount.StringFixed(2), res.Account, o.Err)
			continue
		}
		c.printf("  worker-%d: %s %s %s on %s, balance after $%s\n",
			o.Worker, o.Tx.ID, o.Tx.Type, o.Tx.Amount.StringFixed(2), res.Account, o.Tx.BalanceAfter.StringFixed(2))
	}
	c.printf("Thread-safe operations completed successfully.\n")
	c.printf("Balance: $%s -> $%s\n", start.StringFixed(2), res.FinalBalance.StringFixed(2))
	return nil
}

func (c *Console) help([]string) error {
	tw := c.table()
	for _, name := range c.order {
		cmd := c.commands[name]
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.usage, cmd.summary)
	}
	return tw.Flush()
}

// account 先檢查帳號格式再查詢。
func (c *Console) account(id string) (bank.Account, error) {
	if err := validAccount(id); err != nil {
		return nil, err
	}
	return c.ledger.FindAccount(id)
}
