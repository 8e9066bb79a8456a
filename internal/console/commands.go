// internal/console/commands.go
//
// 指令註冊表。與 handlers.go 分離：
//   - handlers.go 定義「如何處理指令」
//   - commands.go 定義「指令如何被導向」
//   - cmd/bank/main.go 組裝整體應用（注入 Ledger、設定、persist 鉤子）

package console

type command struct {
	name    string
	aliases []string
	usage   string
	summary string
	minArgs int
	mutates bool // 成功後觸發 autosave
	run     func(args []string) error
}

// routes 採明確註冊，help 依註冊順序列出。
func (c *Console) routes() {
	c.commands = make(map[string]*command)

	// 帳戶管理
	c.handle(&command{name: "open", usage: "open", summary: "Open a new account (interactive)", mutates: true, run: c.openAccount})
	c.handle(&command{name: "accounts", aliases: []string{"ls"}, usage: "accounts", summary: "List all accounts with totals", run: c.listAccounts})
	c.handle(&command{name: "account", aliases: []string{"show"}, usage: "account <ACC>", summary: "Show account and customer details", minArgs: 1, run: c.showAccount})

	// 交易
	c.handle(&command{name: "deposit", usage: "deposit <ACC> <amount>", summary: "Deposit into an account", minArgs: 2, mutates: true, run: c.deposit})
	c.handle(&command{name: "withdraw", usage: "withdraw <ACC> <amount>", summary: "Withdraw from an account", minArgs: 2, mutates: true, run: c.withdraw})
	c.handle(&command{name: "transfer", usage: "transfer <FROM> <TO> <amount>", summary: "Transfer between two accounts", minArgs: 3, mutates: true, run: c.transfer})
	c.handle(&command{name: "fee", usage: "fee <ACC>", summary: "Apply the monthly fee to a checking account", minArgs: 1, mutates: true, run: c.monthlyFee})

	// 報表
	c.handle(&command{name: "history", aliases: []string{"statement"}, usage: "history <ACC>", summary: "Transaction history, newest first", minArgs: 1, run: c.history})

	// 存取檔案
	c.handle(&command{name: "save", usage: "save", summary: "Save accounts and transactions to disk", run: c.save})
	c.handle(&command{name: "load", usage: "load", summary: "Replace the ledger with the saved files", run: c.load})

	// 並發示範
	c.handle(&command{name: "simulate", usage: "simulate <ACC>", summary: "Run concurrent deposits and a withdrawal on one account", minArgs: 1, mutates: true, run: c.simulate})

	c.handle(&command{name: "help", aliases: []string{"?"}, usage: "help", summary: "Show this list", run: c.help})
	c.handle(&command{name: "exit", aliases: []string{"quit"}, usage: "exit", summary: "Leave the program", run: func([]string) error { return errExit }})
}

func (c *Console) handle(cmd *command) {
	c.order = append(c.order, cmd.name)
	c.commands[cmd.name] = cmd
	for _, a := range cmd.aliases {
		c.commands[a] = cmd
	}
}
