// internal/console/output.go
//
// 統一輸出格式：一般訊息、表格與錯誤訊息都集中在這裡，
// 讓各個指令的輸出保持一致。

package console

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/tabwriter"
	"unicode"
	"unicode/utf8"

	"bankledger/internal/bank"
)

const rule = "------------------------------------------------------------------------------------"

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(args ...any) {
	_, _ = fmt.Fprintln(c.out, args...)
}

func (c *Console) banner() {
	c.println("=============================================")
	c.println("      BANK ACCOUNT MANAGEMENT SYSTEM         ")
	c.println("=============================================")
	c.println("Type 'help' for the list of commands.")
}

// table 回傳對齊欄位用的 tabwriter；呼叫端負責 Flush。
func (c *Console) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
}

// writeErr 將商業錯誤轉成使用者看得懂的訊息。
func (c *Console) writeErr(err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, bank.ErrAccountNotFound):
		msg = "Account not found. " + msg
	case errors.Is(err, bank.ErrInsufficientFunds):
		msg = "Transaction failed: insufficient funds. " + msg
	case errors.Is(err, bank.ErrOverdraftExceeded):
		msg = "Transaction failed: overdraft limit exceeded. " + msg
	case errors.Is(err, bank.ErrInvalidAmount):
		msg = "Invalid amount. Amount must be greater than 0."
	case errors.Is(err, fs.ErrNotExist):
		msg = "No saved data found. " + msg
	}
	c.printf("Error: %s\n", sentence(msg))
}

// sentence 將錯誤字串轉成顯示用的句子：首字母大寫，結尾補上句點。
func sentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.ContainsRune(".!?", rune(msg[len(msg)-1])) {
		msg += "."
	}
	return msg
}
