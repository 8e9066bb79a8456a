// internal/console/console.go
//
// Package console
// ─────────────────────────────────────────────
// 提供互動式文字介面，作為 bank 模組的應用層 (Application Layer)。
// 每個指令僅負責：
//  1. 讀取並驗證使用者輸入
//  2. 呼叫 bank 層執行商業邏輯
//  3. 以一致的格式輸出結果
//  4. 成功變更狀態後呼叫 persist()（若有注入），把帳本寫回文字檔
//
// 分層：
//   - bank：純商業邏輯，與輸入輸出無關。
//   - console：處理使用者互動。
//   - storage：負責持久化。
package console

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"bankledger/internal/bank"
)

// errExit 由 exit 指令回傳，讓 Run 正常結束。
var errExit = errors.New("exit")

// Console 為互動層核心結構：
// - ledger：注入商業邏輯層。
// - persist：持久化鉤子，console 不需關心儲存實作細節。
type Console struct {
	ledger  *bank.Ledger
	persist func() error
	log     *zap.Logger

	in  *bufio.Scanner
	out io.Writer

	commands map[string]*command
	order    []string
}

// Option 用來設定 Console。
type Option func(*Console)

// WithPersist 注入在每次成功變更後呼叫的持久化鉤子。
func WithPersist(fn func() error) Option {
	return func(c *Console) { c.persist = fn }
}

// WithLogger 注入結構化 logger。
func WithLogger(l *zap.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

// New 建立 console；in / out 通常為 os.Stdin / os.Stdout，測試時可替換。
func New(l *bank.Ledger, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		ledger: l,
		log:    zap.NewNop(),
		in:     bufio.NewScanner(in),
		out:    out,
	}
	for _, o := range opts {
		o(c)
	}
	c.routes()
	return c
}

// Run 逐行讀取指令直到 exit 或輸入結束。
func (c *Console) Run() error {
	c.banner()
	for {
		c.printf("\nbank> ")
		line, ok := c.readLine()
		if !ok {
			c.println()
			return c.in.Err()
		}
		if err := c.Exec(line); errors.Is(err, errExit) {
			return nil
		}
	}
}

// Exec 執行單一指令列；指令本身的錯誤已輸出給使用者，回傳值只用於流程控制。
func (c *Console) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	cmd, ok := c.commands[name]
	if !ok {
		c.printf("Unknown command %q. Type 'help' for the list of commands.\n", fields[0])
		return nil
	}
	args := fields[1:]
	if len(args) < cmd.minArgs {
		c.printf("Usage: %s\n", cmd.usage)
		return nil
	}

	c.log.Debug("command", zap.String("name", cmd.name), zap.Strings("args", args))
	err := cmd.run(args)
	switch {
	case errors.Is(err, errExit):
		return err
	case err != nil:
		c.writeErr(err)
		return err
	}
	if cmd.mutates {
		c.autosave()
	}
	return nil
}

// autosave 在變更成功後觸發持久化；失敗只提示，不回滾記憶體狀態。
func (c *Console) autosave() {
	if c.persist == nil {
		return
	}
	if err := c.persist(); err != nil {
		c.log.Warn("autosave failed", zap.Error(err))
		c.printf("Warning: autosave failed: %v\n", err)
	}
}

// readLine 讀下一行（已去除前後空白）；輸入結束時 ok 為 false。
func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// ask 顯示提示並反覆讀取，直到 check 通過；輸入結束時回傳 io.ErrUnexpectedEOF。
func (c *Console) ask(prompt string, check func(string) error) (string, error) {
	for {
		c.printf("%s", prompt)
		v, ok := c.readLine()
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		if err := check(v); err != nil {
			c.println(sentence(err.Error()))
			continue
		}
		return v, nil
	}
}
