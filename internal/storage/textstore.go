// internal/storage/textstore.go
//
// 提供帳戶與交易的文字檔序列化與反序列化實作。
// 寫入：依傳入順序每筆一行；父目錄不存在時自動建立。
// 讀取：逐行解析，格式錯誤的行以 *LineError 回報並略過，不會中斷整體載入；
// 只有 I/O 錯誤才會以 error 回傳。
package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EncodeAccount 將帳戶紀錄轉為一行文字（不含換行）。
func EncodeAccount(r AccountRecord) string {
	parts := []string{r.Number, r.CustomerName, r.Balance.String(), r.Kind, r.Status}
	for _, x := range r.Extra {
		parts = append(parts, x.String())
	}
	return strings.Join(parts, ",")
}

// DecodeAccount 解析一行帳戶文字；至少需要 5 個欄位。
func DecodeAccount(line string) (AccountRecord, error) {
	p := strings.Split(line, ",")
	if len(p) < 5 {
		return AccountRecord{}, fmt.Errorf("%w: want at least 5 fields, got %d", ErrMalformedLine, len(p))
	}
	bal, err := decimal.NewFromString(strings.TrimSpace(p[2]))
	if err != nil {
		return AccountRecord{}, fmt.Errorf("%w: balance %q", ErrMalformedLine, p[2])
	}
	r := AccountRecord{
		Number:       strings.TrimSpace(p[0]),
		CustomerName: p[1],
		Balance:      bal,
		Kind:         strings.TrimSpace(p[3]),
		Status:       strings.TrimSpace(p[4]),
	}
	for _, f := range p[5:] {
		x, err := decimal.NewFromString(strings.TrimSpace(f))
		if err != nil {
			return AccountRecord{}, fmt.Errorf("%w: field %q", ErrMalformedLine, f)
		}
		r.Extra = append(r.Extra, x)
	}
	return r, nil
}

// EncodeTransaction 將交易紀錄轉為一行文字（不含換行）。
func EncodeTransaction(r TransactionRecord) string {
	return strings.Join([]string{
		r.ID,
		r.AccountNumber,
		r.Type,
		r.Amount.String(),
		r.BalanceAfter.String(),
		r.Timestamp.Format(TimestampLayout),
	}, ",")
}

// DecodeTransaction 解析一行交易文字；必須剛好 6 個欄位，時間以本地時區解讀。
func DecodeTransaction(line string) (TransactionRecord, error) {
	p := strings.Split(line, ",")
	if len(p) != 6 {
		return TransactionRecord{}, fmt.Errorf("%w: want 6 fields, got %d", ErrMalformedLine, len(p))
	}
	amt, err := decimal.NewFromString(strings.TrimSpace(p[3]))
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("%w: amount %q", ErrMalformedLine, p[3])
	}
	after, err := decimal.NewFromString(strings.TrimSpace(p[4]))
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("%w: balance %q", ErrMalformedLine, p[4])
	}
	ts, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(p[5]), time.Local)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("%w: timestamp %q", ErrMalformedLine, p[5])
	}
	return TransactionRecord{
		ID:            strings.TrimSpace(p[0]),
		AccountNumber: strings.TrimSpace(p[1]),
		Type:          strings.TrimSpace(p[2]),
		Amount:        amt,
		BalanceAfter:  after,
		Timestamp:     ts,
	}, nil
}

// WriteAccounts 依序寫出所有帳戶紀錄。
func WriteAccounts(path string, recs []AccountRecord) error {
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = EncodeAccount(r)
	}
	return writeLines(path, lines)
}

// ReadAccounts 讀取帳戶檔；skipped 為被略過的格式錯誤行。
func ReadAccounts(path string) ([]AccountRecord, []*LineError, error) {
	return readLines(path, DecodeAccount)
}

// WriteTransactions 依序寫出所有交易紀錄。
func WriteTransactions(path string, recs []TransactionRecord) error {
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = EncodeTransaction(r)
	}
	return writeLines(path, lines)
}

// ReadTransactions 讀取交易檔；skipped 為被略過的格式錯誤行。
func ReadTransactions(path string) ([]TransactionRecord, []*LineError, error) {
	return readLines(path, DecodeTransaction)
}

func writeLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readLines 逐行解析；行長不設上限，超長的垃圾行與其他格式錯誤一樣只會被略過。
func readLines[T any](path string, decode func(string) (T, error)) ([]T, []*LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var (
		out     []T
		skipped []*LineError
		n       int
	)
	r := bufio.NewReader(f)
	for {
		raw, rerr := r.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, nil, rerr
		}
		if raw == "" && rerr == io.EOF {
			break
		}
		n++
		text := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(text) != "" {
			rec, err := decode(text)
			if err != nil {
				skipped = append(skipped, &LineError{Path: path, Line: n, Text: text, Err: err})
			} else {
				out = append(out, rec)
			}
		}
		if rerr == io.EOF {
			break
		}
	}
	return out, skipped, nil
}
