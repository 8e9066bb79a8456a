// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 分為三類：輸入驗證失敗、商業規則違反、查詢失敗。
// 商業規則錯誤會以 fmt.Errorf("%w: ...") 包裝附帶原因，呼叫端以 errors.Is 判斷。

package bank

import "errors"

var (
	// ErrAccountNotFound 代表帳戶不存在。
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount 代表金額非法（<= 0）。
	ErrInvalidAmount = errors.New("amount must be > 0")

	// ErrInsufficientFunds 代表儲蓄帳戶提款後將低於最低餘額。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOverdraftExceeded 代表支票帳戶提款後將超過透支額度。
	// 與 ErrInsufficientFunds 刻意區分，方便呼叫端分別處理。
	ErrOverdraftExceeded = errors.New("overdraft limit exceeded")

	// ErrUnknownTransactionType 代表交易類型標籤無法辨識。
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrSameAccount 代表轉帳來源與目標帳戶相同。
	ErrSameAccount = errors.New("from and to are same")

	// ErrNotCheckingAccount 代表對非支票帳戶收取月費。
	ErrNotCheckingAccount = errors.New("account is not a checking account")
)
