// internal/bank/customer.go

package bank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category 為客戶等級。
type Category string

const (
	Regular Category = "Regular"
	Premium Category = "Premium"
)

// premiumMinimumBalance 為維持 Premium 身分所需的最低餘額。
var premiumMinimumBalance = decimal.NewFromInt(10000)

// Customer 描述帳戶持有人；建立後不可變更（無任何 setter）。
// 由檔案載入的帳戶只會帶回僅含姓名的 Regular stub（ID 為空）。
type Customer struct {
	ID       string
	Name     string
	Age      int
	Contact  string
	Address  string
	Category Category

	// 以下兩欄僅 Premium 客戶有意義。
	MinimumBalance decimal.Decimal
	FeesWaived     bool
}

func newCustomer(id, name string, age int, contact, address string, cat Category) *Customer {
	c := &Customer{
		ID:       id,
		Name:     name,
		Age:      age,
		Contact:  contact,
		Address:  address,
		Category: cat,
	}
	if cat == Premium {
		c.MinimumBalance = premiumMinimumBalance
		c.FeesWaived = true
	}
	return c
}

// customerStub 重建檔案載入時的客戶：只保留姓名，其餘資訊不會 round-trip。
func customerStub(name string) *Customer {
	return &Customer{Name: name, Category: Regular}
}

// IsPremium 回報客戶是否為 premium 等級。
func (c *Customer) IsPremium() bool { return c.Category == Premium }

// Details 產生給 console 顯示的客戶資料。
func (c *Customer) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer ID: %s\n", c.ID)
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Age: %d\n", c.Age)
	fmt.Fprintf(&b, "Contact: %s\n", c.Contact)
	fmt.Fprintf(&b, "Address: %s\n", c.Address)
	fmt.Fprintf(&b, "Type: %s", c.Category)
	if c.IsPremium() {
		fmt.Fprintf(&b, "\nBenefit: Monthly fees waived.\nMin Balance Requirement: $%s", c.MinimumBalance.StringFixed(2))
	}
	return b.String()
}

// ParseCategory 解析客戶等級（不分大小寫）。
func ParseCategory(s string) (Category, error) {
	switch {
	case strings.EqualFold(s, string(Regular)):
		return Regular, nil
	case strings.EqualFold(s, string(Premium)):
		return Premium, nil
	}
	return "", fmt.Errorf("unknown customer category %q", s)
}
