// internal/bank/sequence.go

package bank

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Sequence 產生格式化的流水號，例如 ACC001。
// 每個 Ledger 各自持有自己的序號，測試之間不會共用編號。
type Sequence struct {
	prefix string
	width  int
	n      atomic.Int64
}

// NewSequence 建立「前綴 + 補零計數」的序號產生器。
func NewSequence(prefix string, width int) *Sequence {
	return &Sequence{prefix: prefix, width: width}
}

// Next 以原子遞增產生下一個 ID，並發呼叫亦不會碰撞。
func (s *Sequence) Next() string {
	n := s.n.Add(1)
	return fmt.Sprintf("%s%0*d", s.prefix, s.width, n)
}

// Reset 將計數歸零。
func (s *Sequence) Reset() { s.n.Store(0) }

// Advance 將計數推進到 id 之後，確保下一個 ID 不會與 id 重複。
// 前綴不符或無法解析的 ID 直接忽略。
func (s *Sequence) Advance(id string) {
	if len(id) <= len(s.prefix) || !strings.EqualFold(id[:len(s.prefix)], s.prefix) {
		return
	}
	v, err := strconv.ParseInt(id[len(s.prefix):], 10, 64)
	if err != nil {
		return
	}
	for {
		cur := s.n.Load()
		if v <= cur || s.n.CompareAndSwap(cur, v) {
			return
		}
	}
}
