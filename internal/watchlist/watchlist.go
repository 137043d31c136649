package watchlist

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	bloom "github.com/bits-and-blooms/bloom/v3"
)

// Defaults for filter sizing when the caller does not specify.
const (
	DefaultCapacity  = 1_000_000
	DefaultErrorRate = 0.001
)

// Watchlist is a Bloom-filter membership index over known addresses.
// Contains may report false positives at the configured rate, never
// false negatives. Safe for concurrent use; Load swaps the filter
// atomically under the lock.
type Watchlist struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
	count  int
}

func New() *Watchlist {
	return &Watchlist{}
}

// Load replaces the current filter with one sized for capacity/errorRate
// and inserts the given addresses. Returns the number loaded.
func (w *Watchlist) Load(addresses []string, capacity uint, errorRate float64) int {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if errorRate <= 0 || errorRate >= 1 {
		errorRate = DefaultErrorRate
	}

	f := bloom.NewWithEstimates(capacity, errorRate)
	n := 0
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		f.AddString(addr)
		n++
	}

	w.mu.Lock()
	w.filter = f
	w.count = n
	w.mu.Unlock()
	return n
}

// LoadReader loads one address per line, skipping blanks.
func (w *Watchlist) LoadReader(r io.Reader, capacity uint, errorRate float64) (int, error) {
	var addresses []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		addresses = append(addresses, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read addresses: %w", err)
	}
	return w.Load(addresses, capacity, errorRate), nil
}

// Contains reports probable membership. Always false before Load.
func (w *Watchlist) Contains(address string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.filter == nil {
		return false
	}
	return w.filter.TestString(strings.TrimSpace(address))
}

// Loaded reports whether a filter has been installed.
func (w *Watchlist) Loaded() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.filter != nil
}

// Size returns how many addresses the current filter holds.
func (w *Watchlist) Size() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.count
}
