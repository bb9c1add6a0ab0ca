package cart

import (
	"sort"
	"sync"
	"time"

	"github.com/xelth-com/scanordergo/internal/models"
)

// Ledger holds the current order lines keyed by resolution key (barcode
// when the product has one, article code otherwise). Two resolutions of
// the same key always coalesce into one line; quantities are strictly
// positive while a line exists.
type Ledger struct {
	mu    sync.Mutex
	lines map[string]models.CartLine
	order []string
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{lines: make(map[string]models.CartLine)}
}

// Load replaces the ledger content, e.g. from the persistence layer at
// startup. Line order becomes the given slice order.
func (l *Ledger) Load(lines []models.CartLine) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = make(map[string]models.CartLine, len(lines))
	l.order = l.order[:0]
	for _, line := range lines {
		if line.Quantity <= 0 || line.Key == "" {
			continue
		}
		if _, exists := l.lines[line.Key]; !exists {
			l.order = append(l.order, line.Key)
		}
		l.lines[line.Key] = line
	}
}

// ApplyScan merges one resolved product into the order: an existing
// line for the same key gains quantity 1 and a fresh timestamp, an
// unseen key opens a new line. Returns the resulting line.
func (l *Ledger) ApplyScan(p models.Product) models.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := p.Key()
	line, exists := l.lines[key]
	if exists {
		line.Quantity++
		line.Timestamp = time.Now()
	} else {
		line = models.CartLine{
			Key:       key,
			Product:   p,
			Quantity:  1,
			Timestamp: time.Now(),
		}
		l.order = append(l.order, key)
	}
	l.lines[key] = line
	return line
}

// AdjustQuantity applies a quantity delta to the line under key. A
// resulting quantity of zero or less removes the line entirely; an
// absent key is a no-op. The timestamp is not refreshed, so correcting
// a quantity does not reshuffle the display order. Returns the line
// after the change and whether it still exists.
func (l *Ledger) AdjustQuantity(key string, delta int) (models.CartLine, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, exists := l.lines[key]
	if !exists {
		return models.CartLine{}, false
	}

	line.Quantity += delta
	if line.Quantity <= 0 {
		delete(l.lines, key)
		for i, k := range l.order {
			if k == key {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
		return models.CartLine{}, false
	}

	l.lines[key] = line
	return line, true
}

// Has reports whether a line exists under key.
func (l *Ledger) Has(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.lines[key]
	return exists
}

// Clear removes all lines.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = make(map[string]models.CartLine)
	l.order = l.order[:0]
}

// Lines returns the order lines, most recently touched first.
func (l *Ledger) Lines() []models.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.CartLine, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.lines[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Len returns the number of distinct lines.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// TotalQuantity sums quantities across all lines.
func (l *Ledger) TotalQuantity() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

// TotalValue sums quantity x price across all lines.
func (l *Ledger) TotalValue() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0.0
	for _, line := range l.lines {
		total += line.Total()
	}
	return total
}
