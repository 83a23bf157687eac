package usecase

import "sync"

// StoreGate serializes mutating use-cases against the shared store so
// concurrent sessions on the same process cannot interleave
// read-modify-write cycles. Read-side analytics never takes it.
type StoreGate struct {
	mu sync.Mutex
}

func (g *StoreGate) Lock() {
	g.mu.Lock()
}

func (g *StoreGate) Unlock() {
	g.mu.Unlock()
}
