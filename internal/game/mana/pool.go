package mana

import (
	"sync"
)

// Pool is a player's mana pool. The amount never drops below zero: Spend
// refuses to debit more than is available.
type Pool struct {
	mu     sync.RWMutex
	amount int
}

// NewPool creates a new empty mana pool.
func NewPool() *Pool {
	return &Pool{}
}

// Add adds mana to the pool. Non-positive amounts are ignored.
func (mp *Pool) Add(amount int) {
	if amount <= 0 {
		return
	}
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.amount += amount
}

// Amount returns the mana currently available.
func (mp *Pool) Amount() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return mp.amount
}

// CanAfford reports whether cost can be paid from the pool. Negative costs
// are never payable, matching Spend.
func (mp *Pool) CanAfford(cost int) bool {
	if cost < 0 {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return cost <= mp.amount
}

// Spend debits cost from the pool. Returns false, leaving the pool untouched,
// when the pool cannot cover it.
func (mp *Pool) Spend(cost int) bool {
	if cost < 0 {
		return false
	}
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if cost > mp.amount {
		return false
	}
	mp.amount -= cost
	return true
}
