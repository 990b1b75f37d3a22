package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"gigiceria-quiz/internal/domain"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches question-bank content from a backing store.
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// BankCache caches question banks with TTL to avoid repeated backing-store hits.
type BankCache struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedBank
}

type cachedBank struct {
	bank      domain.Bank
	expiresAt time.Time
}

func NewBankCache(loader BankLoader, ttl time.Duration) *BankCache {
	return &BankCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

func (c *BankCache) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := c.fresh(bankID, c.clock()); ok {
		return bank, nil
	}

	result, err, _ := c.sf.Do(bankID, func() (interface{}, error) {
		now := c.clock()
		// another caller may have filled the entry while we waited
		if bank, ok := c.fresh(bankID, now); ok {
			return bank, nil
		}

		bank, err := c.loader.LoadBank(ctx, bankID)
		if err != nil {
			return domain.Bank{}, err
		}

		c.mu.Lock()
		c.cache[bankID] = cachedBank{
			bank:      bank,
			expiresAt: now.Add(c.expiryIn()),
		}
		c.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

func (c *BankCache) fresh(bankID string, now time.Time) (domain.Bank, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[bankID]
	if !ok || !entry.expiresAt.After(now) {
		return domain.Bank{}, false
	}
	return entry.bank, true
}

// expiryIn staggers lifetimes by up to 10% so banks loaded together do
// not all refresh in the same instant.
func (c *BankCache) expiryIn() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	spread := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(spread+1))
}

// StaticLoader serves banks from an in-memory map (defaults, tests, demos).
type StaticLoader struct {
	banks map[string]domain.Bank
}

func NewStaticLoader(banks map[string]domain.Bank) *StaticLoader {
	return &StaticLoader{banks: banks}
}

func (l *StaticLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := l.banks[bankID]; ok {
		return bank, nil
	}
	return domain.Bank{}, domain.ErrBankNotFound
}
