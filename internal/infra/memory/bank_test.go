package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"gigiceria-quiz/internal/bank"
	"gigiceria-quiz/internal/domain"
)

func TestBankCacheCaches(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticLoader(map[string]domain.Bank{
			bank.DefaultID: bank.Default(),
		}),
	}
	cache := NewBankCache(loader, time.Minute)

	if _, err := cache.LoadBank(context.Background(), bank.DefaultID); err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := cache.LoadBank(context.Background(), bank.DefaultID); err != nil {
		t.Fatalf("load bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestStaticLoaderUnknownBank(t *testing.T) {
	loader := NewStaticLoader(map[string]domain.Bank{})
	if _, err := loader.LoadBank(context.Background(), "nope"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

type countingLoader struct {
	BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, bankID)
}
