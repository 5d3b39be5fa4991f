package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/bitfantasy/gearbox/internal/shop/testutil"
)

// 两个并发领用合计超过库存时，条件扣减保证恰好一个成功，
// 库存不为负。
func TestConcurrentAttachSingleWinner(t *testing.T) {
	env := testutil.SetupEnv(t)
	shop := testutil.SeedShop(t, env.DB, "user-cc1", "Concurrent Shop")
	inv := testutil.SeedInventory(t, env.DB, shop.ID, "CC-001", "Clutch Kit", 10, 80, 140)
	job := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0001", "Race Customer")

	ctx := context.Background()
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.Services.Part.AttachPart(ctx, shop.ID, "user-cc1", job.ID, &service.AttachPartRequest{
				InventoryID: &inv.ID,
				Quantity:    6,
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range results {
		if err != nil {
			if !errors.Is(err, service.ErrInsufficientStock) {
				t.Errorf("Expected ErrInsufficientStock, got %v", err)
			}
			failures++
		}
	}
	if failures != 1 {
		t.Fatalf("Expected exactly one failed attach, got %d", failures)
	}

	item, err := env.Services.Inventory.Get(ctx, shop.ID, inv.ID)
	if err != nil {
		t.Fatalf("Failed to reload inventory: %v", err)
	}
	if item.Quantity != 4 {
		t.Errorf("Expected quantity 4 after single winner, got %d", item.Quantity)
	}
}
