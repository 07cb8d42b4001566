package cart_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int, price string) models.Product {
	return models.Product{ID: id, Title: "Product", Price: decimal.RequireFromString(price)}
}

// expectedTotal recomputes the total from the snapshot items.
func expectedTotal(c models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

func TestStore_Add(t *testing.T) {
	t.Run("Merge same product", func(t *testing.T) {
		store := cart.NewStore()

		store.Add(product(1, "10"), 1)
		store.Add(product(1, "10"), 2)

		snapshot := store.Snapshot()
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, 3, snapshot.Items[0].Quantity)
		assert.True(t, decimal.NewFromInt(30).Equal(snapshot.Total), "total was %s", snapshot.Total)
		assert.True(t, decimal.NewFromInt(30).Equal(snapshot.Items[0].LineTotal))
		assert.Equal(t, 3, snapshot.ItemCount)
	})

	t.Run("Keeps insertion order", func(t *testing.T) {
		store := cart.NewStore()

		store.Add(product(3, "1"), 1)
		store.Add(product(1, "1"), 1)
		store.Add(product(2, "1"), 1)
		store.Add(product(3, "1"), 4)

		snapshot := store.Snapshot()
		got := []int{snapshot.Items[0].ID, snapshot.Items[1].ID, snapshot.Items[2].ID}
		assert.Equal(t, []int{3, 1, 2}, got)
	})

	t.Run("Non-positive quantity is ignored", func(t *testing.T) {
		store := cart.NewStore()

		store.Add(product(1, "10"), 0)
		store.Add(product(1, "10"), -2)

		assert.Equal(t, 0, store.Len())
	})

	t.Run("Decimal prices do not drift", func(t *testing.T) {
		store := cart.NewStore()

		store.Add(product(1, "0.1"), 1)
		store.Add(product(2, "0.2"), 1)

		assert.Equal(t, "0.3", store.Total().String())
	})
}

func TestStore_AddProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		store := cart.NewStore()
		sum := 0

		for n := rng.Intn(20) + 1; n > 0; n-- {
			q := rng.Intn(9) + 1
			sum += q
			store.Add(product(7, "2.49"), q)
		}

		snapshot := store.Snapshot()
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, sum, snapshot.Items[0].Quantity)
		assert.True(t, expectedTotal(snapshot).Equal(snapshot.Total))
	}
}

func TestStore_Remove(t *testing.T) {
	t.Run("Empty cart is a no-op", func(t *testing.T) {
		store := cart.NewStore()
		notified := 0
		store.Subscribe(func(models.CartChange) { notified++ })

		store.Remove(1)

		assert.Equal(t, 0, store.Len())
		assert.True(t, store.Total().IsZero())
		assert.Equal(t, 0, notified)
	})

	t.Run("Absent id is a no-op", func(t *testing.T) {
		store := cart.NewStore()
		store.Add(product(1, "5"), 2)
		before := store.Snapshot()

		store.Remove(99)

		assert.Equal(t, before, store.Snapshot())
	})

	t.Run("Removes the line and recomputes total", func(t *testing.T) {
		store := cart.NewStore()
		store.Add(product(1, "5"), 2)
		store.Add(product(2, "7.25"), 1)
		store.Add(product(3, "1"), 1)

		store.Remove(2)

		snapshot := store.Snapshot()
		require.Len(t, snapshot.Items, 2)
		assert.Equal(t, 1, snapshot.Items[0].ID)
		assert.Equal(t, 3, snapshot.Items[1].ID)
		assert.Equal(t, "11", snapshot.Total.String())
	})
}

func TestStore_UpdateQuantity(t *testing.T) {
	t.Run("Absolute set", func(t *testing.T) {
		store := cart.NewStore()
		store.Add(product(1, "4"), 3)

		store.UpdateQuantity(1, 5)

		snapshot := store.Snapshot()
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, 5, snapshot.Items[0].Quantity)
		assert.Equal(t, "20", store.Total().String())
	})

	for _, quantity := range []int{0, -1} {
		t.Run("Non-positive quantity leaves the line unchanged", func(t *testing.T) {
			store := cart.NewStore()
			store.Add(product(1, "4"), 3)

			store.UpdateQuantity(1, quantity)

			snapshot := store.Snapshot()
			require.Len(t, snapshot.Items, 1)
			assert.Equal(t, 3, snapshot.Items[0].Quantity)
			assert.Equal(t, "12", store.Total().String())
		})
	}

	t.Run("Absent id is a no-op", func(t *testing.T) {
		store := cart.NewStore()
		store.Add(product(1, "4"), 3)

		store.UpdateQuantity(2, 8)

		assert.Equal(t, 1, store.Len())
		assert.Equal(t, 3, store.Count())
	})
}

func TestStore_Clear(t *testing.T) {
	store := cart.NewStore()
	store.Add(product(1, "4"), 3)
	store.Add(product(2, "1"), 1)

	store.Clear()

	snapshot := store.Snapshot()
	assert.Empty(t, snapshot.Items)
	assert.True(t, snapshot.Total.IsZero())
	assert.Equal(t, 0, snapshot.ItemCount)
}

func TestStore_TotalInvariantAfterEveryMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	prices := []string{"0.99", "10", "3.33", "149.5", "12.01"}
	store := cart.NewStore()

	store.Subscribe(func(change models.CartChange) {
		assert.True(t, expectedTotal(change.Cart).Equal(change.Cart.Total), "op %s", change.Op)
	})

	for i := 0; i < 500; i++ {
		id := rng.Intn(len(prices)) + 1
		switch rng.Intn(3) {
		case 0:
			store.Add(product(id, prices[id-1]), rng.Intn(4)+1)
		case 1:
			store.Remove(id)
		case 2:
			store.UpdateQuantity(id, rng.Intn(6)-1)
		}

		snapshot := store.Snapshot()
		require.True(t, expectedTotal(snapshot).Equal(snapshot.Total))
		require.True(t, snapshot.Total.Equal(store.Total()))

		seen := map[int]bool{}
		for _, item := range snapshot.Items {
			require.False(t, seen[item.ID], "duplicate line for product %d", item.ID)
			require.Positive(t, item.Quantity)
			seen[item.ID] = true
		}
	}
}

func TestStore_Subscribe(t *testing.T) {
	t.Run("Notifies state changes in order", func(t *testing.T) {
		store := cart.NewStore()
		var ops []models.CartOp
		store.Subscribe(func(change models.CartChange) { ops = append(ops, change.Op) })

		store.Add(product(1, "1"), 1)
		store.UpdateQuantity(1, 4)
		store.UpdateQuantity(1, 0)
		store.Remove(1)
		store.Remove(1)
		store.Clear()

		assert.Equal(t, []models.CartOp{models.CartOpAdd, models.CartOpUpdate, models.CartOpRemove}, ops)
	})

	t.Run("Carries the post-mutation snapshot", func(t *testing.T) {
		store := cart.NewStore()
		var last models.CartChange
		store.Subscribe(func(change models.CartChange) { last = change })

		store.Add(product(4, "2.5"), 2)

		assert.Equal(t, 4, last.ProductID)
		assert.Equal(t, 2, last.Cart.ItemCount)
		assert.Equal(t, "5", last.Cart.Total.String())
	})

	t.Run("Unsubscribe stops notifications", func(t *testing.T) {
		store := cart.NewStore()
		calls := 0
		unsubscribe := store.Subscribe(func(models.CartChange) { calls++ })

		store.Add(product(1, "1"), 1)
		unsubscribe()
		store.Add(product(1, "1"), 1)

		assert.Equal(t, 1, calls)
	})
}

func TestStore_ConcurrentAdds(t *testing.T) {
	store := cart.NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Add(product(1, "1.5"), 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 100, store.Count())
	assert.Equal(t, "150", store.Total().String())
}
