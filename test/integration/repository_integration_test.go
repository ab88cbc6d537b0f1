package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"megamart/internal/model"
	"megamart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCustomerRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create and GetByID roundtrip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		now := time.Now()
		customer := &model.Customer{
			ID:        uuid.New(),
			Name:      "Alice",
			Email:     "alice@example.com",
			Address:   "1 Main St",
			Phone:     "555-0100",
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, repo.Create(ctx, customer))

		got, err := repo.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")

		now := time.Now()
		err := repo.Create(ctx, &model.Customer{
			ID:        uuid.New(),
			Name:      "Imposter",
			Email:     "alice@example.com",
			Address:   "2 Main St",
			Phone:     "555-0101",
			CreatedAt: now,
			UpdatedAt: now,
		})
		assert.ErrorIs(t, err, model.ErrEmailExists)
	})

	t.Run("List filters by email and name", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")
		SeedCustomer(t, testDB.Pool, "Alina", "alina@example.com")
		SeedCustomer(t, testDB.Pool, "Bob", "bob@example.com")

		byEmail, err := repo.List(ctx, repository.CustomerFilter{Email: "bob@example.com"})
		require.NoError(t, err)
		require.Len(t, byEmail, 1)
		assert.Equal(t, "Bob", byEmail[0].Name)

		byName, err := repo.List(ctx, repository.CustomerFilter{Name: "ali", Sort: "name"})
		require.NoError(t, err)
		require.Len(t, byName, 2)
		assert.Equal(t, "Alice", byName[0].Name)
	})

	t.Run("Update applies only provided fields", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")

		phone := "555-0199"
		updated, err := repo.Update(ctx, seeded.ID, &model.UpdateCustomerRequest{Phone: &phone})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, phone, updated.Phone)
		assert.Equal(t, "Alice", updated.Name)
	})

	t.Run("Delete returns the removed record and nil afterwards", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")

		deleted, err := repo.Delete(ctx, seeded.ID)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, seeded.ID, deleted.ID)

		again, err := repo.Delete(ctx, seeded.ID)
		require.NoError(t, err)
		assert.Nil(t, again)
	})
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("List filters and paginates", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProduct(t, testDB.Pool, "Cheap", 5, 10)
		SeedProduct(t, testDB.Pool, "Mid", 25, 0)
		SeedProduct(t, testDB.Pool, "Dear", 100, 3)

		min := 10.0
		inStock, err := repo.List(ctx, repository.ProductFilter{MinPrice: &min, InStock: true})
		require.NoError(t, err)
		require.Len(t, inStock, 1)
		assert.Equal(t, "Dear", inStock[0].Name)

		paged, err := repo.List(ctx, repository.ProductFilter{Sort: "price", Page: 2, Limit: 1})
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, "Mid", paged[0].Name)
	})

	t.Run("TryDecrementStock succeeds when stock covers the quantity", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product := SeedProduct(t, testDB.Pool, "Widget", 10, 5)

		updated, err := repo.TryDecrementStock(ctx, product.ID, 2)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 3, updated.Stock)
	})

	t.Run("TryDecrementStock refuses and leaves stock untouched", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product := SeedProduct(t, testDB.Pool, "Widget", 10, 1)

		updated, err := repo.TryDecrementStock(ctx, product.ID, 2)
		require.NoError(t, err)
		assert.Nil(t, updated)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Stock)
	})

	t.Run("TryDecrementStock is atomic under concurrent checkouts", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product := SeedProduct(t, testDB.Pool, "LastUnit", 10, 1)

		const attempts = 8
		var wg sync.WaitGroup
		results := make(chan *model.Product, attempts)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				updated, err := repo.TryDecrementStock(ctx, product.ID, 1)
				assert.NoError(t, err)
				results <- updated
			}()
		}
		wg.Wait()
		close(results)

		winners := 0
		for updated := range results {
			if updated != nil {
				winners++
				assert.Equal(t, 0, updated.Stock)
			}
		}
		assert.Equal(t, 1, winners)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Stock)
	})
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetByCustomer returns nil before first access", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customer := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")

		cart, err := cartRepo.GetByCustomer(ctx, customer.ID)
		require.NoError(t, err)
		assert.Nil(t, cart)
	})

	t.Run("UpsertItem merges quantities for the same product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customer := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")
		product := SeedProduct(t, testDB.Pool, "Widget", 10, 50)

		cart, err := cartRepo.Create(ctx, customer.ID)
		require.NoError(t, err)

		require.NoError(t, cartRepo.UpsertItem(ctx, cart.ID, product.ID, 2))
		require.NoError(t, cartRepo.UpsertItem(ctx, cart.ID, product.ID, 3))

		got, err := cartRepo.GetByCustomer(ctx, customer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 5, got.Items[0].Quantity)
	})

	t.Run("lines come back in the order they were added", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customer := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")

		products := make([]*model.Product, 0, 8)
		for i := 0; i < cap(products); i++ {
			products = append(products, SeedProduct(t, testDB.Pool, fmt.Sprintf("Item %d", i), 1, 50))
		}

		cart, err := cartRepo.Create(ctx, customer.ID)
		require.NoError(t, err)
		for _, p := range products {
			require.NoError(t, cartRepo.UpsertItem(ctx, cart.ID, p.ID, 1))
		}
		// Merging into the first line must not move it to the back.
		require.NoError(t, cartRepo.UpsertItem(ctx, cart.ID, products[0].ID, 1))

		details, err := cartRepo.ListItemDetails(ctx, cart.ID)
		require.NoError(t, err)
		require.Len(t, details, len(products))
		for i, d := range details {
			assert.Equal(t, products[i].ID, d.Item.ProductID)
		}
		assert.Equal(t, 2, details[0].Item.Quantity)

		got, err := cartRepo.GetByCustomer(ctx, customer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Items, len(products))
		for i, item := range got.Items {
			assert.Equal(t, products[i].ID, item.ProductID)
		}
	})

	t.Run("UpdateItemQuantity reports missing lines", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customer := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")
		cart, err := cartRepo.Create(ctx, customer.ID)
		require.NoError(t, err)

		found, err := cartRepo.UpdateItemQuantity(ctx, cart.ID, uuid.New(), 4)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("ListItemDetails resolves nil for deleted products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customer := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")
		keep := SeedProduct(t, testDB.Pool, "Keep", 10, 5)
		gone := SeedProduct(t, testDB.Pool, "Gone", 7, 5)

		cart, err := cartRepo.Create(ctx, customer.ID)
		require.NoError(t, err)
		require.NoError(t, cartRepo.UpsertItem(ctx, cart.ID, keep.ID, 1))
		require.NoError(t, cartRepo.UpsertItem(ctx, cart.ID, gone.ID, 2))

		// Delete one product out from under the cart. The line stays.
		_, err = productRepo.Delete(ctx, gone.ID)
		require.NoError(t, err)

		details, err := cartRepo.ListItemDetails(ctx, cart.ID)
		require.NoError(t, err)
		require.Len(t, details, 2)

		byProduct := map[uuid.UUID]*model.Product{}
		for _, d := range details {
			byProduct[d.Item.ProductID] = d.Product
		}
		assert.NotNil(t, byProduct[keep.ID])
		assert.Nil(t, byProduct[gone.ID])

		assert.Equal(t, 10.0, model.CartTotal(details))
	})

	t.Run("ClearItems empties the cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customer := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")
		product := SeedProduct(t, testDB.Pool, "Widget", 10, 5)

		cart, err := cartRepo.Create(ctx, customer.ID)
		require.NoError(t, err)
		require.NoError(t, cartRepo.UpsertItem(ctx, cart.ID, product.ID, 2))
		require.NoError(t, cartRepo.ClearItems(ctx, cart.ID))

		got, err := cartRepo.GetByCustomer(ctx, customer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.Items)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	newOrder := func(customerID uuid.UUID, productID uuid.UUID) *model.Order {
		now := time.Now()
		orderID := uuid.New()
		return &model.Order{
			ID:         orderID,
			CustomerID: customerID,
			Items: []model.OrderItem{{
				ID:        uuid.New(),
				OrderID:   orderID,
				ProductID: productID,
				Name:      "Widget",
				Price:     10,
				Quantity:  2,
				LineTotal: 20,
			}},
			Total:     20,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	t.Run("Create and GetByID roundtrip with items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customer := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")
		product := SeedProduct(t, testDB.Pool, "Widget", 10, 5)

		order := newOrder(customer.ID, product.ID)
		require.NoError(t, repo.Create(ctx, order))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 20.0, got.Total)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Widget", got.Items[0].Name)
		assert.Equal(t, 20.0, got.Items[0].LineTotal)
	})

	t.Run("items preserve their checkout sequence", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customer := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")

		now := time.Now()
		orderID := uuid.New()
		items := make([]model.OrderItem, 0, 8)
		for i := 0; i < cap(items); i++ {
			items = append(items, model.OrderItem{
				ID:        uuid.New(),
				OrderID:   orderID,
				ProductID: uuid.New(),
				Name:      fmt.Sprintf("Item %d", i),
				Price:     1,
				Quantity:  1,
				LineTotal: 1,
			})
		}
		order := &model.Order{
			ID:         orderID,
			CustomerID: customer.ID,
			Items:      items,
			Total:      float64(len(items)),
			Status:     model.OrderStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		require.NoError(t, repo.Create(ctx, order))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Items, len(items))
		for i, item := range got.Items {
			assert.Equal(t, items[i].ID, item.ID)
			assert.Equal(t, items[i].Name, item.Name)
		}
	})

	t.Run("List filters by customer and status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		alice := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")
		bob := SeedCustomer(t, testDB.Pool, "Bob", "bob@example.com")
		product := SeedProduct(t, testDB.Pool, "Widget", 10, 50)

		require.NoError(t, repo.Create(ctx, newOrder(alice.ID, product.ID)))
		require.NoError(t, repo.Create(ctx, newOrder(bob.ID, product.ID)))

		orders, err := repo.List(ctx, repository.OrderFilter{CustomerID: &alice.ID})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, alice.ID, orders[0].CustomerID)
		require.Len(t, orders[0].Items, 1)

		none, err := repo.List(ctx, repository.OrderFilter{Status: "cancelled"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("UpdateStatus transitions and rejects unknown IDs", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customer := SeedCustomer(t, testDB.Pool, "Alice", "alice@example.com")
		product := SeedProduct(t, testDB.Pool, "Widget", 10, 5)

		order := newOrder(customer.ID, product.ID)
		require.NoError(t, repo.Create(ctx, order))

		updated, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusShipped)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, model.OrderStatusShipped, updated.Status)
		require.Len(t, updated.Items, 1)

		missing, err := repo.UpdateStatus(ctx, uuid.New(), model.OrderStatusShipped)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}
