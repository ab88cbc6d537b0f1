// Seeds the local database with a small catalogue and a test customer.
// Run with: go run ./scripts
package main

import (
	"context"
	"fmt"
	"os"

	"megamart/internal/config"
	"megamart/internal/database"
	"megamart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "failed to apply schema: %v\n", err)
		os.Exit(1)
	}

	products := []model.Product{
		{ID: uuid.New(), Name: "Wireless Headphones", Description: "Over-ear, 30h battery", Price: 79.99, Category: "electronics", Stock: 25, Images: []string{"https://cdn.megamart.test/headphones.jpg"}},
		{ID: uuid.New(), Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", Price: 119.00, Category: "electronics", Stock: 12, Images: []string{}},
		{ID: uuid.New(), Name: "Espresso Beans 1kg", Description: "Medium roast arabica", Price: 18.50, Category: "grocery", Stock: 80, Images: []string{}},
		{ID: uuid.New(), Name: "Yoga Mat", Description: "6mm, non-slip", Price: 24.95, Category: "sports", Stock: 40, Images: []string{}},
		{ID: uuid.New(), Name: "Desk Lamp", Description: "LED, dimmable", Price: 32.00, Category: "home", Stock: 0, Images: []string{}},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, description, price, category, stock, images)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.Description, p.Price, p.Category, p.Stock, p.Images,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed product %s: %v\n", p.Name, err)
			os.Exit(1)
		}
	}

	customerID := uuid.New()
	_, err = pool.Exec(ctx,
		`INSERT INTO customers (id, name, email, address, phone)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO NOTHING`,
		customerID, "Sample Shopper", "shopper@megamart.test", "1 Market Street", "555-0100",
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed customer: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d products and 1 customer into %s\n", len(products), cfg.Database.Database)
}
