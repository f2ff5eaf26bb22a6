package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/config"
	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/internal/repository/postgres"
)

// Legacy orders created before number generation was wired carry no
// order number; customers see the "#<id suffix>" fallback for those.
// This tool assigns generated numbers so support can reference them.
func main() {
	limit := 500
	if len(os.Args) > 1 {
		parsed, err := strconv.Atoi(os.Args[1])
		if err != nil || parsed < 1 {
			fmt.Println("Usage: go run cmd/backfill-order-numbers/main.go [limit]")
			os.Exit(1)
		}
		limit = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	orders, err := repos.Order.ListMissingOrderNumbers(ctx, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	if len(orders) == 0 {
		fmt.Println("No orders missing an order number.")
		return
	}

	var updated int
	for _, order := range orders {
		orderNumber := domain.GenerateOrderNumber(order.CreatedAt)
		if order.CreatedAt.IsZero() {
			orderNumber = domain.GenerateOrderNumber(time.Now())
		}

		if err := repos.Order.SetOrderNumber(ctx, order.ID, orderNumber); err != nil {
			logger.Warn("Failed to set order number",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
			continue
		}

		fmt.Printf("%s -> %s\n", order.ID.String(), orderNumber)
		updated++
	}

	fmt.Printf("Backfilled %d of %d orders.\n", updated, len(orders))
}
