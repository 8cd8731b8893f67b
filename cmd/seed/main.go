// Command seed loads sample business data into MongoDB for local
// development. It is destructive only in the sense that repeated runs
// add new documents with fresh identifiers.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/auth"
	"github.com/Harsh-kumar-git/ManageMate/internal/config"
	"github.com/Harsh-kumar-git/ManageMate/internal/logging"
	"github.com/Harsh-kumar-git/ManageMate/internal/metrics"
	"github.com/Harsh-kumar-git/ManageMate/internal/models"
	"github.com/Harsh-kumar-git/ManageMate/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)

	if err := metrics.Init(); err != nil {
		logger.WithError(err).Fatal("Failed to initialize metrics")
	}

	st, err := store.New(&cfg.Mongo, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, st, logger); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}

	logger.Info("Seeding complete")
}

func seed(ctx context.Context, st *store.Store, logger *logrus.Logger) error {
	now := time.Now()

	// Demo account. Registering through the API would do the same thing,
	// the seeder just saves the round trip.
	hasher := auth.NewBcryptHasher()
	hash, err := hasher.Hash("Demo1234")
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	demo := &models.User{
		Name:         "Demo User",
		Email:        "demo@managemate.dev",
		PasswordHash: hash,
	}
	if err := st.Users.Create(ctx, demo); err != nil {
		logger.WithError(err).Warn("Demo user not created, may already exist")
	}

	items := []*models.InventoryItem{
		{
			ID: primitive.NewObjectID(), Name: "Thermal Printer", SKU: sku("PRN"),
			Category: "Hardware", Price: 129.99, Stock: 42, ReorderPoint: 10,
			LastRestocked: now.AddDate(0, 0, -7), Status: models.StockStatusIn,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: primitive.NewObjectID(), Name: "Barcode Scanner", SKU: sku("SCN"),
			Category: "Hardware", Price: 59.50, Stock: 8, ReorderPoint: 10,
			LastRestocked: now.AddDate(0, -1, 0), Status: models.StockStatusLow,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: primitive.NewObjectID(), Name: "Receipt Paper Roll", SKU: sku("PPR"),
			Category: "Consumables", Price: 4.25, Stock: 0, ReorderPoint: 50,
			LastRestocked: now.AddDate(0, -2, 0), Status: models.StockStatusOut,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, item := range items {
		if err := st.Inventory.Insert(ctx, item); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	client := &models.Client{
		ID:          primitive.NewObjectID(),
		Name:        "Anita Rao",
		CompanyName: "Rao Retail Pvt Ltd",
		Email:       fmt.Sprintf("anita+%s@raoretail.example", uuid.NewString()[:8]),
		Phone:       "+91 98765 43210",
		GSTNumber:   "29ABCDE1234F1Z5",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := st.Clients.Insert(ctx, client); err != nil {
		return fmt.Errorf("seed clients: %w", err)
	}

	sale := &models.Sale{
		ID:            primitive.NewObjectID(),
		InvoiceNumber: docNumber("INV"),
		ClientID:      client.ID,
		Date:          now.AddDate(0, 0, -3),
		Items: []models.SaleItem{
			{Name: items[0].Name, SKU: items[0].SKU, Quantity: 2, Price: items[0].Price, Total: 2 * items[0].Price},
		},
		Subtotal:  2 * items[0].Price,
		Tax:       2 * items[0].Price * 0.18,
		Total:     2 * items[0].Price * 1.18,
		Status:    models.SaleStatusSent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.Sales.Insert(ctx, sale); err != nil {
		return fmt.Errorf("seed sales: %w", err)
	}

	expense := &models.Expense{
		ID:            primitive.NewObjectID(),
		ExpenseNumber: docNumber("EXP"),
		Vendor:        "Metro Office Supplies",
		Date:          now.AddDate(0, 0, -5),
		Category:      "Office",
		Amount:        230.40,
		Status:        models.ExpenseStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := st.Expenses.Insert(ctx, expense); err != nil {
		return fmt.Errorf("seed expenses: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"inventory_items": len(items),
		"invoice_number":  sale.InvoiceNumber,
		"expense_number":  expense.ExpenseNumber,
	}).Info("Sample data inserted")

	return nil
}

// docNumber builds a unique document number like INV-3f9c01ab.
func docNumber(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

func sku(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}
