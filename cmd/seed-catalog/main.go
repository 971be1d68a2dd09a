package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/config"
	"github.com/printhaus/storefront/internal/domain"
	"github.com/printhaus/storefront/internal/repository/postgres"
)

var demoProducts = []domain.Product{
	{
		Name:        "Midnight Harbour",
		Description: "Giclée print of the harbour at blue hour.",
		Price:       49.99,
		Image:       "/images/midnight-harbour.jpg",
		Sizes:       []string{"30x40", "50x70", "70x100"},
		Frames:      []string{"none", "oak", "black"},
		IsActive:    true,
	},
	{
		Name:        "Terracotta Study",
		Description: "Abstract composition in warm earth tones.",
		Price:       39.00,
		Image:       "/images/terracotta-study.jpg",
		Sizes:       []string{"30x40", "50x70"},
		Frames:      []string{"none", "oak"},
		IsActive:    true,
	},
	{
		Name:        "Linescape No. 4",
		Description: "Minimal single-line landscape.",
		Price:       29.50,
		Image:       "/images/linescape-4.jpg",
		Sizes:       []string{"21x30", "30x40"},
		Frames:      []string{"none", "black", "white"},
		IsActive:    true,
	},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	for _, p := range demoProducts {
		product := p
		product.Slug = slugify(product.Name)

		if err := repos.Product.Create(context.Background(), &product); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create product %q: %v\n", product.Name, err)
			continue
		}
		fmt.Printf("Created product %s (%s)\n", product.Name, product.ID.String())
	}
}

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '.':
			return '-'
		default:
			return -1
		}
	}, slug)
	return strings.Trim(strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), "-"), "-")
}
