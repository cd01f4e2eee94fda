// Command importinventory loads a tenant's catalog from an .xlsx or .csv file.
//
//	importinventory -file catalog.xlsx -email owner@example.com
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"quotely/internal/catalog"
	"quotely/internal/config"
	"quotely/internal/domain"
	"quotely/internal/repository/postgres"
	"quotely/internal/service"
)

func main() {
	file := flag.String("file", "", "path to the catalog spreadsheet (.xlsx or .csv)")
	email := flag.String("email", "", "email of the user who owns the catalog")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing")
	flag.Parse()

	if *file == "" || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *file, err)
	}
	defer f.Close()

	var items []domain.InventoryItem
	var rowErrs []catalog.RowError
	switch strings.ToLower(filepath.Ext(*file)) {
	case ".xlsx":
		items, rowErrs, err = catalog.ReadXLSX(f)
	case ".csv":
		items, rowErrs, err = catalog.ReadCSV(f)
	default:
		log.Fatalf("unsupported file type %q; expected .xlsx or .csv", filepath.Ext(*file))
	}
	if err != nil {
		log.Fatalf("failed to read catalog: %v", err)
	}
	for _, re := range rowErrs {
		log.Printf("skipped %v", re)
	}
	log.Printf("parsed %d items (%d rows skipped)", len(items), len(rowErrs))
	if *dryRun {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	owner, err := postgres.NewUserRepo(db).GetByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("failed to find user %s: %v", *email, err)
	}

	svc := service.NewInventoryService(postgres.NewInventoryRepo(db))
	created := 0
	for i := range items {
		it := &items[i]
		if _, err := svc.Create(ctx, owner.ID, service.CreateInventoryInput{
			ItemCode:    it.ItemCode,
			ItemName:    it.ItemName,
			Category:    it.Category,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			StockQty:    it.StockQty,
			Description: it.Description,
		}); err != nil {
			log.Printf("failed to import %q: %v", it.ItemName, err)
			continue
		}
		created++
	}
	log.Printf("imported %d of %d items for %s", created, len(items), owner.Email)
}
