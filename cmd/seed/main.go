// Command seed provisions a tenant and one employer unit so that imports can
// run against a fresh database. Re-running with the same slug reuses the
// existing tenant. Usage:
//
//	go run ./cmd/seed -slug acme -name "Acme Seguros" -cnpj 12345678000190 -legal-name "Acme Seguros LTDA"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"folharh/internal/config"
	"folharh/internal/domain"
	"folharh/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	slug := flag.String("slug", "", "tenant slug (required)")
	name := flag.String("name", "", "tenant display name (required)")
	cnpj := flag.String("cnpj", "", "employer unit CNPJ, digits only (required)")
	legalName := flag.String("legal-name", "", "employer unit legal name (required)")
	tradeName := flag.String("trade-name", "", "employer unit trade name (defaults to legal name)")
	flag.Parse()

	if *slug == "" || *name == "" || *cnpj == "" || *legalName == "" {
		flag.Usage()
		return errors.New("slug, name, cnpj and legal-name are required")
	}
	if *tradeName == "" {
		*tradeName = *legalName
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tenants := postgres.NewTenantRepo(db)
	units := postgres.NewEmployerUnitRepo(db)

	tenant, err := tenants.GetBySlug(ctx, *slug)
	switch {
	case err == nil:
		log.Printf("tenant %q already exists (%s), reusing", *slug, tenant.ID)
	case errors.Is(err, domain.ErrNotFound):
		tenant = &domain.Tenant{
			Name:     *name,
			Slug:     *slug,
			IsActive: true,
		}
		if err := tenants.Create(ctx, tenant); err != nil {
			return fmt.Errorf("creating tenant: %w", err)
		}
		log.Printf("created tenant %q (%s)", *slug, tenant.ID)
	default:
		return fmt.Errorf("looking up tenant: %w", err)
	}

	unit := &domain.EmployerUnit{
		TenantID:  tenant.ID,
		CNPJ:      *cnpj,
		LegalName: *legalName,
		TradeName: *tradeName,
		IsActive:  true,
	}
	if err := units.Create(ctx, unit); err != nil {
		return fmt.Errorf("creating employer unit: %w", err)
	}
	log.Printf("created employer unit %s (%s) under tenant %s", unit.CNPJ, unit.ID, tenant.ID)

	fmt.Printf("X-Tenant-ID: %s\nemployer_unit_id: %s\n", tenant.ID, unit.ID)
	return nil
}
