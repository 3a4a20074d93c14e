package cli

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Citizens-Hub/ccu-planner/internal/adapters/catalog"
	"github.com/Citizens-Hub/ccu-planner/internal/adapters/persistence"
	"github.com/Citizens-Hub/ccu-planner/internal/application/planner"
	"github.com/Citizens-Hub/ccu-planner/internal/application/tracker"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
	"github.com/Citizens-Hub/ccu-planner/internal/infrastructure/config"
	"github.com/Citizens-Hub/ccu-planner/internal/infrastructure/database"
)

// services bundles the wired dependencies every command needs
type services struct {
	cfg *config.Config
	db  *gorm.DB

	catalog ship.Catalog

	diagramRepo   *persistence.GormDiagramRepository
	completedRepo *persistence.GormCompletedPathRepository
	hangarRepo    *persistence.GormHangarRepository
	historyRepo   *persistence.GormPriceHistoryRepository
	offerRepo     *persistence.GormSubscriptionOfferRepository

	tracker *tracker.Tracker
	pricing *upgrade.PricingService
	finder  *planner.PathFinder
}

// openServices loads config, opens the database, and wires the engine
func openServices(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	s := &services{
		cfg:           cfg,
		db:            db,
		diagramRepo:   persistence.NewGormDiagramRepository(db),
		completedRepo: persistence.NewGormCompletedPathRepository(db),
		hangarRepo:    persistence.NewGormHangarRepository(db),
		historyRepo:   persistence.NewGormPriceHistoryRepository(db),
		offerRepo:     persistence.NewGormSubscriptionOfferRepository(db),
		pricing:       upgrade.NewPricingService(),
		finder:        planner.NewPathFinderWithLimit(cfg.Planner.MaxPathLength),
	}

	if cfg.Catalog.Path != "" {
		s.catalog, err = catalog.NewFileCatalog(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
	} else if cfg.Catalog.URL != "" {
		s.catalog = catalog.NewHTTPCatalog(&cfg.Catalog)
	}

	s.tracker = tracker.NewTracker(s.completedRepo)
	s.tracker.Load(ctx)

	return s, nil
}

func (s *services) close() {
	_ = database.Close(s.db)
}

// buildContext assembles the pricing context from every stored data source
func (s *services) buildContext(ctx context.Context) (*pricing.Context, error) {
	pctx := &pricing.Context{
		DisplayCurrency: pricing.Currency(s.cfg.Planner.DisplayCurrency),
		PriorityOrder:   priorityOrder(s.cfg.Planner.PriorityOrder),
		HangarConsumed:  s.tracker.ConsumedCount,
	}

	if s.catalog != nil {
		ships, err := s.catalog.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load ship catalog: %w", err)
		}
		pctx.Ships = ship.NewIndex(ships)
	}

	items, err := s.hangarRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	pctx.HangarItems = items

	history, err := s.historyRepo.LoadTable(ctx)
	if err != nil {
		return nil, err
	}
	pctx.History = history

	offers, err := s.offerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	pctx.Offers = offers

	return pctx, nil
}

// priorityOrder converts configured strategy names, dropping unknown entries
func priorityOrder(names []string) []pricing.SourceType {
	order := make([]pricing.SourceType, 0, len(names))
	for _, name := range names {
		st := pricing.SourceType(name)
		if st.IsValid() {
			order = append(order, st)
		}
	}
	return order
}

// findByName scans the context's ship index for a display name match
func findByName(pctx *pricing.Context, name string) *ship.Ship {
	for _, s := range pctx.Ships {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// findShip resolves a ship reference by name first, then by id
func (s *services) findShip(ctx context.Context, ref string) (*ship.Ship, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("no ship catalog configured (set catalog.path or catalog.url)")
	}
	if found, err := s.catalog.FindByName(ctx, ref); err == nil {
		return found, nil
	}
	return s.catalog.FindByID(ctx, ref)
}
