package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
)

// shipRecord is the catalog JSON wire shape
type shipRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Msrp         int64  `json:"msrp"`
	Flyable      *bool  `json:"flyable,omitempty"`
	Skus         []struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Price     int64  `json:"price"`
		Available bool   `json:"available"`
	} `json:"skus"`
}

// FileCatalog implements ship.Catalog over a local JSON export
type FileCatalog struct {
	ships []*ship.Ship
	byID  ship.Index
}

// NewFileCatalog loads the catalog from a JSON file
func NewFileCatalog(path string) (*FileCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var records []shipRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(records) == 0 {
		return nil, ship.ErrEmptyCatalog
	}

	ships := recordsToShips(records)
	return &FileCatalog{
		ships: ships,
		byID:  ship.NewIndex(ships),
	}, nil
}

// All returns every known ship
func (c *FileCatalog) All(_ context.Context) ([]*ship.Ship, error) {
	return c.ships, nil
}

// FindByID returns the ship with the given id
func (c *FileCatalog) FindByID(_ context.Context, id string) (*ship.Ship, error) {
	if s := c.byID.Get(id); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ship.ErrShipNotFound, id)
}

// FindByName returns the ship with the given display name, case-insensitive
func (c *FileCatalog) FindByName(_ context.Context, name string) (*ship.Ship, error) {
	for _, s := range c.ships {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ship.ErrShipNotFound, name)
}

func recordsToShips(records []shipRecord) []*ship.Ship {
	ships := make([]*ship.Ship, 0, len(records))
	for _, rec := range records {
		s := ship.NewShip(rec.ID, rec.Name, rec.Manufacturer, rec.Msrp)
		s.Flyable = rec.Flyable
		for _, sku := range rec.Skus {
			s.Skus = append(s.Skus, ship.Sku{
				ID:        sku.ID,
				Title:     sku.Title,
				Price:     sku.Price,
				Available: sku.Available,
			})
		}
		ships = append(ships, s)
	}
	return ships
}
