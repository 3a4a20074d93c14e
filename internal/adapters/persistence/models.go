package persistence

import "time"

// CompletedPathModel represents the completed_paths table.
// The path itself is a frozen JSON snapshot; the terminal ship id is lifted
// into its own column for listing without unmarshalling.
type CompletedPathModel struct {
	ID        string    `gorm:"column:id;primaryKey;not null"`
	ShipID    string    `gorm:"column:ship_id;not null"`
	ShipName  string    `gorm:"column:ship_name"`
	Snapshot  string    `gorm:"column:snapshot;type:text;not null"` // JSON as text
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (CompletedPathModel) TableName() string {
	return "completed_paths"
}

// DiagramNodeModel represents the diagram_nodes table — the saved layout,
// keyed separately from completed paths.
type DiagramNodeModel struct {
	NodeID string  `gorm:"column:node_id;primaryKey;not null"`
	ShipID string  `gorm:"column:ship_id;not null"`
	Ship   string  `gorm:"column:ship;type:text;not null"` // ship snapshot, JSON as text
	X      float64 `gorm:"column:x;not null"`
	Y      float64 `gorm:"column:y;not null"`
}

func (DiagramNodeModel) TableName() string {
	return "diagram_nodes"
}

// DiagramEdgeModel represents the diagram_edges table
type DiagramEdgeModel struct {
	ID             int    `gorm:"column:id;primaryKey;autoIncrement"`
	SourceNodeID   string `gorm:"column:source_node_id;not null"`
	TargetNodeID   string `gorm:"column:target_node_id;not null"`
	SourceType     string `gorm:"column:source_type;not null"`
	BasePriceDelta int64  `gorm:"column:base_price_delta;not null"`
	CustomPrice    *int64 `gorm:"column:custom_price"`
	Currency       string `gorm:"column:currency"`
	SourceShip     string `gorm:"column:source_ship;type:text"` // snapshot, JSON as text
	TargetShip     string `gorm:"column:target_ship;type:text"` // snapshot, JSON as text
}

func (DiagramEdgeModel) TableName() string {
	return "diagram_edges"
}

// HangarItemModel represents the hangar_items table
type HangarItemModel struct {
	ID           int    `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string `gorm:"column:name;not null"`
	FromShipName string `gorm:"column:from_ship_name"`
	ToShipName   string `gorm:"column:to_ship_name"`
	Value        int64  `gorm:"column:value;not null"`
	Quantity     int    `gorm:"column:quantity;not null;default:1"`
}

func (HangarItemModel) TableName() string {
	return "hangar_items"
}

// PriceHistoryModel represents the price_history table, one row per
// historical promo observation.
type PriceHistoryModel struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement"`
	ShipID     string    `gorm:"column:ship_id;not null;index"`
	Price      int64     `gorm:"column:price;not null"`
	BaseMsrp   int64     `gorm:"column:base_msrp;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null"`
}

func (PriceHistoryModel) TableName() string {
	return "price_history"
}

// SubscriptionOfferModel represents the subscription_offers table
type SubscriptionOfferModel struct {
	ID         int    `gorm:"column:id;primaryKey;autoIncrement"`
	FromShipID string `gorm:"column:from_ship_id;not null"`
	ToShipID   string `gorm:"column:to_ship_id;not null"`
	Price      int64  `gorm:"column:price;not null"`
	Currency   string `gorm:"column:currency;not null"`
}

func (SubscriptionOfferModel) TableName() string {
	return "subscription_offers"
}
