package mapping

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductMapping is one row of the product_mappings table.
// Rows are read in primary key order, which is the mapping's insertion order.
type ProductMapping struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	SourceKey string `gorm:"column:source_key;size:128;not null;uniqueIndex"`
	SinkID    string `gorm:"column:sink_id;size:32;not null"`
}

// TableName overrides the GORM default.
func (ProductMapping) TableName() string {
	return "product_mappings"
}

// ReadDatabase loads the mapping from the product_mappings table.
func ReadDatabase(ctx context.Context, db *gorm.DB, logger *zap.Logger) (*Mapping, error) {
	if db == nil {
		return nil, fmt.Errorf("database source requires a database connection")
	}

	var rows []ProductMapping
	if err := db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query product mappings: %w", err)
	}

	b := newBuilder()
	for _, row := range rows {
		e, err := parseEntry(row.SourceKey, row.SinkID)
		if err != nil {
			logger.Warn("Skipping invalid mapping row",
				zap.Uint("row_id", row.ID),
				zap.String("barcode", row.SourceKey),
				zap.String("wc_id", row.SinkID),
				zap.Error(err),
			)
			continue
		}
		b.add(e)
	}
	return b.build(), nil
}
