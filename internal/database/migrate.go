package database

import (
	"fmt"

	"gorm.io/gorm"

	"rawkart/internal/model"
	"rawkart/pkg/log"
)

// AutoMigrate auto migrate database table schema
func AutoMigrate(db *gorm.DB) error {
	log.Info("Starting database migration...")

	models := []interface{}{
		&model.User{},
		&model.InventoryItem{},
		&model.Order{},
		&model.Message{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
		log.Infof("Migrated model: %T", m)
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes create additional indexes
func CreateIndexes(db *gorm.DB) error {
	log.Info("Creating additional indexes...")

	indexes := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_orders_pair_item_status",
			sql:  "CREATE INDEX idx_orders_pair_item_status ON orders (vendor_id, supplier_id, inventory_item_id, status)",
		},
		{
			name: "idx_messages_room_time",
			sql:  "CREATE INDEX idx_messages_room_time ON messages (room_id, timestamp, id)",
		},
		{
			name: "idx_inventory_name_price",
			sql:  "CREATE INDEX idx_inventory_name_price ON inventory_items (item_name, price)",
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			// MySQL has no CREATE INDEX IF NOT EXISTS; a duplicate is fine on restart
			log.Warnf("Index %s not created: %v", idx.name, err)
			continue
		}
		log.Infof("Created index: %s", idx.name)
	}

	return nil
}

// NormalizeRoomIDs strips the legacy millisecond-timestamp suffix from chat
// room identities on orders and messages. An early identity scheme appended
// the request creation time, which broke the reopen-as-same-room property;
// history under the old identity is merged into the normalized room here.
func NormalizeRoomIDs(db *gorm.DB) error {
	log.Info("Normalizing legacy chat room identities...")

	stmts := []struct {
		table string
		sql   string
	}{
		{
			table: "orders",
			sql:   `UPDATE orders SET chat_room_id = REGEXP_REPLACE(chat_room_id, '_[0-9]{13}$', '') WHERE chat_room_id REGEXP '_[0-9]{13}$'`,
		},
		{
			table: "messages",
			sql:   `UPDATE messages SET room_id = REGEXP_REPLACE(room_id, '_[0-9]{13}$', '') WHERE room_id REGEXP '_[0-9]{13}$'`,
		},
	}

	for _, s := range stmts {
		res := db.Exec(s.sql)
		if res.Error != nil {
			return fmt.Errorf("failed to normalize room ids on %s: %w", s.table, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Infof("Normalized %d legacy room ids on %s", res.RowsAffected, s.table)
		}
	}

	return nil
}
