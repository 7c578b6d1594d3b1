package models

import (
	"encoding/json"
	"time"
)

// BlockedSlot adalah rentang waktu yang ditutup manual oleh staff
// (maintenance, private event). TableIDs kosong berarti blokir seluruh
// restoran; kalau terisi hanya meja yang terdaftar yang terblokir.
// Blok lama tidak pernah dihapus otomatis, hanya difilter berdasarkan tanggal.
type BlockedSlot struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"code"`
	RestaurantID uint      `gorm:"index;not null" json:"restaurant_id"`
	Date         string    `gorm:"type:varchar(10);index;not null" json:"date"`
	StartTime    string    `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime      string    `gorm:"type:varchar(8);not null" json:"end_time"`
	Reason       string    `gorm:"type:varchar(255)" json:"reason"`
	TableIDs     string    `gorm:"type:text" json:"-"`
	CreatedBy    uint      `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

// TableIDList membaca daftar id meja dari kolom JSON
func (b *BlockedSlot) TableIDList() []uint {
	if b.TableIDs == "" || b.TableIDs == "[]" {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal([]byte(b.TableIDs), &ids); err != nil {
		return nil
	}
	return ids
}

// SetTableIDList menyimpan daftar id meja sebagai JSON
func (b *BlockedSlot) SetTableIDList(ids []uint) error {
	if len(ids) == 0 {
		b.TableIDs = "[]"
		return nil
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	b.TableIDs = string(raw)
	return nil
}

// IsRestaurantWide -> daftar meja kosong berarti seluruh restoran terblokir
func (b *BlockedSlot) IsRestaurantWide() bool {
	return len(b.TableIDList()) == 0
}

// AppliesToTable mengecek apakah blok ini mengenai meja tertentu
func (b *BlockedSlot) AppliesToTable(tableID uint) bool {
	ids := b.TableIDList()
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if id == tableID {
			return true
		}
	}
	return false
}
