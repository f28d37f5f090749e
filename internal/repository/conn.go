package repository

import (
	"sync/atomic"

	"gorm.io/gorm"
)

// dbHolder lets SetDB run while requests are already reading the connection.
type dbHolder struct {
	p atomic.Pointer[gorm.DB]
}

func (h *dbHolder) SetDB(db *gorm.DB) {
	h.p.Store(db)
}

func (h *dbHolder) conn() *gorm.DB {
	return h.p.Load()
}
