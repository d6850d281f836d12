// SPDX-License-Identifier: Apache-2.0

package store

import (
	"github.com/davistroy/radioforms-sub003/internal/config"
	"github.com/davistroy/radioforms-sub003/internal/logger"
)

// Storages bundles every repository over one database connection. Each
// repository owns its own cache so invalidation stays scoped to one entity;
// the form repository additionally holds the attachment cache for cascade
// deletes.
type Storages struct {
	Forms       FormRepository
	Incidents   IncidentRepository
	Users       UserRepository
	Attachments AttachmentRepository
	Settings    SettingRepository

	caches []Cache
}

// NewStorages wires all repositories over db using the cache policy from cfg.
func NewStorages(db *DB, cfg config.Storage, log *logger.Logger) *Storages {
	formsCache := NewCache(cfg.Cache)
	incidentsCache := NewCache(cfg.Cache)
	usersCache := NewCache(cfg.Cache)
	attachmentsCache := NewCache(cfg.Cache)
	settingsCache := NewCache(cfg.Cache)

	return &Storages{
		Forms:       NewFormRepository(db, formsCache, attachmentsCache, log),
		Incidents:   NewIncidentRepository(db, incidentsCache, log),
		Users:       NewUserRepository(db, usersCache, log),
		Attachments: NewAttachmentRepository(db, attachmentsCache, log),
		Settings:    NewSettingRepository(db, settingsCache, log),

		caches: []Cache{formsCache, incidentsCache, usersCache, attachmentsCache, settingsCache},
	}
}

// SweepCaches drops expired entries from every repository cache. Reads
// already expire lazily; the sweep reclaims entries nothing reads again.
func (s *Storages) SweepCaches() {
	for _, c := range s.caches {
		if sweeper, ok := c.(Sweeper); ok {
			sweeper.Sweep()
		}
	}
}

// InvalidateAll drops every repository cache. Callers use it after operations
// that touch rows outside the repository layer, such as migrations.
func (s *Storages) InvalidateAll() {
	s.Forms.InvalidateCache()
	s.Incidents.InvalidateCache()
	s.Users.InvalidateCache()
	s.Attachments.InvalidateCache()
	s.Settings.InvalidateCache()
}
