// SPDX-License-Identifier: Apache-2.0

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Rules:
//   - the database DSN must be set and point at a file, not ":memory:"
//     (an in-memory database would silently lose all incident records);
//   - an enabled cache must carry a positive TTL.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Cache.Enabled && cfg.Storage.Cache.TTL <= 0 {
		return ErrInvalidCacheConfigs
	}

	return nil
}
