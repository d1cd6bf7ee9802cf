package models

import "github.com/gobuffalo/nulls"

// recordTtl resolves an optional per-record TTL against the zone default.
func recordTtl(ttl nulls.UInt32, defaultTtl uint32) uint32 {
	if ttl.Valid {
		return ttl.UInt32
	}
	return defaultTtl
}
