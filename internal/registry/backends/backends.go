// Package backends lists the storage engines compiled into the server.
package backends

import (
	"smp/internal/registry/backend"
	"smp/internal/registry/store/kv/bolt"
	"smp/internal/registry/store/kv/inmem"
	"smp/internal/registry/store/kv/redis"
	"smp/internal/registry/store/postgres"
)

// Installers returns one installer per built-in engine, in the order their
// ids are reported.
func Installers() []backend.Installer {
	return []backend.Installer{
		inmem.Register,
		bolt.Register,
		redis.Register,
		postgres.Register,
	}
}
