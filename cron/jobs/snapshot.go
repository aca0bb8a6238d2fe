// Package jobs holds the register's background jobs. Importing it (for its
// side effect) registers them with the cron registry.
package jobs

import (
	"context"
	"log"
	"time"

	"meezy.GO/config"
	"meezy.GO/cron"
	"meezy.GO/service/backend"
	"meezy.GO/service/catalog"
)

func init() {
	cron.Register("catalog:warm", "@every 5m", warmSnapshot)
}

// warmSnapshot refetches the full catalog snapshot so the next search after
// a quiet period does not pay the fetch. With Redis configured the warmed
// snapshot is shared with the serving process.
func warmSnapshot(...string) {
	config.LoadAppConfig()
	config.InitRedis()
	resolver := catalog.NewResolver(backend.NewClient(config.AppConfig.BackendURL))
	resolver.SetSnapshotLimit(config.AppConfig.SnapshotLimit)
	resolver.SetSnapshotTTL(config.AppConfig.SnapshotTTL)
	if config.RedisClient != nil {
		resolver.SetSharedCache(catalog.NewRedisSnapshotCache(config.RedisClient))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	start := time.Now()
	if err := resolver.WarmSnapshot(ctx); err != nil {
		log.Printf("cron catalog:warm failed: %v", err)
		return
	}
	log.Printf("cron catalog:warm done in %d ms", time.Since(start).Milliseconds())
}
