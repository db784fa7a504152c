// Package resilience groups the fault tolerance helpers used around the journal store.
//
//   - circuitbreaker fails store calls fast while the database is down
//   - retry waits for the store to accept connections at startup
//
// Usage:
//
//	db := circuitbreaker.NewDB(sqlDB, "postgres")
//	repo := postgres.NewEntryRepo(db)
//
//	err := retry.WithBackoff(ctx, retry.StoreConnectConfig(), "ping postgres", func(ctx context.Context) error {
//	    return sqlDB.PingContext(ctx)
//	})
package resilience
