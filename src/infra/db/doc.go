// Package db is the storage gateway: it owns the PostgreSQL connection pool,
// runs single statements and multi-statement transactions, and applies
// schema migrations.
//
// The pool is created once at process start, handed by reference to each
// repository, and closed on shutdown:
//
//	pg, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
//
//	err = pg.WithTx(ctx, func(tx pgx.Tx) error {
//	    // statements run in program order; any error rolls back all of them
//	    return nil
//	})
package db
