// Package pg connects to Postgres through pgx and applies goose migrations
// shipped inside the binary.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, member.Migrations, "migrations", cfg, log); err != nil {
//		return err
//	}
//
// Postgres is optional for the portal: Config.Enabled is false when
// PG_CONN_URL is unset and callers keep their in-memory stores.
package pg
