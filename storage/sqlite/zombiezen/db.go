package zombiezen

import (
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"
)

// NewPool opens the SQLite database at dbPath, creating it if needed, and
// makes sure the run tables exist. Extraction writes from one goroutine, so
// the pool is kept small.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	initString := fmt.Sprintf("file:%s", dbPath)

	// default flags: sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI
	pool, err := sqlitex.NewPool(initString, sqlitex.PoolOptions{
		PoolSize: 2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite pool at %s: %w", dbPath, err)
	}

	if err := CreateSchemas(pool, "runs.sql"); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
