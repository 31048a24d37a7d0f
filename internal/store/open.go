package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Options selects and parameterizes a backend.
type Options struct {
	Driver   string
	URL      string
	Database string
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options, logger zerolog.Logger) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverMemory:
		return NewMemoryStore(), nil
	case "", DriverSQLite:
		return OpenSQLite(opts.URL, logger)
	case DriverPostgres:
		if opts.URL == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_URL")
		}
		return OpenPostgres(opts.URL, logger)
	case DriverMongo:
		if opts.URL == "" {
			return nil, fmt.Errorf("mongo driver requires MONGO_URL")
		}
		return OpenMongo(ctx, opts.URL, opts.Database)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
