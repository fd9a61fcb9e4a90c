package elastic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olivere/elastic/v7"
	"github.com/poiesic/commitload/storage"
)

// Config holds the connection settings for an Elasticsearch cluster.
type Config struct {
	Cluster  string // host name or address, without scheme
	Port     int
	Username string
	Password string
	// Sniff enables node auto-discovery on connect and on connection
	// failures. Leave it off when the cluster sits behind a proxy that
	// rewrites node addresses.
	Sniff  bool
	Logger *slog.Logger
}

// URL returns the endpoint the client connects to.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s:%d", c.Cluster, c.Port)
}

// Store implements storage.Store on top of an Elasticsearch cluster.
type Store struct {
	client *elastic.Client
	url    string
	logger *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// Connect initializes the Elasticsearch client and pings the cluster.
func Connect(ctx context.Context, cfg *Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.URL()),
		elastic.SetSniff(cfg.Sniff),
	}
	if cfg.Username != "" || cfg.Password != "" {
		opts = append(opts, elastic.SetBasicAuth(cfg.Username, cfg.Password))
	}

	client, err := elastic.DialContext(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrConnectFailed, cfg.URL(), err)
	}

	info, _, err := client.Ping(cfg.URL()).Do(ctx)
	if err != nil {
		client.Stop()
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrConnectFailed, cfg.URL(), err)
	}

	logger.Info("connected",
		"cluster", info.ClusterName,
		"node", info.Name,
		"version", info.Version.Number)

	return &Store{
		client: client,
		url:    cfg.URL(),
		logger: logger,
	}, nil
}

// Close stops the client's background sniffer and health checker.
func (s *Store) Close() error {
	s.client.Stop()
	return nil
}
