package inventory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/greenbasket/grocer-cli/internal/config"
	"github.com/greenbasket/grocer-cli/internal/model"
)

// maxFeedBytes caps the size of a single catalog feed download.
const maxFeedBytes = 16 * 1024 * 1024

// Syncer refreshes the product repository from per-store catalog feeds.
// Fetches are rate-limited across stores with a shared limiter.
type Syncer struct {
	store   Store
	client  *http.Client
	limiter *rate.Limiter
}

// NewSyncer creates a Syncer from sync config.
func NewSyncer(store Store, cfg config.SyncConfig) *Syncer {
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Syncer{
		store:   store,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
	}
}

// Sync fetches every configured feed concurrently and upserts the rows.
// Returns the total number of products written.
func (s *Syncer) Sync(ctx context.Context, feeds map[string]string) (int, error) {
	if len(feeds) == 0 {
		return 0, eris.New("sync: no feeds configured")
	}

	runID := uuid.NewString()
	var mu sync.Mutex
	total := 0

	g, gctx := errgroup.WithContext(ctx)
	for storeID, feedURL := range feeds {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return eris.Wrapf(err, "sync: rate limit %s", storeID)
			}

			products, err := s.fetchFeed(gctx, storeID, feedURL)
			if err != nil {
				return err
			}

			n, err := s.store.UpsertProducts(gctx, products)
			if err != nil {
				return eris.Wrapf(err, "sync: upsert %s", storeID)
			}

			zap.L().Info("sync: feed complete",
				zap.String("run_id", runID),
				zap.String("store_id", storeID),
				zap.Int("products", n),
			)

			mu.Lock()
			total += n
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return total, err
	}
	return total, nil
}

// fetchFeed downloads and decodes one store's catalog feed.
func (s *Syncer) fetchFeed(ctx context.Context, storeID, feedURL string) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "sync: create request %s", storeID)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "sync: fetch feed %s", storeID)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("sync: feed %s returned %d", storeID, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, eris.Wrapf(err, "sync: read feed %s", storeID)
	}

	var products []model.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, eris.Wrapf(err, "sync: decode feed %s", storeID)
	}

	now := time.Now().UTC()
	for i := range products {
		if products[i].StoreID == "" {
			products[i].StoreID = storeID
		}
		products[i].UpdatedAt = now
	}
	return products, nil
}

// LoadSeed imports products from a local YAML file into the repository.
func LoadSeed(ctx context.Context, store Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, eris.Wrapf(err, "seed: read %s", path)
	}

	var products []model.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return 0, eris.Wrapf(err, "seed: parse %s", path)
	}
	if len(products) == 0 {
		return 0, eris.Errorf("seed: %s has no products", path)
	}

	n, err := store.UpsertProducts(ctx, products)
	if err != nil {
		return n, eris.Wrap(err, "seed: upsert")
	}
	return n, nil
}
