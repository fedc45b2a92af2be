package tilemap

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/iburimskiy/papermap-live/internal/logging"
)

const (
	defaultUserAgent = "papermap-live/1.0 (+https://github.com/iburimskiy/papermap-live)"
	maxTileBytes     = 4 << 20
	queueSize        = 512
)

type tileResult struct {
	key TileKey
	img image.Image
	err error
}

// fetcher downloads and decodes tiles on a fixed pool of workers. Request
// and drain are called from the render goroutine only.
type fetcher struct {
	client    *http.Client
	url       func(TileKey) string
	userAgent string
	logger    logging.Logger

	cancel   context.CancelFunc
	group    *errgroup.Group
	queue    chan TileKey
	results  chan tileResult
	inflight map[TileKey]bool
}

func newFetcher(client *http.Client, url func(TileKey) string, userAgent string, workers int, logger logging.Logger) *fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	f := &fetcher{
		client:    client,
		url:       url,
		userAgent: userAgent,
		logger:    logging.OrNoop(logger),
		cancel:    cancel,
		group:     g,
		queue:     make(chan TileKey, queueSize),
		results:   make(chan tileResult, queueSize),
		inflight:  make(map[TileKey]bool),
	}
	for i := 0; i < workers; i++ {
		g.Go(func() error { return f.work(ctx) })
	}
	return f
}

// request queues k unless it is already in flight. It reports false when
// the queue is full; callers retry on a later frame.
func (f *fetcher) request(k TileKey) bool {
	if f.inflight[k] {
		return true
	}
	select {
	case f.queue <- k:
		f.inflight[k] = true
		return true
	default:
		return false
	}
}

func (f *fetcher) pending() int { return len(f.inflight) }

// drain hands every finished tile to fn without blocking.
func (f *fetcher) drain(fn func(tileResult)) {
	for {
		select {
		case r := <-f.results:
			delete(f.inflight, r.key)
			fn(r)
		default:
			return
		}
	}
}

// close cancels outstanding downloads and waits for the workers.
func (f *fetcher) close() {
	f.cancel()
	_ = f.group.Wait()
}

func (f *fetcher) work(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case k := <-f.queue:
			img, err := f.get(ctx, k)
			if err != nil && ctx.Err() == nil {
				f.logger.Errorf("tilemap", "tile %d/%d/%d: %v", k.Z, k.X, k.Y, err)
			}
			select {
			case f.results <- tileResult{key: k, img: img, err: err}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (f *fetcher) get(ctx context.Context, k TileKey) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url(k), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, maxTileBytes))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}
