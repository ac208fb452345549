// Package stream resolves which show is on air from the Icecast status feed.
package stream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sync"
	"time"

	"csd/internal/models"
	"csd/internal/providers"
	"csd/internal/structures"

	json "github.com/goccy/go-json"
)

// DefaultTTL is how long a poll result is trusted before the next read polls again.
const DefaultTTL = 5 * time.Second

const maxStatusSize = 1 << 20

// Icecast writes a bare dash for some empty fields ("server_name": - ,).
// Quote it so the document parses.
var dashQuirkRe = regexp.MustCompile(`([^\\])(["']): *- *,(["'])`)

type ResolverInterface interface {
	Status(ctx context.Context) models.StreamStatus
	IsShowLive(ctx context.Context) bool
	CurrentShowName(ctx context.Context) string
}

// Resolver caches the last poll of the status feed for ttl.
//
// The staleness check and the refresh are not one atomic step: two requests
// that both see a stale cache may both poll. Polls are idempotent so the
// duplicate is harmless and readers never wait on each other's poll.
type Resolver struct {
	mu         sync.RWMutex
	status     models.StreamStatus
	url        string
	mountpoint string
	ttl        time.Duration
	client     *http.Client
	now        func() time.Time
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewResolver(conf *structures.Config, clients *providers.HttpClients, logger providers.Logger, metrics providers.MetricsProviderInterface) *Resolver {
	ttl := conf.Stream.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Resolver{
		url:        conf.Stream.StatusURL,
		mountpoint: conf.Stream.MainMountpoint,
		ttl:        ttl,
		client:     clients.Status,
		now:        time.Now,
		logger:     logger,
		metrics:    metrics,
	}
}

// SetClock replaces the time source, used by tests.
func (r *Resolver) SetClock(now func() time.Time) {
	r.now = now
}

func (r *Resolver) Status(ctx context.Context) models.StreamStatus {
	r.mu.RLock()
	status := r.status
	r.mu.RUnlock()

	if r.now().Sub(status.LastCheckedAt) < r.ttl {
		return status
	}
	// a caller hanging up must not be cached as "nothing live"; the status
	// client timeout still bounds the poll
	return r.Refresh(context.WithoutCancel(ctx))
}

func (r *Resolver) IsShowLive(ctx context.Context) bool {
	return r.Status(ctx).Running
}

func (r *Resolver) CurrentShowName(ctx context.Context) string {
	return r.Status(ctx).ShowName
}

// Refresh polls the feed once and stores the result. Failures are logged and
// resolve to "nothing live"; the check time is stamped either way so a broken
// feed is polled at most once per ttl.
func (r *Resolver) Refresh(ctx context.Context) models.StreamStatus {
	status, err := r.poll(ctx)
	if err != nil {
		r.logger.Errorf(providers.TypeStream, "Error getting status from Icecast at %s: %s", r.url, err)
		r.metrics.IncStatusPolls("error")
		status = models.StreamStatus{}
	} else {
		r.metrics.IncStatusPolls("ok")
	}
	status.LastCheckedAt = r.now()
	r.metrics.SetShowLive(status.Running)

	r.mu.Lock()
	r.status = status
	r.mu.Unlock()
	return status
}

func (r *Resolver) poll(ctx context.Context) (models.StreamStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return models.StreamStatus{}, fmt.Errorf("%w: %w", models.ErrStatusFeed, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return models.StreamStatus{}, fmt.Errorf("%w: %w", models.ErrStatusFeed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.StreamStatus{}, fmt.Errorf("%w: HTTP status %d", models.ErrStatusFeed, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxStatusSize))
	if err != nil {
		return models.StreamStatus{}, fmt.Errorf("%w: read body: %w", models.ErrStatusFeed, err)
	}
	return ParseStatus(body, r.mountpoint)
}

// RepairFeed quotes the bare dash placeholders Icecast emits for absent values.
func RepairFeed(body []byte) []byte {
	return dashQuirkRe.ReplaceAll(body, []byte(`${1}${2}:"-",${3}`))
}

// ParseStatus finds the live source on mountpoint. The feed's source field is
// a single object when one mountpoint is active and an array otherwise; both
// shapes resolve the same way.
func ParseStatus(body []byte, mountpoint string) (models.StreamStatus, error) {
	var doc models.IcecastStatus
	if err := json.Unmarshal(RepairFeed(body), &doc); err != nil {
		return models.StreamStatus{}, fmt.Errorf("%w: %w", models.ErrStatusFeed, err)
	}
	if doc.Icestats == nil {
		return models.StreamStatus{}, nil
	}

	raw := bytes.TrimSpace(doc.Icestats.Source)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.StreamStatus{}, nil
	}

	var sources []models.IcecastSource
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &sources); err != nil {
			return models.StreamStatus{}, fmt.Errorf("%w: %w", models.ErrStatusFeed, err)
		}
	} else {
		var single models.IcecastSource
		if err := json.Unmarshal(raw, &single); err != nil {
			return models.StreamStatus{}, fmt.Errorf("%w: %w", models.ErrStatusFeed, err)
		}
		sources = append(sources, single)
	}

	// the first live source on the mountpoint wins
	for _, src := range sources {
		if src.Mountpoint() != mountpoint || !src.Live() {
			continue
		}
		status := models.StreamStatus{Running: true}
		if src.ServerName != nil {
			status.ShowName = *src.ServerName
		}
		return status, nil
	}
	return models.StreamStatus{}, nil
}
