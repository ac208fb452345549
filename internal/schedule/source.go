package schedule

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"

	"csd/internal/models"
	"csd/internal/providers"
	"csd/internal/structures"
)

// maxSourceSize caps how much of a remote schedule we are willing to read.
const maxSourceSize = 4 << 20

var httpSchemeRe = regexp.MustCompile(`^https?://`)

type SourceInterface interface {
	Fetch(ctx context.Context) ([]byte, error)
	Location() string
}

// Source reads the authoritative schedule from a URL or a local file,
// depending on whether the configured location carries an http(s) scheme.
type Source struct {
	location string
	client   *http.Client
}

func NewSource(conf *structures.Config, clients *providers.HttpClients) SourceInterface {
	return &Source{
		location: conf.Schedule.SourceLocation,
		client:   clients.Source,
	}
}

func (s *Source) Location() string {
	return s.location
}

func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	if httpSchemeRe.MatchString(s.location) {
		return s.fetchRemote(ctx)
	}
	data, err := os.ReadFile(s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrSourceUnavailable, err)
	}
	return data, nil
}

func (s *Source) fetchRemote(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrSourceUnavailable, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP status %d", models.ErrSourceUnavailable, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", models.ErrSourceUnavailable, err)
	}
	return data, nil
}
