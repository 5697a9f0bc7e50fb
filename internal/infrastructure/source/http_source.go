package source

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
	"github.com/matchday/fixtures-dashboard/internal/platform/logging"
	"github.com/matchday/fixtures-dashboard/internal/platform/resilience"
)

const defaultFetchTimeout = 10 * time.Second

type HTTPSourceConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// HTTPSource retrieves league schedule documents from a static file
// host serving <base>/<league>.json. Concurrent fetches for the same
// league share one request; a circuit breaker guards the host.
type HTTPSource struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewHTTPSource(cfg HTTPSourceConfig) *HTTPSource {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultFetchTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &HTTPSource{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, league match.League) (match.Document, error) {
	value, err, shared := s.flight.Do(string(league), func() (any, error) {
		return s.fetch(ctx, league)
	})
	if err != nil {
		return match.Document{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "league document fetch deduplicated", "league", league)
	}

	doc, ok := value.(match.Document)
	if !ok {
		return match.Document{}, crerr.Mark(crerr.Newf("unexpected singleflight value %T", value), match.ErrFetch)
	}
	return doc, nil
}

func (s *HTTPSource) fetch(ctx context.Context, league match.League) (match.Document, error) {
	if s.circuitEnabled {
		if err := s.breaker.Allow(); err != nil {
			return match.Document{}, crerr.Mark(crerr.Wrapf(err, "fetch league=%s", league), match.ErrFetch)
		}
	}

	body, err := s.get(ctx, s.baseURL+"/"+string(league)+".json")
	if err != nil {
		if s.circuitEnabled {
			s.breaker.RecordFailure()
		}
		return match.Document{}, crerr.Mark(crerr.Wrapf(err, "fetch league=%s", league), match.ErrFetch)
	}
	if s.circuitEnabled {
		s.breaker.RecordSuccess()
	}

	var doc match.Document
	if err := sonic.Unmarshal(body, &doc); err != nil {
		return match.Document{}, crerr.Mark(crerr.Wrapf(err, "decode league=%s document", league), match.ErrShape)
	}

	return doc, nil
}

func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrap(err, "do request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, crerr.Newf("unexpected status=%d", resp.StatusCode)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, resp.Body); err != nil {
		return nil, crerr.Wrap(err, "read body")
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
