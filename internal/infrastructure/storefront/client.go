// Package storefront implementa RecordSource sobre la API REST de la tienda.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

var _ repository.RecordSource = (*Client)(nil)

const (
	maxPages     = 1000     // tope de páginas por carga
	maxPageBytes = 16 << 20 // tope de lectura por respuesta
)

// HTTPStatusError respuesta no 2xx de la API.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("storefront: HTTP %d en %s", e.StatusCode, e.URL)
}

// Client adaptador HTTP de la API de la tienda.
type Client struct {
	baseURL        string
	token          string
	pageSize       int
	maxConcurrency int
	httpClient     *http.Client
	log            *logger.Logger
}

// NewClient construye el adaptador con la configuración STOREFRONT_*.
func NewClient(cfg config.StorefrontConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL:        cfg.BaseURL,
		token:          cfg.Token,
		pageSize:       cfg.PageSize,
		maxConcurrency: cfg.MaxConcurrency,
		httpClient:     &http.Client{Timeout: timeout},
		log:            log,
	}
	if c.pageSize <= 0 {
		c.pageSize = 100
	}
	if c.maxConcurrency <= 0 {
		c.maxConcurrency = 1
	}
	return c
}

// pageEnvelope formatos de respuesta aceptados: {data|items, meta|pagination}.
type pageEnvelope struct {
	Data       []entity.RawRecord `json:"data"`
	Items      []entity.RawRecord `json:"items"`
	Meta       *pageMeta          `json:"meta"`
	Pagination *pageMeta          `json:"pagination"`
}

type pageMeta struct {
	TotalPages  int `json:"totalPages"`
	TotalPages2 int `json:"total_pages"`
	LastPage    int `json:"last_page"`
	LastPage2   int `json:"lastPage"`
}

func (m *pageMeta) pages() int {
	if m == nil {
		return 1
	}
	return max(m.TotalPages, m.TotalPages2, m.LastPage, m.LastPage2, 1)
}

// FetchRecords descarga todas las páginas: la primera sola (para conocer el total) y el resto
// en paralelo con concurrencia acotada. El resultado respeta el orden de las páginas.
func (c *Client) FetchRecords(ctx context.Context, storeID string, kind entity.RecordKind) ([]entity.RawRecord, error) {
	if !kind.Valid() {
		return nil, domain.ErrUnknownKind
	}

	first, totalPages, err := c.fetchPage(ctx, storeID, kind, 1)
	if err != nil {
		return nil, err
	}
	if totalPages > maxPages {
		c.log.Warn().Str("store_id", storeID).Int("total_pages", totalPages).Msg("storefront: total de páginas recortado")
		totalPages = maxPages
	}
	if totalPages <= 1 {
		return first, nil
	}

	pages := make([][]entity.RawRecord, totalPages)
	pages[0] = first

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	for p := 2; p <= totalPages; p++ {
		p := p
		g.Go(func() error {
			recs, _, err := c.fetchPage(gctx, storeID, kind, p)
			if err != nil {
				return err
			}
			pages[p-1] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range pages {
		total += len(p)
	}
	out := make([]entity.RawRecord, 0, total)
	for _, p := range pages {
		out = append(out, p...)
	}
	c.log.Debug().
		Str("store_id", storeID).
		Str("kind", string(kind)).
		Int("pages", totalPages).
		Int("records", len(out)).
		Msg("storefront: registros descargados")
	return out, nil
}

func (c *Client) pageURL(storeID string, kind entity.RecordKind, page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(c.pageSize))
	return fmt.Sprintf("%s/stores/%s/%ss?%s", c.baseURL, url.PathEscape(storeID), kind, q.Encode())
}

// fetchPage devuelve los registros de la página y el total de páginas declarado por la API.
func (c *Client) fetchPage(ctx context.Context, storeID string, kind entity.RecordKind, page int) ([]entity.RawRecord, int, error) {
	target := c.pageURL(storeID, kind, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("storefront: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("storefront: timeout o cancelación: %w", ctx.Err())
		}
		return nil, 0, fmt.Errorf("storefront: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, 0, &HTTPStatusError{StatusCode: resp.StatusCode, URL: target}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("storefront: leer respuesta: %w", err)
	}
	recs, pages, err := decodePage(body)
	if err != nil {
		return nil, 0, fmt.Errorf("storefront: página %d: %w", page, err)
	}
	return recs, pages, nil
}

// decodePage acepta un array plano (una sola página) o el sobre paginado.
// Los números se conservan como json.Number para no perder precisión en precios.
func decodePage(body []byte) ([]entity.RawRecord, int, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []entity.RawRecord{}, 1, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if body[0] == '[' {
		var recs []entity.RawRecord
		if err := dec.Decode(&recs); err != nil {
			return nil, 0, fmt.Errorf("deserializar array: %w", err)
		}
		return recs, 1, nil
	}

	var env pageEnvelope
	if err := dec.Decode(&env); err != nil {
		return nil, 0, fmt.Errorf("deserializar sobre: %w", err)
	}
	recs := env.Data
	if recs == nil {
		recs = env.Items
	}
	if recs == nil {
		recs = []entity.RawRecord{}
	}
	meta := env.Meta
	if meta == nil {
		meta = env.Pagination
	}
	return recs, meta.pages(), nil
}

// DecodeRecords decodifica un volcado de la API (array plano o sobre paginado).
// Lo usa catalogq para leer exportaciones guardadas en disco.
func DecodeRecords(body []byte) ([]entity.RawRecord, error) {
	recs, _, err := decodePage(body)
	if err != nil {
		return nil, fmt.Errorf("storefront: %w", err)
	}
	return recs, nil
}
