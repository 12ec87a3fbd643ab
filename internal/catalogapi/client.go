// Package catalogapi is the HTTP client for the remote catalog REST service.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/themilho/product-catalog/internal/domain"
	apperrors "github.com/themilho/product-catalog/pkg/errors"
	"github.com/themilho/product-catalog/pkg/httpclient"
	"github.com/themilho/product-catalog/pkg/tracing"
)

// ServiceName prefixes messages parsed from error responses.
const ServiceName = "catalog-api"

const tracerName = "github.com/themilho/product-catalog/internal/catalogapi"

// Client talks to the catalog API. Every failure it returns, whether the
// request never completed or the server answered non-2xx, matches
// apperrors.ErrNetworkOrServer.
type Client struct {
	http    httpclient.Doer
	baseURL string
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New creates a client for the API rooted at baseURL.
func New(doer httpclient.Doer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		tracer:  tracing.Tracer(tracerName),
	}
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches the whole collection. The API has no favorites query, so
// favoritesOnly is applied to the response.
func (c *Client) List(ctx context.Context, favoritesOnly bool) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.call(ctx, "list products", http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	if !favoritesOnly {
		return products, nil
	}

	favorites := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Favorite {
			favorites = append(favorites, p)
		}
	}
	return favorites, nil
}

// Get fetches one product.
func (c *Client) Get(ctx context.Context, id int) (domain.Product, error) {
	var p domain.Product
	err := c.call(ctx, "get product", http.MethodGet, productPath(id), nil, &p)
	return p, err
}

// Create stores a new product and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := c.call(ctx, "create product", http.MethodPost, "/products/new", in, &p)
	return p, err
}

// Update sends the set fields of patch with PUT.
func (c *Client) Update(ctx context.Context, id int, patch domain.ProductPatch) (domain.Product, error) {
	var p domain.Product
	err := c.call(ctx, "update product", http.MethodPut, productPath(id), patch, &p)
	return p, err
}

// Delete removes a product.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.call(ctx, "delete product", http.MethodDelete, productPath(id), nil, nil)
}

// SetFavorite sets the favorite flag with PATCH {"favorite": b}.
func (c *Client) SetFavorite(ctx context.Context, id int, favorite bool) (domain.Product, error) {
	var p domain.Product
	err := c.call(ctx, "set favorite", http.MethodPatch, productPath(id), domain.FavoritePatch(favorite), &p)
	return p, err
}

func productPath(id int) string {
	return "/products/" + strconv.Itoa(id)
}

// call performs one request. in is encoded as the JSON body when non-nil and
// a 2xx body is decoded into out when out is non-nil.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any) (err error) {
	url := c.baseURL + path

	ctx, span := c.tracer.Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPMethod(method),
			semconv.HTTPURL(url),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, op+" failed")
		}
		span.End()
	}()

	var body io.Reader = http.NoBody
	if in != nil {
		payload, marshalErr := json.Marshal(in)
		if marshalErr != nil {
			return apperrors.Upstream(op, fmt.Errorf("marshal request: %w", marshalErr))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return apperrors.Upstream(op, fmt.Errorf("create request: %w", err))
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		c.logger.WarnContext(ctx, "catalog api unreachable",
			slog.String("op", op),
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return apperrors.Upstream(op, fmt.Errorf("call catalog api: %w", err))
	}

	span.SetAttributes(semconv.HTTPStatusCode(resp.StatusCode))
	c.logger.DebugContext(ctx, "catalog api call",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if !httpclient.IsSuccess(resp.StatusCode) {
		return apperrors.Upstream(op, httpclient.ParseResponseError(resp, ServiceName))
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Upstream(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
