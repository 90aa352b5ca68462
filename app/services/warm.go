package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/pkg/logger"
	"github.com/coconina/storefront/pkg/workerpool"
)

// ErrNotConfigured is returned by Warm in fixture mode.
var ErrNotConfigured = errors.New("services: api base url not configured")

// WarmReport summarizes one Warm run.
type WarmReport struct {
	Products int           `json:"products"`
	Details  int           `json:"details"`
	Failed   int           `json:"failed"`
	Took     time.Duration `json:"took"`
}

// Warm refetches the product list and every product detail from the API and
// stores them in the cache, so storefront reads inside the next revalidate
// window never wait on the API. Fixture data is never cached.
func (g *Gateway) Warm(ctx context.Context) (WarmReport, error) {
	const op = "Gateway.Warm"
	log := logger.WithCtx(ctx).With("op", op)
	start := time.Now()

	if !g.IsConfigured() {
		return WarmReport{}, ErrNotConfigured
	}

	resp, _, err := g.get(ctx, op, "/public/products")
	if err != nil {
		return WarmReport{}, err
	}
	products, err := decodeProducts(resp.Raw)
	if err != nil {
		return WarmReport{}, fmt.Errorf("%s: %w", op, err)
	}
	g.store(ctx, productsKey, products)

	var details, failed atomic.Int64
	pool := workerpool.New(g.warmers)
	for _, p := range products {
		err := pool.SubmitCtx(ctx, func() {
			if g.warmOne(ctx, p) {
				details.Add(1)
			} else {
				failed.Add(1)
			}
		})
		if err != nil {
			failed.Add(1)
		}
	}
	pool.Shutdown()

	report := WarmReport{
		Products: len(products),
		Details:  int(details.Load()),
		Failed:   int(failed.Load() + pool.Panics()),
		Took:     time.Since(start),
	}
	log.Info("cache warmed", "products", report.Products, "details", report.Details, "failed", report.Failed, "took", report.Took.String())
	return report, ctx.Err()
}

func (g *Gateway) warmOne(ctx context.Context, p models.Product) bool {
	const op = "Gateway.Warm"
	detail, reason, err := g.fetchProduct(ctx, op, p.ID)
	if err != nil {
		logger.WithCtx(ctx).Debug("detail refresh failed", "op", op, "id", p.ID, "reason", reason, "error", err)
		return false
	}
	g.store(ctx, productKeyPrefix+p.ID, detail)
	return true
}
