package swap

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/duongtuttbn/swapkit/model"
)

// quoteCacheSize bounds the entries kept between invalidations
const quoteCacheSize = 128

type quoteKey struct {
	chainID  int64
	src      string
	dst      string
	amountIn string
}

func newQuoteKey(req model.QuoteRequest) quoteKey {
	return quoteKey{
		chainID:  req.ChainID,
		src:      strings.ToLower(req.Src),
		dst:      strings.ToLower(req.Dst),
		amountIn: req.AmountIn,
	}
}

// QuoteCache keeps quotes per (chain, src, dst, amountIn) for ttl.
// It is owned by a Service, there is no process wide instance.
type QuoteCache struct {
	lru *expirable.LRU[quoteKey, *model.Quote]
}

// NewQuoteCache falls back to DefaultQuoteTTL when ttl is not positive
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return &QuoteCache{lru: expirable.NewLRU[quoteKey, *model.Quote](quoteCacheSize, nil, ttl)}
}

// Get returns a quote younger than ttl
func (c *QuoteCache) Get(req model.QuoteRequest) (*model.Quote, bool) {
	return c.lru.Get(newQuoteKey(req))
}

func (c *QuoteCache) Put(req model.QuoteRequest, quote *model.Quote) {
	c.lru.Add(newQuoteKey(req), quote)
}

// Invalidate drops every cached quote
func (c *QuoteCache) Invalidate() {
	c.lru.Purge()
}

func (c *QuoteCache) Len() int {
	return c.lru.Len()
}
