package swap

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/duongtuttbn/swapkit/lerror"
	"github.com/duongtuttbn/swapkit/log"
	"github.com/duongtuttbn/swapkit/model"
	"github.com/duongtuttbn/swapkit/utils"
)

const (
	DefaultSlippage = 0.005
	MaxSlippage     = 0.1
	DefaultQuoteTTL = 10 * time.Second
)

type (
	// Aggregator is satisfied by *aggregator.Client
	Aggregator interface {
		GetQuote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error)
		GetCalldata(ctx context.Context, req model.CalldataRequest) (*model.Calldata, error)
	}

	// PriceSource is satisfied by *price.Client
	PriceSource interface {
		NativeTokenPriceUSD(ctx context.Context, chainID int64) (*float64, error)
	}

	// Result describes a submitted swap
	Result struct {
		ChainID     int64
		TxHash      string
		ExplorerURL string
		Calldata    model.Calldata
	}

	Option func(*Service)

	// Service holds the state of one swap form: chain, token pair, entered
	// amount, slippage and the prepared calldata.
	Service struct {
		aggregator Aggregator
		prices     PriceSource
		cache      *QuoteCache
		listeners  []func(Result)

		mu       sync.Mutex
		chainID  int64
		from     model.TokenInfo
		to       model.TokenInfo
		amount   string
		slippage float64
		calldata *model.Calldata
		// preparedFor is the recipient calldata was built for
		preparedFor common.Address
		lastTx   string
	}
)

func WithQuoteTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = NewQuoteCache(ttl)
	}
}

func WithSlippage(slippage float64) Option {
	return func(s *Service) {
		if validSlippage(slippage) {
			s.slippage = slippage
		}
	}
}

// WithSwapListener registers a callback fired after every executed swap,
// cached quotes are already invalidated when it runs
func WithSwapListener(listener func(Result)) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, listener)
	}
}

func NewService(aggregator Aggregator, prices PriceSource, opts ...Option) *Service {
	s := &Service{
		aggregator: aggregator,
		prices:     prices,
		cache:      NewQuoteCache(DefaultQuoteTTL),
		slippage:   DefaultSlippage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validSlippage(v float64) bool {
	return v >= 0 && v <= MaxSlippage
}

// SetChain selects the chain and resets the pair to its default tokens
func (s *Service) SetChain(chainID int64) error {
	from, to, ok := model.DefaultPair(chainID)
	if !ok {
		return lerror.UnsupportedChain.ToError("Unsupported chain")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chainID = chainID
	s.from, s.to = from, to
	s.calldata = nil
	return nil
}

func (s *Service) ChainID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chainID
}

// SelectTokens overrides the pair, both tokens must be on the selected chain
func (s *Service) SelectTokens(from, to model.TokenInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from.ChainID != s.chainID || to.ChainID != s.chainID {
		return lerror.UnsupportedChain.ToError("tokens are not on the selected chain")
	}
	s.from, s.to = from, to
	s.calldata = nil
	return nil
}

func (s *Service) Tokens() (from, to model.TokenInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.from, s.to
}

func (s *Service) SwitchTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.from, s.to = s.to, s.from
	s.calldata = nil
}

// SetAmount stores the entered amount, "" clears it
func (s *Service) SetAmount(amount string) error {
	if amount != "" && !utils.IsDecimalString(amount) {
		return lerror.InvalidAmount.ToError(fmt.Sprintf("invalid amount %q", amount))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amount = amount
	s.calldata = nil
	return nil
}

func (s *Service) Amount() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.amount
}

func (s *Service) SetSlippage(slippage float64) error {
	if !validSlippage(slippage) {
		return lerror.InvalidData.ToError(fmt.Sprintf("slippage must be between 0 and %v", MaxSlippage))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slippage = slippage
	s.calldata = nil
	return nil
}

func (s *Service) Slippage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slippage
}

func (s *Service) LastTxHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTx
}

// quoteRequest builds the aggregator request from the current form,
// the amount is scaled with the decimals of the source token
func (s *Service) quoteRequest() (model.QuoteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chainID == 0 || s.from.Address == "" || s.to.Address == "" || s.amount == "" {
		return model.QuoteRequest{}, lerror.MissingParams.ToError()
	}
	amountIn, err := utils.ToFixedPoint(s.amount, s.from.Decimals)
	if err != nil {
		return model.QuoteRequest{}, err
	}
	if amountIn == "0" {
		return model.QuoteRequest{}, lerror.InvalidAmount.ToError("amount must be greater than zero")
	}
	return model.QuoteRequest{
		ChainID:  s.chainID,
		Src:      s.from.Address,
		Dst:      s.to.Address,
		AmountIn: amountIn,
	}, nil
}

// CanQuote reports whether the form holds everything a quote needs
func (s *Service) CanQuote() bool {
	_, err := s.quoteRequest()
	return err == nil
}

// Quote returns the quote of the current form, served from cache while fresh
func (s *Service) Quote(ctx context.Context) (*model.Quote, error) {
	req, err := s.quoteRequest()
	if err != nil {
		return nil, err
	}
	if q, ok := s.cache.Get(req); ok {
		return q, nil
	}
	q, err := s.aggregator.GetQuote(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cache.Put(req, q)
	return q, nil
}

// PrepareSwap fetches calldata of the current quote for recipient
func (s *Service) PrepareSwap(ctx context.Context, recipient string) (*model.Calldata, error) {
	if !common.IsHexAddress(recipient) {
		return nil, lerror.MissingParams.ToError("Missing quote information or wallet address")
	}
	q, err := s.Quote(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "prepare swap")
	}
	data, err := s.aggregator.GetCalldata(ctx, model.CalldataRequest{
		Quote:             *q,
		Recipient:         common.HexToAddress(recipient).Hex(),
		SlippageTolerance: s.Slippage(),
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.calldata = data
	s.preparedFor = common.HexToAddress(recipient)
	s.mu.Unlock()
	return data, nil
}

// ExecuteSwap submits the prepared swap, calldata prepared for another
// recipient is built again. Signing is outside this toolkit so
// the transaction is simulated and gets a random hash. Afterwards cached quotes
// are invalidated, listeners are notified and the form is cleared.
func (s *Service) ExecuteSwap(ctx context.Context, recipient string) (Result, error) {
	s.mu.Lock()
	data := s.calldata
	if data != nil && (!common.IsHexAddress(recipient) || s.preparedFor != common.HexToAddress(recipient)) {
		data = nil
	}
	chainID := s.chainID
	s.mu.Unlock()

	if data == nil {
		var err error
		if data, err = s.PrepareSwap(ctx, recipient); err != nil {
			return Result{}, err
		}
	}

	var hash common.Hash
	if _, err := rand.Read(hash[:]); err != nil {
		return Result{}, errors.Wrap(err, "unable to generate tx hash")
	}
	res := Result{
		ChainID:     chainID,
		TxHash:      hash.Hex(),
		ExplorerURL: model.ExplorerTxURL(chainID, hash.Hex()),
		Calldata:    *data,
	}

	s.cache.Invalidate()
	s.mu.Lock()
	s.calldata = nil
	s.amount = ""
	s.lastTx = res.TxHash
	s.mu.Unlock()

	log.WithFields(logrus.Fields{
		"chain": chainID,
		"tx":    res.TxHash,
	}).Infof("swap submitted to %s", data.To)
	for _, listener := range s.listeners {
		listener(res)
	}
	return res, nil
}
