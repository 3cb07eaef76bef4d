package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/repository"
)

// QuoteSource fetches daily closes for a batch of tickers. It is satisfied
// by quotes.Client and stubbed in tests.
type QuoteSource interface {
	FetchBatch(ctx context.Context, tickers []string, start, end time.Time) (map[string]model.PriceSeries, []string, error)
}

// refreshLookbackDays is how far back a scheduled refresh re-fetches closes.
// Wide enough to heal gaps from provider outages without re-pulling years.
const refreshLookbackDays = 30

// PriceService owns the price history store: serving stored series, filling
// gaps from the quote source, and running scheduled refreshes. The quote
// source may be nil, which puts the service in store-only mode (used in
// tests and air-gapped deployments).
type PriceService struct {
	priceRepo   *repository.PriceRepository
	settingRepo *repository.SettingRepository
	source      QuoteSource
	fernetKey   string
}

// NewPriceService creates a new PriceService.
func NewPriceService(
	priceRepo *repository.PriceRepository,
	settingRepo *repository.SettingRepository,
	source QuoteSource,
	fernetKey string,
) *PriceService {
	return &PriceService{
		priceRepo:   priceRepo,
		settingRepo: settingRepo,
		source:      source,
		fernetKey:   fernetKey,
	}
}

// SeriesFor returns the stored daily closes for a ticker between start and
// end inclusive.
func (s *PriceService) SeriesFor(ticker string, start, end time.Time) (model.PriceSeries, error) {
	return s.priceRepo.GetSeries(ticker, start, end)
}

// EnsureSeries returns a price series per ticker for the requested window,
// pulling tickers without stored history from the quote source and
// persisting what it fetched. Tickers that could not be served from either
// place are reported in the missing slice, not as an error.
func (s *PriceService) EnsureSeries(ctx context.Context, tickers []string, start, end time.Time) (map[string]model.PriceSeries, []string, error) {
	out := make(map[string]model.PriceSeries, len(tickers))
	var toFetch []string

	for _, ticker := range tickers {
		series, err := s.priceRepo.GetSeries(ticker, start, end)
		if err != nil {
			return nil, nil, err
		}
		if len(series) > 0 {
			out[ticker] = series
		} else {
			toFetch = append(toFetch, ticker)
		}
	}

	if len(toFetch) == 0 {
		return out, []string{}, nil
	}
	if s.source == nil {
		return out, toFetch, nil
	}

	fetched, missing, err := s.source.FetchBatch(ctx, toFetch, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch quote batch: %w", err)
	}

	for ticker, series := range fetched {
		if err := s.priceRepo.UpsertSeries(ticker, series); err != nil {
			return nil, nil, err
		}
		out[ticker] = series
	}

	return out, missing, nil
}

// RefreshAll re-fetches recent closes for every tracked ticker and upserts
// them into the store. Returns the number of tickers refreshed.
func (s *PriceService) RefreshAll(ctx context.Context, now time.Time) (int, error) {
	if s.source == nil {
		return 0, fmt.Errorf("no quote source configured")
	}

	tickers, err := s.priceRepo.ListTickers()
	if err != nil {
		return 0, err
	}
	if len(tickers) == 0 {
		return 0, nil
	}

	start := now.AddDate(0, 0, -refreshLookbackDays)
	fetched, _, err := s.source.FetchBatch(ctx, tickers, start, now)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quote batch: %w", err)
	}

	for ticker, series := range fetched {
		if err := s.priceRepo.UpsertSeries(ticker, series); err != nil {
			return 0, err
		}
	}

	return len(fetched), nil
}

// StoreQuoteToken encrypts the quote provider API token with the configured
// fernet key and persists it.
func (s *PriceService) StoreQuoteToken(token string) error {
	key, err := fernet.DecodeKey(s.fernetKey)
	if err != nil {
		return fmt.Errorf("invalid settings encryption key: %w", err)
	}

	ciphertext, err := fernet.EncryptAndSign([]byte(token), key)
	if err != nil {
		return fmt.Errorf("failed to encrypt quote token: %w", err)
	}

	return s.settingRepo.Set(model.Setting{
		Key:       model.SettingQuoteAPIToken,
		Value:     string(ciphertext),
		Encrypted: true,
	})
}

// QuoteToken retrieves and decrypts the stored quote provider API token.
// Returns apperrors.ErrSettingNotFound (wrapped) when none has been stored.
func (s *PriceService) QuoteToken() (string, error) {
	setting, err := s.settingRepo.Get(model.SettingQuoteAPIToken)
	if err != nil {
		return "", err
	}

	key, err := fernet.DecodeKey(s.fernetKey)
	if err != nil {
		return "", fmt.Errorf("invalid settings encryption key: %w", err)
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(setting.Value), 0, []*fernet.Key{key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt quote token")
	}

	return string(plaintext), nil
}
