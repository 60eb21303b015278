// Package usecase は2銘柄比較リクエストのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock_compare/internal/feature/compare/domain"
	"stock_compare/internal/feature/compare/domain/analytics"
	"stock_compare/internal/feature/compare/domain/entity"
	"stock_compare/internal/shared/ratelimiter"
)

const (
	// ComparisonWindowDays は比較対象期間（本日から遡る日数、5年分）です。
	ComparisonWindowDays = 1825

	// Interval は取得する時系列のサンプリング間隔です。
	Interval = "1mo"
)

// MarketRepository は外部プロバイダから月次終値の系列を取得するリポジトリを抽象化します。
// データが存在しない場合は空の成功ではなく domain.ErrNoDataReturned を返します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetMonthlyCloses(ctx context.Context, symbol string, from, to time.Time) (entity.PriceSeries, error)
}

// CompareUsecase は1回の比較リクエストをステートレスに処理します。
// リクエスト間で共有する状態は持たず、導出値のキャッシュも行いません。
type CompareUsecase struct {
	market      MarketRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewCompareUsecase は新しい CompareUsecase を作成します。
func NewCompareUsecase(market MarketRepository, rateLimiter ratelimiter.RateLimiterInterface) *CompareUsecase {
	return &CompareUsecase{market: market, rateLimiter: rateLimiter}
}

// Compare は2つのティッカーの5年月次終値を取得し、共有する日付に揃えた上で
// 正規化系列・差分系列・CAGR・最大ドローダウンを計算します。
//
// どちらか一方の取得に失敗した場合は比較全体を中断し、失敗した銘柄が
// 分かるようにエラーをラップして返します（部分的な結果は返しません）。
func (cu *CompareUsecase) Compare(ctx context.Context, ticker1, ticker2 string) (entity.Comparison, error) {
	ticker1 = strings.TrimSpace(ticker1)
	ticker2 = strings.TrimSpace(ticker2)
	if ticker1 == "" || ticker2 == "" || ticker1 == ticker2 {
		return entity.Comparison{}, domain.ErrInvalidInput
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -ComparisonWindowDays)

	s1, err := cu.fetch(ctx, ticker1, from, to)
	if err != nil {
		return entity.Comparison{}, err
	}
	s2, err := cu.fetch(ctx, ticker2, from, to)
	if err != nil {
		return entity.Comparison{}, err
	}

	// 上場時期の違いなどで期間が異なる場合は両者が共有する日付に制限する
	a1, a2, err := analytics.AlignIntersect(s1, s2)
	if err != nil {
		return entity.Comparison{}, err
	}

	m1, err := metricsFor(a1)
	if err != nil {
		return entity.Comparison{}, err
	}
	m2, err := metricsFor(a2)
	if err != nil {
		return entity.Comparison{}, err
	}

	n1, err := analytics.Normalize(a1)
	if err != nil {
		return entity.Comparison{}, err
	}
	n2, err := analytics.Normalize(a2)
	if err != nil {
		return entity.Comparison{}, err
	}

	diff, err := analytics.Difference(n1, n2)
	if err != nil {
		return entity.Comparison{}, err
	}

	return entity.Comparison{
		Ticker1:     ticker1,
		Ticker2:     ticker2,
		Normalized1: n1,
		Normalized2: n2,
		Difference:  diff,
		Metrics1:    m1,
		Metrics2:    m2,
	}, nil
}

// fetch はレートリミットを考慮して1銘柄分の系列を取得します。
// エラーには銘柄名を付与し、呼び出し元がどちらの取得で失敗したか報告できるようにします。
func (cu *CompareUsecase) fetch(ctx context.Context, symbol string, from, to time.Time) (entity.PriceSeries, error) {
	cu.rateLimiter.WaitIfNeeded()
	s, err := cu.market.GetMonthlyCloses(ctx, symbol, from, to)
	if err != nil {
		return entity.PriceSeries{}, fmt.Errorf("%s: %w", symbol, err)
	}
	return s, nil
}

// metricsFor は1系列分のサマリ統計を計算します。
func metricsFor(s entity.PriceSeries) (entity.Metrics, error) {
	cagr, err := analytics.CAGR(s)
	if err != nil {
		return entity.Metrics{}, err
	}
	dd, err := analytics.MaxDrawdown(s)
	if err != nil {
		return entity.Metrics{}, err
	}
	return entity.Metrics{CAGR: cagr, MaxDrawdown: dd}, nil
}
