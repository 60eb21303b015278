package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"stock_compare/internal/feature/compare/adapters/yahoo/dto"
	"stock_compare/internal/feature/compare/domain"
	"stock_compare/internal/feature/compare/domain/entity"
	"stock_compare/internal/feature/compare/usecase"
)

// YahooMarket はYahoo Finance chart APIから株価データを取得するMarketRepository実装です。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// YahooMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// GetMonthlyCloses はYahoo Finance APIから月次の終値系列を取得します。
// 調整後終値（adjclose）を優先し、提供されない場合は生の終値にフォールバックします。
// null（欠損）の期間は除外し、日付昇順のPriceSeriesとして返します。
// 対象期間にデータが1件もない場合は domain.ErrNoDataReturned を返します。
func (y *YahooMarket) GetMonthlyCloses(ctx context.Context, symbol string, from, to time.Time) (entity.PriceSeries, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("period1", strconv.FormatInt(from.Unix(), 10))
	q.Set("period2", strconv.FormatInt(to.Unix(), 10))
	q.Set("interval", usecase.Interval)
	q.Set("events", "history")

	// URLを生成
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.PriceSeries{}, err
	}
	// Yahooはデフォルトのgo-http-clientを拒否することがある
	req.Header.Set("User-Agent", "Mozilla/5.0")

	// リクエストを実行
	res, err := y.client.Do(req)
	if err != nil {
		return entity.PriceSeries{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return entity.PriceSeries{}, fmt.Errorf("yahoo: unknown symbol %q: %w", symbol, domain.ErrNoDataReturned)
	}
	if res.StatusCode >= 400 {
		return entity.PriceSeries{}, fmt.Errorf("yahoo http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.PriceSeries{}, err
	}
	if body.Chart.Error != nil {
		return entity.PriceSeries{}, fmt.Errorf("yahoo: %s: %w", body.Chart.Error.Description, domain.ErrNoDataReturned)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Timestamp) == 0 {
		return entity.PriceSeries{}, fmt.Errorf("yahoo: empty result for %q: %w", symbol, domain.ErrNoDataReturned)
	}

	result := body.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return entity.PriceSeries{}, fmt.Errorf("yahoo: no quote data for %q: %w", symbol, domain.ErrNoDataReturned)
	}

	// 調整後終値を優先し、無ければ生の終値を使用
	prices := result.Indicators.Quote[0].Close
	if len(result.Indicators.Adjclose) > 0 && len(result.Indicators.Adjclose[0].Adjclose) == len(result.Timestamp) {
		prices = result.Indicators.Adjclose[0].Adjclose
	}
	if len(prices) != len(result.Timestamp) {
		return entity.PriceSeries{}, fmt.Errorf("yahoo: price/timestamp length mismatch for %q", symbol)
	}

	points := make([]entity.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if prices[i] == nil {
			continue // 欠損期間（休場など）はスキップ
		}
		points = append(points, entity.PricePoint{
			Time:  time.Unix(ts, 0).UTC(),
			Price: *prices[i],
		})
	}
	if len(points) == 0 {
		return entity.PriceSeries{}, fmt.Errorf("yahoo: no usable price data for %q: %w", symbol, domain.ErrNoDataReturned)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	series, err := entity.NewPriceSeries(symbol, points)
	if err != nil {
		return entity.PriceSeries{}, fmt.Errorf("yahoo: malformed series for %q: %w", symbol, err)
	}
	return series, nil
}
