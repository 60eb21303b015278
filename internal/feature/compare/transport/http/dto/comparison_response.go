// Package dto defines the HTTP response shapes for the compare feature.
package dto

// SeriesPoint は系列の1観測点のレスポンスDTOです。
type SeriesPoint struct {
	Date  string  `json:"date"`  // 日付 (YYYY-MM-DD)
	Value float64 `json:"value"` // 値
}

// SeriesResponse は1銘柄分の正規化済み系列のレスポンスDTOです。
type SeriesResponse struct {
	Symbol string        `json:"symbol"`
	Points []SeriesPoint `json:"points"`
}

// MetricsResponse は1銘柄分のサマリ指標のレスポンスDTOです。
// 値は比率（0.12 = 12%）のまま返し、表示用の整形はクライアントに任せます。
type MetricsResponse struct {
	CAGR        float64 `json:"cagr"`
	MaxDrawdown float64 `json:"max_drawdown"`
}

// ComparisonResponse は比較リクエスト全体のレスポンスDTOです。
type ComparisonResponse struct {
	Ticker1     string          `json:"ticker1"`
	Ticker2     string          `json:"ticker2"`
	Normalized1 SeriesResponse  `json:"normalized1"`
	Normalized2 SeriesResponse  `json:"normalized2"`
	Difference  []SeriesPoint   `json:"difference"`
	Metrics1    MetricsResponse `json:"metrics1"`
	Metrics2    MetricsResponse `json:"metrics2"`
}

// ErrorResponse はエラーレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
