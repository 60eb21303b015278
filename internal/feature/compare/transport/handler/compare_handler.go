// Package handler はcompareフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_compare/internal/feature/compare/domain"
	"stock_compare/internal/feature/compare/domain/entity"
	"stock_compare/internal/feature/compare/export"
	"stock_compare/internal/feature/compare/transport/http/dto"
)

// csvFileName はCSVダウンロード時のファイル名です。
const csvFileName = "stock_comparison.csv"

// CompareUsecase は2銘柄比較のユースケースインターフェースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CompareUsecase interface {
	Compare(ctx context.Context, ticker1, ticker2 string) (entity.Comparison, error)
}

// CompareHandler は比較リクエストのHTTP処理を担当します。
type CompareHandler struct {
	uc CompareUsecase
}

// NewCompareHandler は指定されたusecaseでCompareHandlerの新しいインスタンスを生成します。
func NewCompareHandler(uc CompareUsecase) *CompareHandler {
	return &CompareHandler{uc: uc}
}

// GetComparisonHandler は2つのティッカーを受け取り、比較結果をJSONで返します。
//
// エンドポイント例:
// GET /compare?ticker1=HDFCBANK.NS&ticker2=INFY.NS
func (h *CompareHandler) GetComparisonHandler(c *gin.Context) {
	ticker1, ticker2, ok := tickersFromQuery(c)
	if !ok {
		return
	}

	result, err := h.uc.Compare(c.Request.Context(), ticker1, ticker2)
	if err != nil {
		c.JSON(statusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toResponse(result))
}

// GetComparisonCSVHandler は比較結果の正規化系列ペアをCSVとして返します。
//
// エンドポイント例:
// GET /compare/csv?ticker1=HDFCBANK.NS&ticker2=INFY.NS
func (h *CompareHandler) GetComparisonCSVHandler(c *gin.Context) {
	ticker1, ticker2, ok := tickersFromQuery(c)
	if !ok {
		return
	}

	result, err := h.uc.Compare(c.Request.Context(), ticker1, ticker2)
	if err != nil {
		c.JSON(statusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	// 途中でエラーになった場合に壊れたレスポンスを返さないよう、一旦バッファに書き出す
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, result); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+csvFileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// tickersFromQuery はクエリパラメータを検証します。不正な場合は400を書き込み、okにfalseを返します。
func tickersFromQuery(c *gin.Context) (ticker1, ticker2 string, ok bool) {
	ticker1 = c.Query("ticker1")
	ticker2 = c.Query("ticker2")
	if ticker1 == "" || ticker2 == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ticker1 and ticker2 are required"})
		return "", "", false
	}
	if ticker1 == ticker2 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ticker1 and ticker2 must differ"})
		return "", "", false
	}
	return ticker1, ticker2, true
}

// statusForError はドメインエラーをHTTPステータスに対応付けます。
// 上流プロバイダ由来のデータ無しは502、データ起因の計算不能は422、それ以外は500です。
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoDataReturned):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInsufficientData),
		errors.Is(err, domain.ErrMisalignedSeries):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// toResponse はドメインの比較結果をレスポンスDTOに変換します。
func toResponse(c entity.Comparison) dto.ComparisonResponse {
	return dto.ComparisonResponse{
		Ticker1:     c.Ticker1,
		Ticker2:     c.Ticker2,
		Normalized1: toSeriesResponse(c.Normalized1),
		Normalized2: toSeriesResponse(c.Normalized2),
		Difference:  toDifferencePoints(c.Difference),
		Metrics1:    dto.MetricsResponse{CAGR: c.Metrics1.CAGR, MaxDrawdown: c.Metrics1.MaxDrawdown},
		Metrics2:    dto.MetricsResponse{CAGR: c.Metrics2.CAGR, MaxDrawdown: c.Metrics2.MaxDrawdown},
	}
}

func toSeriesResponse(s entity.NormalizedSeries) dto.SeriesResponse {
	out := dto.SeriesResponse{Symbol: s.Symbol, Points: make([]dto.SeriesPoint, 0, s.Len())}
	for _, p := range s.Points {
		out.Points = append(out.Points, dto.SeriesPoint{
			Date:  p.Time.UTC().Format("2006-01-02"),
			Value: p.Price,
		})
	}
	return out
}

func toDifferencePoints(d entity.DifferenceSeries) []dto.SeriesPoint {
	out := make([]dto.SeriesPoint, 0, len(d.Points))
	for _, p := range d.Points {
		out = append(out, dto.SeriesPoint{
			Date:  p.Time.UTC().Format("2006-01-02"),
			Value: p.Value,
		})
	}
	return out
}
