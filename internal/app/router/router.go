package router

import (
	comparehandler "stock_compare/internal/feature/compare/transport/handler"
	symbollisthandler "stock_compare/internal/feature/symbollist/transport/handler"
	"stock_compare/internal/platform/http/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(compare *comparehandler.CompareHandler,
	symbol *symbollisthandler.SymbolHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザのダッシュボードから直接呼ばれるためCORSを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// 銘柄プルダウン用の一覧
	r.GET("/symbols", symbol.List)

	// 2銘柄の比較（JSON / CSVダウンロード）
	r.GET("/compare", compare.GetComparisonHandler)
	r.GET("/compare/csv", compare.GetComparisonCSVHandler)

	return r
}
