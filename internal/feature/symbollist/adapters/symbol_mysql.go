// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"stock_compare/internal/feature/symbollist/domain/entity"
	"stock_compare/internal/feature/symbollist/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultSymbols は比較ダッシュボードのプルダウンに表示する初期銘柄です。
var defaultSymbols = []entity.Symbol{
	{Code: "RELIANCE.NS", Name: "Reliance Industries", Market: "NSE", IsActive: true, SortKey: 1},
	{Code: "TCS.NS", Name: "Tata Consultancy Services", Market: "NSE", IsActive: true, SortKey: 2},
	{Code: "INFY.NS", Name: "Infosys", Market: "NSE", IsActive: true, SortKey: 3},
	{Code: "HDFCBANK.NS", Name: "HDFC Bank", Market: "NSE", IsActive: true, SortKey: 4},
	{Code: "ICICIBANK.NS", Name: "ICICI Bank", Market: "NSE", IsActive: true, SortKey: 5},
	{Code: "SBIN.NS", Name: "State Bank of India", Market: "NSE", IsActive: true, SortKey: 6},
	{Code: "ITC.NS", Name: "ITC", Market: "NSE", IsActive: true, SortKey: 7},
	{Code: "LT.NS", Name: "Larsen & Toubro", Market: "NSE", IsActive: true, SortKey: 8},
}

// symbolMySQL はSymbolRepositoryインターフェースのgorm実装です。
type symbolMySQL struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolMySQL)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolMySQLリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolMySQL {
	return &symbolMySQL{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolMySQL) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// SeedDefaults は初期銘柄カタログを投入します。コードをキーに既存行は
// そのまま残すため、起動のたびに実行しても安全です。
func SeedDefaults(db *gorm.DB) error {
	symbols := make([]entity.Symbol, len(defaultSymbols))
	copy(symbols, defaultSymbols)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&symbols).Error
}
