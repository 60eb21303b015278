package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_compare/internal/app/di"
	"stock_compare/internal/app/router"
	comparehandler "stock_compare/internal/feature/compare/transport/handler"
	compareusecase "stock_compare/internal/feature/compare/usecase"
	symbollistadapters "stock_compare/internal/feature/symbollist/adapters"
	symbollisthandler "stock_compare/internal/feature/symbollist/transport/handler"
	symbollistusecase "stock_compare/internal/feature/symbollist/usecase"
	"stock_compare/internal/platform/cache"
	"stock_compare/internal/platform/db"
	platformredis "stock_compare/internal/platform/redis"
	"stock_compare/internal/shared/ratelimiter"
)

func main() {
	// ローカル開発用の .env（無ければ環境変数のみで動作）
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found. Using environment variables.")
	}

	// db
	gormDB := db.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	symbolRepo := symbollistadapters.NewSymbolRepository(gormDB)
	market := di.NewMarket()

	// 取得した生の価格系列だけをRedisでキャッシュする
	// （正規化やCAGRなどの派生値はリクエストごとに再計算する）
	ttl := cache.TimeUntilNextMidnightUTC()
	cachedMarket := cache.NewCachingMarketRepository(rdb, ttl, market, "prices")

	// Yahoo Finance への問い合わせを毎分60回までに抑える
	limiter := ratelimiter.NewRateLimiter(60, time.Minute)

	// Usecase
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)
	compareUC := compareusecase.NewCompareUsecase(cachedMarket, limiter)

	// Handler
	symbolH := symbollisthandler.NewSymbolHandler(symbolUC)
	compareH := comparehandler.NewCompareHandler(compareUC)

	// ルータ生成
	r := router.NewRouter(compareH, symbolH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
