package cache

import (
	"time"
)

// TimeUntilNextMidnightUTC は次のUTC深夜0時までの期間を返します。
// 月次の終値は1日に1回しか変わらないため、キャッシュの有効期限として使用します。
func TimeUntilNextMidnightUTC() time.Duration {
	now := time.Now().UTC()

	// 次の深夜0時を計算
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	return next.Sub(now)
}
