package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Freshness window for the product list and stats caches. The caches only
// avoid redundant spreadsheet fetches; nothing depends on them for
// correctness.
const cacheTTL = 60 * time.Second

func cacheGet(c *gin.Context, rdb *redis.Client, key string) ([]byte, bool) {
	if rdb == nil {
		return nil, false
	}
	data, err := rdb.Get(c, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func cacheSet(c *gin.Context, rdb *redis.Client, key string, data []byte) {
	if rdb == nil {
		return
	}
	if err := rdb.Set(c, key, data, cacheTTL).Err(); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
}

func cacheDel(c *gin.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(c, keys...).Err(); err != nil {
		log.Printf("cache del failed: %v", err)
	}
}
