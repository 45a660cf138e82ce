package config

// Redis backs the session slots, the catalog response cache and the rate
// limiter.  When it cannot be reached at startup NewRedisClient returns nil
// and callers degrade: sessions fall back to process memory, caching and
// rate limiting switch off.

import (
	"context"
	"crypto/tls"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions reads REDIS_HOST/REDIS_PORT (or REDIS_ADDR), REDIS_PASSWORD,
// REDIS_DB and REDIS_TLS.  REDIS_ADDR=off disables Redis.
func RedisOptions() (*redis.Options, bool) {
	addr := os.Getenv("REDIS_ADDR")
	if strings.EqualFold(addr, "off") {
		return nil, false
	}
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	var tlsConf *tls.Config
	if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &redis.Options{
		Addr:      addr,
		Password:  os.Getenv("REDIS_PASSWORD"),
		DB:        envInt("REDIS_DB", 0),
		TLSConfig: tlsConf,
	}, true
}

// NewRedisClient connects with RedisOptions and pings with a short timeout.
// It returns nil when Redis is disabled or unreachable.
func NewRedisClient() *redis.Client {
	opts, ok := RedisOptions()
	if !ok {
		return nil
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
