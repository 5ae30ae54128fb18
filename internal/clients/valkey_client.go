package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/sentiscope/config"
	"github.com/valkey-io/valkey-go"
)

const VALKEY_SCORE_KEY_PREFIX = "sentiscope:score:"

type ValkeyClient struct {
	Client valkey.Client
}

func NewValkeyClient(cfg config.ValkeyConfig) (*ValkeyClient, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			cfg.InitAddress,
		},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if cfg.TLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return &ValkeyClient{Client: client}, nil
}

func (vc *ValkeyClient) Close() {
	if vc != nil && vc.Client != nil {
		vc.Client.Close()
	}
}

// GetScore returns the stored score for key. A missing key is not an error.
func (vc *ValkeyClient) GetScore(ctx context.Context, key string) (float64, bool, error) {
	res := vc.DoWithRetry(ctx, func() valkey.Completed {
		return vc.Client.B().Get().Key(VALKEY_SCORE_KEY_PREFIX + key).Build()
	}, 2)
	score, err := res.AsFloat64()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("[ValkeyClient] failed to read score: %w", err)
	}
	return score, true, nil
}

func (vc *ValkeyClient) SetScore(ctx context.Context, key string, score float64, ttl time.Duration) error {
	fullKey := VALKEY_SCORE_KEY_PREFIX + key
	value := strconv.FormatFloat(score, 'g', -1, 64)
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	build := func() []valkey.Completed {
		return []valkey.Completed{
			vc.Client.B().Set().Key(fullKey).Value(value).Build(),
			vc.Client.B().Expire().Key(fullKey).Seconds(seconds).Build(),
		}
	}

	for _, res := range vc.DoMultiWithRetry(ctx, build, 2) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyClient] failed to store score: %w", err)
		}
	}
	return nil
}

// DoMultiWithRetry retries connection failures. Commands are rebuilt for
// every attempt because valkey-go recycles them after execution.
func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, build func() []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		results = vc.Client.DoMulti(ctx, build()...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil && isConnectionError(r.Error()) {
				hasErr = true
				slog.Warn("[ValkeyClient] Do Multi failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				break
			}
		}
		if !hasErr {
			break
		}
		time.Sleep(time.Millisecond * 100)
	}

	return results
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func() valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, build())
		if !isConnectionError(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(100 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
