// Package config 配置加载测试
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Run("服务器默认值", func(t *testing.T) {
		assert.Equal(t, "campus-life-backend", cfg.Server.Name)
		assert.Equal(t, 8000, cfg.Server.Port)
	})

	t.Run("起名默认值", func(t *testing.T) {
		assert.Equal(t, 5, cfg.Naming.FreeCount)
		assert.Equal(t, 50, cfg.Naming.VIPCount)
		assert.Equal(t, 9.9, cfg.Naming.VIPPrice)
	})

	t.Run("高德默认值", func(t *testing.T) {
		assert.Equal(t, "108.833333,34.316667", cfg.Amap.Origin)
		assert.Equal(t, 20000, cfg.Amap.Radius)
		assert.Equal(t, 20, cfg.Amap.PageSize)
		assert.Equal(t, 10*time.Second, cfg.Amap.TimeoutDuration())
	})

	t.Run("大模型默认值", func(t *testing.T) {
		assert.Equal(t, 30*time.Second, cfg.LLM.TimeoutDuration())
		// 密钥不允许有默认值
		assert.Empty(t, cfg.LLM.APIKey)
		assert.Empty(t, cfg.Amap.Key)
	})

	t.Run("外卖默认值", func(t *testing.T) {
		assert.Equal(t, "美食", cfg.Takeout.DefaultKeyword)
		assert.Equal(t, 3*time.Minute, cfg.Takeout.CacheTTLDuration())
	})

	t.Run("限流默认值", func(t *testing.T) {
		assert.True(t, cfg.RateLimit.Enabled)
		assert.Equal(t, time.Minute, cfg.RateLimit.WindowDuration())
	})
}

func TestRedisAddr(t *testing.T) {
	cfg := &RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", cfg.Addr())
}

func TestModeHelpers(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Mode: "debug"}}
	assert.True(t, cfg.IsDebug())
	assert.False(t, cfg.IsRelease())

	cfg.Server.Mode = "release"
	assert.True(t, cfg.IsRelease())
}
