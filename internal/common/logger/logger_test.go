// Package logger 日志模块单元测试
package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dumeirei/campus-life-backend/internal/common/config"
)

// ==================== Init 函数测试 ====================

func TestInit_ConsoleFormat(t *testing.T) {
	cfg := &config.LoggerConfig{
		Level:  "debug",
		Format: "console",
		Output: "stdout",
		Caller: true,
	}

	err := Init(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, GetLogger())
	assert.NotNil(t, GetSugar())
}

func TestInit_JSONFormat(t *testing.T) {
	cfg := &config.LoggerConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}

	err := Init(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, GetLogger())
}

func TestInit_FileOutput(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	cfg := &config.LoggerConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
		MaxSize:  1,
		MaxAge:   1,
	}

	err := Init(cfg)
	require.NoError(t, err)

	Info("写入文件测试", String("key", "value"))
	require.NoError(t, Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	// JSON 格式每行一条日志
	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "写入文件测试", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestInit_LevelFiltering(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "filter.log")

	cfg := &config.LoggerConfig{
		Level:    "warn",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	require.NoError(t, Init(cfg))

	Debug("不应出现的调试日志")
	Info("不应出现的信息日志")
	Warn("应出现的警告日志")
	require.NoError(t, Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	content := string(data)
	assert.NotContains(t, content, "不应出现的调试日志")
	assert.NotContains(t, content, "不应出现的信息日志")
	assert.Contains(t, content, "应出现的警告日志")
}

// ==================== getLogLevel 测试 ====================

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, getLogLevel(tt.level))
		})
	}
}

// ==================== 时间编码器测试 ====================

func TestCustomTimeEncoder(t *testing.T) {
	cfg := &config.LoggerConfig{
		Level:  "info",
		Format: "json",
		Output: "file",
	}
	tmpDir := t.TempDir()
	cfg.FilePath = filepath.Join(tmpDir, "time.log")

	require.NoError(t, Init(cfg))
	Info("时间格式测试")
	require.NoError(t, Sync())

	data, err := os.ReadFile(cfg.FilePath)
	require.NoError(t, err)

	var entry map[string]interface{}
	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])
	require.NoError(t, json.Unmarshal([]byte(line), &entry))

	// 格式应为 "2006-01-02 15:04:05.000"
	timeStr, ok := entry["time"].(string)
	require.True(t, ok)
	_, err = time.Parse("2006-01-02 15:04:05.000", timeStr)
	assert.NoError(t, err)
}

// ==================== 懒初始化测试 ====================

func TestGetLogger_LazyInit(t *testing.T) {
	// 未 Init 时也应返回可用的日志器
	log = nil
	sugar = nil

	logger := GetLogger()
	require.NotNil(t, logger)

	sugared := GetSugar()
	require.NotNil(t, sugared)
}

func TestSync_WithoutInit(t *testing.T) {
	log = nil
	sugar = nil
	assert.NoError(t, Sync())
}

// ==================== 日志函数测试 ====================

func TestLogFunctions(t *testing.T) {
	cfg := &config.LoggerConfig{
		Level:  "debug",
		Format: "console",
		Output: "stdout",
	}
	require.NoError(t, Init(cfg))

	// 不会panic即为成功
	t.Run("结构化日志", func(t *testing.T) {
		Debug("debug message", String("k", "v"))
		Info("info message", Int("count", 5))
		Warn("warn message", Bool("flag", true))
		Error("error message", Err(errors.New("test error")))
	})

	t.Run("格式化日志", func(t *testing.T) {
		Infof("info %s %d", "formatted", 1)
		Warnf("warn %v", time.Second)
		Errorf("error %s", "formatted")
	})
}

func TestWith(t *testing.T) {
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "console", Output: "stdout"}))

	child := With(Module("naming"), RequestID("req-123"))
	require.NotNil(t, child)
	child.Info("带字段的日志")
}

func TestNamed(t *testing.T) {
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "console", Output: "stdout"}))

	named := Named("takeout")
	require.NotNil(t, named)
	named.Info("命名日志器")
}

// ==================== 字段构造函数测试 ====================

func TestFieldConstructors(t *testing.T) {
	t.Run("RequestID", func(t *testing.T) {
		field := RequestID("abc-123")
		assert.Equal(t, "request_id", field.Key)
		assert.Equal(t, "abc-123", field.String)
	})

	t.Run("Module", func(t *testing.T) {
		field := Module("naming")
		assert.Equal(t, "module", field.Key)
		assert.Equal(t, "naming", field.String)
	})

	t.Run("Surname", func(t *testing.T) {
		field := Surname("张")
		assert.Equal(t, "surname", field.Key)
		assert.Equal(t, "张", field.String)
	})

	t.Run("Source", func(t *testing.T) {
		field := Source("fallback")
		assert.Equal(t, "source", field.Key)
		assert.Equal(t, "fallback", field.String)
	})

	t.Run("Category", func(t *testing.T) {
		field := Category("restaurant")
		assert.Equal(t, "category", field.Key)
		assert.Equal(t, "restaurant", field.String)
	})

	t.Run("Keyword", func(t *testing.T) {
		field := Keyword("水果")
		assert.Equal(t, "keyword", field.Key)
		assert.Equal(t, "水果", field.String)
	})

	t.Run("Latency", func(t *testing.T) {
		field := Latency(150 * time.Millisecond)
		assert.Equal(t, "latency", field.Key)
		assert.Equal(t, int64(150*time.Millisecond), field.Integer)
	})

	t.Run("StatusCode", func(t *testing.T) {
		field := StatusCode(200)
		assert.Equal(t, "status_code", field.Key)
		assert.Equal(t, int64(200), field.Integer)
	})

	t.Run("IP", func(t *testing.T) {
		field := IP("192.168.1.1")
		assert.Equal(t, "ip", field.Key)
		assert.Equal(t, "192.168.1.1", field.String)
	})
}

func TestFieldAliases(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		field := String("key", "value")
		assert.Equal(t, zap.String("key", "value"), field)
	})

	t.Run("Int", func(t *testing.T) {
		field := Int("count", 42)
		assert.Equal(t, zap.Int("count", 42), field)
	})

	t.Run("Int64", func(t *testing.T) {
		field := Int64("big", 1<<40)
		assert.Equal(t, zap.Int64("big", 1<<40), field)
	})

	t.Run("Float64", func(t *testing.T) {
		field := Float64("ratio", 0.5)
		assert.Equal(t, zap.Float64("ratio", 0.5), field)
	})

	t.Run("Bool", func(t *testing.T) {
		field := Bool("enabled", true)
		assert.Equal(t, zap.Bool("enabled", true), field)
	})

	t.Run("Err", func(t *testing.T) {
		err := errors.New("boom")
		field := Err(err)
		assert.Equal(t, zap.Error(err), field)
	})

	t.Run("Duration", func(t *testing.T) {
		field := Duration("elapsed", time.Second)
		assert.Equal(t, zap.Duration("elapsed", time.Second), field)
	})
}
