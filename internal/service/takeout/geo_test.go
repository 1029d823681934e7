// Package takeout 地理工具函数单元测试
package takeout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name   string
		meters int
		want   string
	}{
		{"850米", 850, "850m"},
		{"999米", 999, "999m"},
		{"刚好1公里", 1000, "1.0km"},
		{"1500米", 1500, "1.5km"},
		{"零米", 0, "0m"},
		{"20公里", 20000, "20.0km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDistance(tt.meters))
		})
	}
}

func TestParseLocation(t *testing.T) {
	t.Run("正常坐标", func(t *testing.T) {
		lng, lat, err := ParseLocation("108.833333,34.316667")
		require.NoError(t, err)
		assert.InDelta(t, 108.833333, lng, 1e-9)
		assert.InDelta(t, 34.316667, lat, 1e-9)
	})

	t.Run("带空格", func(t *testing.T) {
		lng, lat, err := ParseLocation("108.8, 34.3")
		require.NoError(t, err)
		assert.InDelta(t, 108.8, lng, 1e-9)
		assert.InDelta(t, 34.3, lat, 1e-9)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, _, err := ParseLocation("108.8")
		assert.Error(t, err)

		_, _, err = ParseLocation("abc,def")
		assert.Error(t, err)
	})
}

func TestHaversine(t *testing.T) {
	t.Run("同一点距离为零", func(t *testing.T) {
		assert.Equal(t, 0, Haversine(108.8, 34.3, 108.8, 34.3))
	})

	t.Run("已知两点距离量级正确", func(t *testing.T) {
		// 创新港到西安钟楼约 23 公里
		d := Haversine(108.833333, 34.316667, 108.946466, 34.260494)
		assert.Greater(t, d, 10000)
		assert.Less(t, d, 20000)
	})

	t.Run("距离对称", func(t *testing.T) {
		d1 := Haversine(108.8, 34.3, 108.9, 34.4)
		d2 := Haversine(108.9, 34.4, 108.8, 34.3)
		assert.Equal(t, d1, d2)
	})
}
