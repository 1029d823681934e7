// Package qrcode 二维码生成测试
package qrcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator(t *testing.T) {
	g := NewGenerator(WithSize(128), WithRecoveryLevel(High))

	t.Run("生成PNG", func(t *testing.T) {
		data, err := g.GeneratePNG("https://qr.alipay.com/test")
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		// PNG 魔数
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
	})

	t.Run("生成DataURL", func(t *testing.T) {
		dataURL, err := g.GenerateDataURL("https://qr.alipay.com/test")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
	})

	t.Run("空内容返回错误", func(t *testing.T) {
		_, err := g.GeneratePNG("")
		assert.Error(t, err)
	})
}

func TestGeneratorDefaults(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, 256, g.size)
	assert.Equal(t, Medium, g.recoveryLevel)
}
