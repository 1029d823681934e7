// Package amap 提供高德地图周边搜索 API 封装
package amap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Config 高德地图配置
type Config struct {
	Key     string        `mapstructure:"key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Client 高德地图客户端
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient 创建高德地图客户端
func NewClient(config *Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://restapi.amap.com/v3"
	}
	return &Client{
		config: &Config{
			Key:     config.Key,
			BaseURL: baseURL,
			Timeout: timeout,
		},
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FlexString 兼容字符串或数组的字段类型
// 高德在 extensions=all 下对缺失的字符串字段会返回空数组 []
type FlexString string

// UnmarshalJSON 实现 string-or-array 兼容解析
func (s *FlexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) > 0 {
			*s = FlexString(arr[0])
		} else {
			*s = ""
		}
		return nil
	}

	*s = ""
	return nil
}

// String 返回字符串值
func (s FlexString) String() string {
	return string(s)
}

// POI 兴趣点
type POI struct {
	ID       FlexString `json:"id"`
	Name     FlexString `json:"name"`
	Type     FlexString `json:"type"`
	Address  FlexString `json:"address"`
	Location FlexString `json:"location"` // "lng,lat"
	Distance FlexString `json:"distance"` // 单位：米
	Tel      FlexString `json:"tel"`
	BizExt   *BizExt    `json:"biz_ext,omitempty"`
	Photos   []Photo    `json:"photos,omitempty"`
}

// BizExt 商业扩展信息
type BizExt struct {
	Rating FlexString `json:"rating"`
	Cost   FlexString `json:"cost"`
}

// Photo 图片信息
type Photo struct {
	Title FlexString `json:"title"`
	URL   FlexString `json:"url"`
}

// AroundRequest 周边搜索请求
type AroundRequest struct {
	Location string // 中心点 "lng,lat"
	Keywords string // 查询关键词
	Types    string // POI 类型码，多个用 | 分隔
	Radius   int    // 搜索半径（米）
	Page     int    // 页码，从 1 开始
	Offset   int    // 每页条数
}

// AroundResponse 周边搜索响应
type AroundResponse struct {
	POIs  []POI
	Count int
}

// aroundEnvelope 高德原始响应信封
type aroundEnvelope struct {
	Status   string `json:"status"`
	Info     string `json:"info"`
	Infocode string `json:"infocode"`
	Count    string `json:"count"`
	POIs     []POI  `json:"pois"`
}

// SearchAround 周边搜索
func (c *Client) SearchAround(ctx context.Context, req *AroundRequest) (*AroundResponse, error) {
	params := url.Values{}
	params.Set("key", c.config.Key)
	params.Set("location", req.Location)
	params.Set("radius", strconv.Itoa(req.Radius))
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("offset", strconv.Itoa(req.Offset))
	params.Set("extensions", "all")
	params.Set("sortrule", "distance")
	if req.Keywords != "" {
		params.Set("keywords", req.Keywords)
	}
	if req.Types != "" {
		params.Set("types", req.Types)
	}

	reqURL := c.config.BaseURL + "/place/around?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("请求高德失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("高德返回状态码 %d", resp.StatusCode)
	}

	var envelope aroundEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}

	if envelope.Status != "1" {
		return nil, fmt.Errorf("高德返回失败: info=%s infocode=%s", envelope.Info, envelope.Infocode)
	}

	count, _ := strconv.Atoi(envelope.Count)

	return &AroundResponse{
		POIs:  envelope.POIs,
		Count: count,
	}, nil
}
