// Package takeout 周边商家搜索服务单元测试
package takeout

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumeirei/campus-life-backend/internal/common/cache"
	"github.com/dumeirei/campus-life-backend/internal/common/config"
	"github.com/dumeirei/campus-life-backend/pkg/amap"
)

// fakeSearcher 可控的高德搜索桩
type fakeSearcher struct {
	resp  *amap.AroundResponse
	err   error
	calls int

	lastReq *amap.AroundRequest
}

func (f *fakeSearcher) SearchAround(_ context.Context, req *amap.AroundRequest) (*amap.AroundResponse, error) {
	f.calls++
	f.lastReq = req
	return f.resp, f.err
}

func testAmapConfig() *config.AmapConfig {
	return &config.AmapConfig{
		Origin:   "108.833333,34.316667",
		Radius:   20000,
		PageSize: 20,
	}
}

func newTestService(searcher *fakeSearcher) *Service {
	return NewService(searcher, testAmapConfig(), &config.TakeoutConfig{DefaultKeyword: "美食"}, nil)
}

func samplePOI() amap.POI {
	return amap.POI{
		ID:       "B001",
		Name:     "肯德基(创新港店)",
		Address:  "兴港大道1号",
		Location: "108.840000,34.320000",
		Distance: "850",
		Tel:      "029-12345678",
		BizExt: &amap.BizExt{
			Rating: "4.5",
			Cost:   "35",
		},
	}
}

func TestSearchNearby(t *testing.T) {
	t.Run("正常搜索并规范化商家", func(t *testing.T) {
		searcher := &fakeSearcher{resp: &amap.AroundResponse{POIs: []amap.POI{samplePOI()}, Count: 1}}
		svc := newTestService(searcher)

		result, err := svc.SearchNearby(context.Background(), &SearchRequest{
			Keyword:  "肯德基",
			Category: CategoryAll,
			Page:     1,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
		require.Len(t, result.Shops, 1)

		shop := result.Shops[0]
		assert.Equal(t, "B001", shop.ID)
		assert.Equal(t, "肯德基(创新港店)", shop.Name)
		assert.Equal(t, "108.840000,34.320000", shop.Location)
		assert.Equal(t, "029-12345678", shop.Phone)
		assert.Equal(t, "4.5", shop.Rating)
		assert.Equal(t, "35", shop.AvgPrice)
		assert.Equal(t, "850m", shop.Distance)
		assert.Contains(t, shop.MeituanLink, "waimai.meituan.com/search?q=")
		assert.Contains(t, shop.ElemeLink, "www.ele.me/search?keyword=")
		// 商家名已做 URL 编码
		assert.NotContains(t, shop.MeituanLink, "肯德基")
	})

	t.Run("缺失字段使用占位值", func(t *testing.T) {
		poi := samplePOI()
		poi.Tel = ""
		poi.BizExt = nil
		searcher := &fakeSearcher{resp: &amap.AroundResponse{POIs: []amap.POI{poi}, Count: 1}}
		svc := newTestService(searcher)

		result, err := svc.SearchNearby(context.Background(), &SearchRequest{Category: CategoryAll, Page: 1})
		require.NoError(t, err)

		shop := result.Shops[0]
		assert.Equal(t, "未提供", shop.Phone)
		assert.Equal(t, "暂无评分", shop.Rating)
		assert.Equal(t, "暂无", shop.AvgPrice)
	})

	t.Run("距离缺失时根据坐标补算", func(t *testing.T) {
		poi := samplePOI()
		poi.Distance = ""
		searcher := &fakeSearcher{resp: &amap.AroundResponse{POIs: []amap.POI{poi}, Count: 1}}
		svc := newTestService(searcher)

		result, err := svc.SearchNearby(context.Background(), &SearchRequest{Category: CategoryAll, Page: 1})
		require.NoError(t, err)

		// 坐标距原点几百米，补算结果应是米级显示
		assert.Regexp(t, `^\d+m$`, result.Shops[0].Distance)
	})

	t.Run("上游失败时降级为空结果", func(t *testing.T) {
		searcher := &fakeSearcher{err: errors.New("timeout")}
		svc := newTestService(searcher)

		result, err := svc.SearchNearby(context.Background(), &SearchRequest{
			Keyword:  "肯德基",
			Category: CategoryAll,
			Page:     1,
		})
		require.NoError(t, err)
		assert.Empty(t, result.Shops)
		assert.Equal(t, 0, result.Total)
	})

	t.Run("非法分类返回错误", func(t *testing.T) {
		svc := newTestService(&fakeSearcher{})
		_, err := svc.SearchNearby(context.Background(), &SearchRequest{Category: "hotel", Page: 1})
		assert.Error(t, err)
	})

	t.Run("空分类回退到全部", func(t *testing.T) {
		searcher := &fakeSearcher{resp: &amap.AroundResponse{}}
		svc := newTestService(searcher)

		_, err := svc.SearchNearby(context.Background(), &SearchRequest{Keyword: "面馆", Page: 1})
		require.NoError(t, err)
		assert.Equal(t, "", searcher.lastReq.Types)
	})
}

func TestCategoryMapping(t *testing.T) {
	t.Run("分类映射到高德类型码", func(t *testing.T) {
		searcher := &fakeSearcher{resp: &amap.AroundResponse{}}
		svc := newTestService(searcher)

		tests := []struct {
			category Category
			types    string
		}{
			{CategoryAll, ""},
			{CategoryRestaurant, "050000|060000|070000"},
			{CategorySupermarket, "060100|060101|060102"},
			{CategoryFruit, "060200"},
			{CategoryPharmacy, "090600"},
		}
		for _, tt := range tests {
			_, err := svc.SearchNearby(context.Background(), &SearchRequest{
				Keyword:  "测试",
				Category: tt.category,
				Page:     1,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.types, searcher.lastReq.Types, string(tt.category))
		}
	})

	t.Run("水果药店分类有专属默认关键词", func(t *testing.T) {
		searcher := &fakeSearcher{resp: &amap.AroundResponse{}}
		svc := newTestService(searcher)

		_, err := svc.SearchNearby(context.Background(), &SearchRequest{Category: CategoryFruit, Page: 1})
		require.NoError(t, err)
		assert.Equal(t, "水果", searcher.lastReq.Keywords)

		_, err = svc.SearchNearby(context.Background(), &SearchRequest{Category: CategoryPharmacy, Page: 1})
		require.NoError(t, err)
		assert.Equal(t, "药店", searcher.lastReq.Keywords)
	})

	t.Run("其他分类使用配置默认关键词", func(t *testing.T) {
		searcher := &fakeSearcher{resp: &amap.AroundResponse{}}
		svc := newTestService(searcher)

		_, err := svc.SearchNearby(context.Background(), &SearchRequest{Category: CategoryAll, Page: 1})
		require.NoError(t, err)
		assert.Equal(t, "美食", searcher.lastReq.Keywords)
	})

	t.Run("固定搜索参数", func(t *testing.T) {
		searcher := &fakeSearcher{resp: &amap.AroundResponse{}}
		svc := newTestService(searcher)

		_, err := svc.SearchNearby(context.Background(), &SearchRequest{Keyword: "超市", Category: CategorySupermarket, Page: 2})
		require.NoError(t, err)
		assert.Equal(t, "108.833333,34.316667", searcher.lastReq.Location)
		assert.Equal(t, 20000, searcher.lastReq.Radius)
		assert.Equal(t, 20, searcher.lastReq.Offset)
		assert.Equal(t, 2, searcher.lastReq.Page)
	})
}

func TestValidCategory(t *testing.T) {
	for _, valid := range []string{"all", "restaurant", "supermarket", "fruit", "pharmacy"} {
		assert.True(t, ValidCategory(valid), valid)
	}
	for _, invalid := range []string{"", "hotel", "ALL", "food"} {
		assert.False(t, ValidCategory(invalid), invalid)
	}
}

func TestSearchNearbyCache(t *testing.T) {
	mr := miniredis.RunT(t)
	host, portStr, found := strings.Cut(mr.Addr(), ":")
	require.True(t, found)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := cache.Init(&config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	defer cache.Close()

	searcher := &fakeSearcher{resp: &amap.AroundResponse{POIs: []amap.POI{samplePOI()}, Count: 1}}
	svc := NewService(searcher, testAmapConfig(), &config.TakeoutConfig{DefaultKeyword: "美食", CacheTTL: 180}, client)

	req := &SearchRequest{Keyword: "肯德基", Category: CategoryAll, Page: 1}

	first, err := svc.SearchNearby(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, searcher.calls)

	// 第二次命中缓存，不再请求上游
	second, err := svc.SearchNearby(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, first, second)
}
