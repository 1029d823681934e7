// Package takeout 提供周边商家搜索服务
package takeout

import (
	"context"
	"net/url"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/dumeirei/campus-life-backend/internal/common/cache"
	"github.com/dumeirei/campus-life-backend/internal/common/config"
	"github.com/dumeirei/campus-life-backend/internal/common/errors"
	"github.com/dumeirei/campus-life-backend/internal/common/logger"
	"github.com/dumeirei/campus-life-backend/internal/common/metrics"
	"github.com/dumeirei/campus-life-backend/internal/common/tracing"
	"github.com/dumeirei/campus-life-backend/pkg/amap"
)

// Category 商家分类
type Category string

const (
	CategoryAll         Category = "all"
	CategoryRestaurant  Category = "restaurant"
	CategorySupermarket Category = "supermarket"
	CategoryFruit       Category = "fruit"
	CategoryPharmacy    Category = "pharmacy"
)

// 缺省字段的展示值
const (
	sentinelNoPhone    = "未提供"
	sentinelNoRating   = "暂无评分"
	sentinelNoPrice    = "暂无"
	sentinelNoDistance = "未知"
)

// 外卖平台搜索链接模板
const (
	meituanSearchURL = "https://waimai.meituan.com/search?q="
	elemeSearchURL   = "https://www.ele.me/search?keyword="
)

// ValidCategory 检查分类是否合法
func ValidCategory(c string) bool {
	switch Category(c) {
	case CategoryAll, CategoryRestaurant, CategorySupermarket, CategoryFruit, CategoryPharmacy:
		return true
	}
	return false
}

// typeCodes 返回分类对应的高德 POI 类型码
func (c Category) typeCodes() string {
	switch c {
	case CategoryRestaurant:
		return "050000|060000|070000" // 餐饮服务|购物服务|生活服务
	case CategorySupermarket:
		return "060100|060101|060102" // 购物服务-超市-便利店
	case CategoryFruit:
		return "060200" // 专卖店
	case CategoryPharmacy:
		return "090600" // 医疗保健服务-药店
	default:
		return ""
	}
}

// defaultKeyword 返回分类的默认搜索词
func (c Category) defaultKeyword(fallback string) string {
	switch c {
	case CategoryFruit:
		return "水果"
	case CategoryPharmacy:
		return "药店"
	default:
		return fallback
	}
}

// SearchRequest 周边搜索请求
type SearchRequest struct {
	Keyword  string
	Category Category
	Page     int
}

// Shop 商家信息
type Shop struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Location    string `json:"location"` // "lng,lat"
	Phone       string `json:"phone"`
	Distance    string `json:"distance"`
	Rating      string `json:"rating"`
	AvgPrice    string `json:"avgPrice"`
	MeituanLink string `json:"meituanLink"`
	ElemeLink   string `json:"elemeLink"`
}

// SearchResult 周边搜索结果
type SearchResult struct {
	Shops []Shop `json:"shops"`
	Total int    `json:"total"`
}

// POISearcher 周边 POI 搜索接口
type POISearcher interface {
	SearchAround(ctx context.Context, req *amap.AroundRequest) (*amap.AroundResponse, error)
}

// Service 周边商家搜索服务
type Service struct {
	searcher POISearcher
	amapCfg  *config.AmapConfig
	cfg      *config.TakeoutConfig
	redis    *redis.Client
}

// NewService 创建周边商家搜索服务
// redisClient 可以为 nil，此时不启用缓存
func NewService(searcher POISearcher, amapCfg *config.AmapConfig, cfg *config.TakeoutConfig, redisClient *redis.Client) *Service {
	return &Service{
		searcher: searcher,
		amapCfg:  amapCfg,
		cfg:      cfg,
		redis:    redisClient,
	}
}

// SearchNearby 搜索周边商家
// 上游错误一律降级为空结果，不向调用方传递错误
func (s *Service) SearchNearby(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if req.Category == "" {
		req.Category = CategoryAll
	}
	if !ValidCategory(string(req.Category)) {
		return nil, errors.ErrInvalidCategory
	}
	if req.Page < 1 {
		req.Page = 1
	}

	keyword := req.Keyword
	if keyword == "" {
		keyword = req.Category.defaultKeyword(s.cfg.DefaultKeyword)
	}

	ctx, span := tracing.GetTracer().StartSpan(ctx, "takeout.search_nearby",
		tracing.WithCategory(string(req.Category)),
		tracing.AttrKeyword.String(keyword),
		tracing.WithOperation("search_around"),
	)
	defer span.End()

	cacheKey := cache.BuildKey(cache.KeyPrefixPOI, string(req.Category), keyword, strconv.Itoa(req.Page))
	span.SetAttributes(tracing.AttrCacheKey.String(cacheKey))
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	resp, err := s.searcher.SearchAround(ctx, &amap.AroundRequest{
		Location: s.amapCfg.Origin,
		Keywords: keyword,
		Types:    req.Category.typeCodes(),
		Radius:   s.amapCfg.Radius,
		Page:     req.Page,
		Offset:   s.amapCfg.PageSize,
	})
	if err != nil {
		logger.Warn("周边搜索失败，返回空结果",
			logger.Module("takeout"),
			logger.Category(string(req.Category)),
			logger.Keyword(keyword),
			logger.Err(err),
		)
		tracing.SetError(ctx, err)
		metrics.RecordPOISearchGlobal("degraded")
		return &SearchResult{Shops: []Shop{}, Total: 0}, nil
	}

	result := &SearchResult{
		Shops: make([]Shop, 0, len(resp.POIs)),
		Total: resp.Count,
	}
	for _, poi := range resp.POIs {
		result.Shops = append(result.Shops, s.normalizePOI(&poi))
	}

	if len(result.Shops) == 0 {
		metrics.RecordPOISearchGlobal("empty")
	} else {
		metrics.RecordPOISearchGlobal("ok")
	}

	s.toCache(ctx, cacheKey, result)

	return result, nil
}

// normalizePOI 将高德 POI 规范化为商家信息
func (s *Service) normalizePOI(poi *amap.POI) Shop {
	shop := Shop{
		ID:       poi.ID.String(),
		Name:     poi.Name.String(),
		Address:  poi.Address.String(),
		Location: poi.Location.String(),
		Phone:    poi.Tel.String(),
		Rating:   sentinelNoRating,
		AvgPrice: sentinelNoPrice,
	}

	if shop.Phone == "" {
		shop.Phone = sentinelNoPhone
	}
	if poi.BizExt != nil {
		if rating := poi.BizExt.Rating.String(); rating != "" {
			shop.Rating = rating
		}
		if cost := poi.BizExt.Cost.String(); cost != "" {
			shop.AvgPrice = cost
		}
	}

	shop.Distance = s.formatPOIDistance(poi)
	shop.MeituanLink = meituanSearchURL + url.QueryEscape(shop.Name)
	shop.ElemeLink = elemeSearchURL + url.QueryEscape(shop.Name)

	return shop
}

// formatPOIDistance 格式化商家距离
// 优先使用高德返回的距离，缺失时根据坐标用球面距离补算
func (s *Service) formatPOIDistance(poi *amap.POI) string {
	if d, err := strconv.Atoi(poi.Distance.String()); err == nil {
		return FormatDistance(d)
	}

	location := poi.Location.String()
	if location == "" {
		return sentinelNoDistance
	}
	lng, lat, err := ParseLocation(location)
	if err != nil {
		return sentinelNoDistance
	}
	baseLng, baseLat, err := ParseLocation(s.amapCfg.Origin)
	if err != nil {
		return sentinelNoDistance
	}

	return FormatDistance(Haversine(baseLng, baseLat, lng, lat))
}

// fromCache 尝试从缓存读取搜索结果
func (s *Service) fromCache(ctx context.Context, key string) *SearchResult {
	if s.redis == nil || s.cfg.CacheTTL <= 0 {
		return nil
	}

	var result SearchResult
	if err := cache.Get(ctx, key, &result); err != nil {
		if err != redis.Nil {
			logger.Warn("读取 POI 缓存失败", logger.Module("takeout"), logger.Err(err))
		}
		metrics.GetMetrics().RecordCacheMiss("poi")
		return nil
	}

	metrics.GetMetrics().RecordCacheHit("poi")
	return &result
}

// toCache 写入搜索结果缓存
func (s *Service) toCache(ctx context.Context, key string, result *SearchResult) {
	if s.redis == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	if err := cache.Set(ctx, key, result, s.cfg.CacheTTLDuration()); err != nil {
		logger.Warn("写入 POI 缓存失败", logger.Module("takeout"), logger.Err(err))
	}
}
