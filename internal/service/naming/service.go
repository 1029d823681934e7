// Package naming 提供 AI 起名服务
package naming

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dumeirei/campus-life-backend/internal/common/config"
	"github.com/dumeirei/campus-life-backend/internal/common/logger"
	"github.com/dumeirei/campus-life-backend/internal/common/metrics"
	"github.com/dumeirei/campus-life-backend/internal/common/tracing"
	"github.com/dumeirei/campus-life-backend/pkg/llm"
)

// 结果来源
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// 起名档位
const (
	TierFree = "free"
	TierVIP  = "vip"
)

// systemPrompt 起名大师人设
const systemPrompt = "你是一位精通中国传统文化和姓名学的起名大师，擅长根据五行八字、诗词典故为新生儿起名。"

// NamingRequest 起名请求
type NamingRequest struct {
	Surname     string `json:"surname"`     // 姓氏
	Gender      string `json:"gender"`      // male/female/neutral
	BirthDate   string `json:"birth_date"`  // 生辰八字或出生日期
	Preferences string `json:"preferences"` // 其他偏好
}

// NameResult 单个名字结果
type NameResult struct {
	Name      string `json:"name"`             // 完整姓名
	GivenName string `json:"givenName"`        // 名字（不含姓氏）
	Meaning   string `json:"meaning"`          // 寓意
	Wuxing    string `json:"wuxing"`           // 五行属性
	Poetry    string `json:"poetry,omitempty"` // 诗词出处
	Score     int    `json:"score"`            // 综合评分 (1-100)
}

// GenerateResult 起名结果
type GenerateResult struct {
	Names  []NameResult
	Source string // llm 或 fallback
}

// LLMInvoker 大模型调用接口
type LLMInvoker interface {
	ChatJSON(ctx context.Context, systemPrompt, userPrompt string, schema *llm.JSONSchema) (string, error)
}

// Service 起名服务
type Service struct {
	invoker LLMInvoker
	cfg     *config.NamingConfig
}

// NewService 创建起名服务
func NewService(invoker LLMInvoker, cfg *config.NamingConfig) *Service {
	return &Service{
		invoker: invoker,
		cfg:     cfg,
	}
}

// GenerateFree 生成名字（免费版）
func (s *Service) GenerateFree(ctx context.Context, req *NamingRequest) (*GenerateResult, error) {
	return s.generateTier(ctx, req, TierFree, s.cfg.FreeCount)
}

// GenerateVIP 生成名字（VIP 版）
func (s *Service) GenerateVIP(ctx context.Context, req *NamingRequest) (*GenerateResult, error) {
	return s.generateTier(ctx, req, TierVIP, s.cfg.VIPCount)
}

// generateTier 按档位生成名字，记录指标与追踪属性
func (s *Service) generateTier(ctx context.Context, req *NamingRequest, tier string, count int) (*GenerateResult, error) {
	ctx, span := tracing.GetTracer().StartSpan(ctx, "naming.generate",
		tracing.AttrSurname.String(req.Surname),
		tracing.WithTier(tier),
	)
	defer span.End()

	result, err := s.Generate(ctx, req, count)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(tracing.WithSource(sourceLabel(result.Source)))
	metrics.RecordNamingGlobal(tier, sourceLabel(result.Source))
	return result, nil
}

// Generate 核心起名逻辑
// 大模型调用或解析失败时一律降级到备用名字表，不向上传递错误
func (s *Service) Generate(ctx context.Context, req *NamingRequest, count int) (*GenerateResult, error) {
	names, err := s.invokeLLM(ctx, req, count)
	if err != nil {
		logger.Warn("起名大模型调用失败，使用备用名字",
			logger.Module("naming"),
			logger.Surname(req.Surname),
			logger.Err(err),
		)
		return &GenerateResult{
			Names:  fallbackNames(req.Surname, count),
			Source: SourceFallback,
		}, nil
	}

	names = s.normalize(names, req.Surname, count)

	return &GenerateResult{
		Names:  names,
		Source: SourceLLM,
	}, nil
}

// invokeLLM 调用大模型并解析结果
func (s *Service) invokeLLM(ctx context.Context, req *NamingRequest, count int) ([]NameResult, error) {
	prompt := buildPrompt(req, count)

	start := time.Now()
	content, err := s.invoker.ChatJSON(ctx, systemPrompt, prompt, nameListSchema())
	duration := time.Since(start)

	if err != nil {
		metrics.GetMetrics().RecordLLMRequest("error", duration)
		return nil, err
	}
	metrics.GetMetrics().RecordLLMRequest("ok", duration)

	var parsed struct {
		Names []NameResult `json:"names"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("解析名字列表失败: %w", err)
	}
	if len(parsed.Names) == 0 {
		return nil, fmt.Errorf("大模型未返回名字")
	}

	return parsed.Names, nil
}

// normalize 规范化大模型输出
// 补齐姓氏前缀、收敛评分区间，数量不足时从备用表补齐，超出时截断
func (s *Service) normalize(names []NameResult, surname string, count int) []NameResult {
	for i := range names {
		if !strings.HasPrefix(names[i].Name, surname) {
			names[i].Name = surname + names[i].GivenName
		}
		if names[i].Score < 1 {
			names[i].Score = 1
		}
		if names[i].Score > 100 {
			names[i].Score = 100
		}
	}

	if len(names) > count {
		return names[:count]
	}
	if len(names) < count {
		names = append(names, fallbackNames(surname, count-len(names))...)
	}
	return names
}

// buildPrompt 构建起名提示词
// 出生日期与偏好为可选项，仅在提供时追加对应要求
func buildPrompt(req *NamingRequest, count int) string {
	genderText := "中性"
	switch req.Gender {
	case "male":
		genderText = "男孩"
	case "female":
		genderText = "女孩"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "请为姓\"%s\"的%s起%d个好名字。\n\n", req.Surname, genderText, count)
	sb.WriteString("要求：\n")
	sb.WriteString("1. 名字要有美好的寓意\n")
	sb.WriteString("2. 读音优美，朗朗上口\n")
	sb.WriteString("3. 符合中国传统文化\n")
	sb.WriteString("4. 避免生僻字\n")
	if req.BirthDate != "" {
		fmt.Fprintf(&sb, "5. 出生日期：%s，请考虑五行平衡\n", req.BirthDate)
	}
	if req.Preferences != "" {
		fmt.Fprintf(&sb, "6. 其他要求：%s\n", req.Preferences)
	}
	sb.WriteString("\n请以 JSON 格式返回，每个名字包含以下字段：\n")
	sb.WriteString("- name: 完整姓名\n")
	sb.WriteString("- givenName: 名字（不含姓氏）\n")
	sb.WriteString("- meaning: 名字的寓意解释（50字以内）\n")
	sb.WriteString("- wuxing: 五行属性（如：金水、木火土等）\n")
	sb.WriteString("- poetry: 诗词出处（如果有的话，格式：诗句 - 作者《诗名》）\n")
	sb.WriteString("- score: 综合评分（1-100）\n")

	return sb.String()
}

// nameListSchema 名字列表的结构化输出约束
func nameListSchema() *llm.JSONSchema {
	return &llm.JSONSchema{
		Name:   "name_list",
		Strict: true,
		Schema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"names": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":      map[string]interface{}{"type": "string"},
							"givenName": map[string]interface{}{"type": "string"},
							"meaning":   map[string]interface{}{"type": "string"},
							"wuxing":    map[string]interface{}{"type": "string"},
							"poetry":    map[string]interface{}{"type": "string"},
							"score":     map[string]interface{}{"type": "number"},
						},
						"required":             []string{"name", "givenName", "meaning", "wuxing", "score"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"names"},
			"additionalProperties": false,
		},
	}
}

func sourceLabel(source string) string {
	if source == SourceFallback {
		return metrics.SourceFallback
	}
	return metrics.SourceLive
}
