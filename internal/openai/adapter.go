package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/insajin/brandsnap/internal/brand"
)

// brandPromptTemplate은 브랜드 생성 프롬프트입니다.
const brandPromptTemplate = `You are a professional brand strategist and creative director. Generate a complete brand identity for the following startup idea:

"%s"

Please respond with a JSON object containing exactly these fields:
{
  "brandName": "A creative, memorable brand name (1-2 words, brandable)",
  "tagline": "A compelling tagline (5-8 words, captures essence)",
  "industry": "Primary industry category",
  "vibe": "Brand personality (modern/classic/playful/professional/etc)",
  "reasoning": "Brief explanation of naming choice",
  "logoDescription": "A short visual description for a logo mark"
}

Requirements:
- Brand name should be unique, memorable, and easy to pronounce
- Avoid generic names or existing company names
- Tagline should be inspiring and capture the value proposition
- Consider the target audience and market positioning
- Make it brandable and scalable

Respond only with valid JSON, no additional text.`

// 파싱 실패 시 필드별 기본값
const (
	defaultBrandName = "BrandName"
	defaultTagline   = "Your tagline here"
	defaultIndustry  = "business"
	defaultVibe      = "modern"
	defaultReasoning = "AI-generated brand identity"
)

// 필드별 정규식 폴백 (JSON 파싱이 실패한 경우)
var fieldPatterns = map[string]*regexp.Regexp{
	"brandName":       regexp.MustCompile(`(?i)"brandName":\s*"([^"]+)"`),
	"tagline":         regexp.MustCompile(`(?i)"tagline":\s*"([^"]+)"`),
	"industry":        regexp.MustCompile(`(?i)"industry":\s*"([^"]+)"`),
	"vibe":            regexp.MustCompile(`(?i)"vibe":\s*"([^"]+)"`),
	"reasoning":       regexp.MustCompile(`(?i)"reasoning":\s*"([^"]+)"`),
	"logoDescription": regexp.MustCompile(`(?i)"logoDescription":\s*"([^"]+)"`),
}

// GenerateBrandData는 아이디어로부터 브랜드 데이터를 생성합니다.
// 응답은 엄격한 JSON 파싱을 먼저 시도하고, 실패하면 필드별 정규식으로
// 복구합니다. 복구 후에도 모든 필드가 비어 있으면 ErrMalformedResponse를
// 반환합니다.
func (c *Client) GenerateBrandData(ctx context.Context, idea string) (*brand.Data, error) {
	prompt := fmt.Sprintf(brandPromptTemplate, idea)

	content, err := c.ChatCompletion(ctx, []ChatMessage{
		{Role: "user", Content: prompt},
	}, 0.8, 300)
	if err != nil {
		return nil, err
	}

	data, recovered := parseBrandContent(content)
	if !recovered {
		return nil, fmt.Errorf("%w: 브랜드 필드를 찾을 수 없습니다", ErrMalformedResponse)
	}

	applyBrandDefaults(data)
	return data, nil
}

// parseBrandContent는 응답 본문에서 브랜드 데이터를 추출합니다.
// 두 번째 반환값은 최소 한 개의 필드를 복구했는지 여부입니다.
func parseBrandContent(content string) (*brand.Data, bool) {
	trimmed := stripCodeFence(strings.TrimSpace(content))

	// 엄격한 JSON 파싱 시도
	var data brand.Data
	if err := json.Unmarshal([]byte(trimmed), &data); err == nil {
		return &data, data.BrandName != "" || data.Tagline != "" ||
			data.Industry != "" || data.Vibe != ""
	}

	// 본문에 포함된 JSON 오브젝트 추출 시도
	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &data); err == nil {
			if data.BrandName != "" || data.Tagline != "" || data.Industry != "" || data.Vibe != "" {
				return &data, true
			}
		}
	}

	// 필드별 정규식 폴백
	extracted := &brand.Data{
		BrandName:       extractField(trimmed, "brandName"),
		Tagline:         extractField(trimmed, "tagline"),
		Industry:        extractField(trimmed, "industry"),
		Vibe:            extractField(trimmed, "vibe"),
		Reasoning:       extractField(trimmed, "reasoning"),
		LogoDescription: extractField(trimmed, "logoDescription"),
	}
	recovered := extracted.BrandName != "" || extracted.Tagline != "" ||
		extracted.Industry != "" || extracted.Vibe != ""
	return extracted, recovered
}

// applyBrandDefaults는 비어 있는 필드를 고정 기본값으로 채웁니다.
func applyBrandDefaults(data *brand.Data) {
	if data.BrandName == "" {
		data.BrandName = defaultBrandName
	}
	if data.Tagline == "" {
		data.Tagline = defaultTagline
	}
	if data.Industry == "" {
		data.Industry = defaultIndustry
	}
	if data.Vibe == "" {
		data.Vibe = defaultVibe
	}
	if data.Reasoning == "" {
		data.Reasoning = defaultReasoning
	}
}

// extractField는 정규식으로 단일 필드 값을 추출합니다.
func extractField(content, field string) string {
	pattern, ok := fieldPatterns[field]
	if !ok {
		return ""
	}
	match := pattern.FindStringSubmatch(content)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// stripCodeFence는 마크다운 코드 펜스를 제거합니다.
func stripCodeFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// logoPrompts는 로고 이미지 생성 프롬프트 생성기 목록입니다.
// 첫 시도가 거부되면 점진적으로 일반화된, 브랜드 이름이 빠진 프롬프트를
// 사용합니다.
var logoPrompts = []func(brandName, description string) string{
	func(brandName, description string) string {
		return fmt.Sprintf("A minimalist vector logo for a brand called %q: %s. Flat design, clean lines, centered on a plain background, no text.", brandName, description)
	},
	func(_, description string) string {
		return fmt.Sprintf("A minimalist abstract vector logo mark: %s. Flat design, clean geometric shapes, plain background, no text.", description)
	},
	func(_, _ string) string {
		return "A simple abstract geometric logo mark. Flat minimalist vector design, two colors, plain background, no text."
	},
}

// GenerateLogoImage는 로고 이미지를 생성하고 이미지 URI를 반환합니다.
// 콘텐츠 정책 거부에 한해 최대 extraRetries회까지 점진적으로 일반화된
// 프롬프트로 재시도합니다. 그 밖의 실패는 재시도 없이 중단됩니다.
// 실패 시 빈 문자열과 nil을 반환합니다 (최선 노력).
func (c *Client) GenerateLogoImage(ctx context.Context, brandName, description string, extraRetries int) (string, error) {
	if description == "" {
		description = "a modern abstract symbol"
	}
	if extraRetries < 0 {
		extraRetries = 0
	}

	attempts := extraRetries + 1
	if attempts > len(logoPrompts) {
		attempts = len(logoPrompts)
	}

	for i := 0; i < attempts; i++ {
		// 취소된 컨텍스트는 즉시 중단
		if ctx.Err() != nil {
			return "", nil
		}

		prompt := logoPrompts[i](brandName, description)
		url, err := c.GenerateImage(ctx, prompt, "1024x1024")
		if err == nil {
			return url, nil
		}

		// 일반화 재시도는 콘텐츠 정책 거부에만 적용되며, 그 밖의 실패는 한
		// 번만 표면화하고 즉시 중단
		pe, ok := AsProviderError(err)
		if !ok || !pe.IsContentPolicy() {
			log.Debug().Err(err).Int("attempt", i+1).Msg("로고 이미지 생성 실패")
			return "", nil
		}

		if i+1 < attempts {
			if c.metrics != nil {
				c.metrics.ImageRetries.Add(1)
			}
			log.Debug().Err(err).Int("attempt", i+1).Msg("콘텐츠 정책 거부, 일반화된 프롬프트로 재시도")
		}
	}

	// 이미지 로고는 최선 노력: 실패해도 아이콘 로고로 대체 가능
	return "", nil
}

// TestCredential은 최소한의 채팅 요청으로 자격 증명을 검증합니다.
func (c *Client) TestCredential(ctx context.Context) error {
	_, err := c.ChatCompletion(ctx, []ChatMessage{
		{Role: "user", Content: "Say 'API test successful' if you can read this."},
	}, 0, 20)
	return err
}
