package brand

import (
	"math/rand"
	"strings"
	"sync"
	"unicode"

	"github.com/insajin/brandsnap/internal/catalog"
)

// 폴백 경로의 고정 기본값
const (
	// FallbackIndustry는 폴백 생성 시 사용하는 업종입니다.
	FallbackIndustry = "business"
	// FallbackVibe는 폴백 생성 시 사용하는 바이브입니다.
	FallbackVibe = "modern"
	// FallbackReasoning은 폴백 생성 결과에 기록되는 설명입니다.
	FallbackReasoning = "Generated using algorithmic approach"
)

// Generator는 네트워크 의존성 없는 결정적/난수 기반 폴백 생성기입니다.
// 고정 시드의 난수 소스를 주입하면 테스트에서 재현 가능합니다.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator는 주어진 난수 소스로 폴백 생성기를 생성합니다.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Name은 아이디어 텍스트에서 브랜드 이름을 합성합니다.
// 공백으로 토큰화하여 4자 미만 토큰과 불용어를 제거한 뒤, 50% 확률로
// 접두사+키워드 또는 키워드+접미사를 조합하고, 키워드가 없거나 나머지
// 50%의 경우 접두사+접미사를 조합합니다. 첫 글자는 항상 대문자입니다.
func (g *Generator) Name(idea string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	words := strings.Fields(strings.ToLower(idea))
	var keywords []string
	for _, w := range words {
		if len(w) > 3 && !catalog.StopWords[w] {
			keywords = append(keywords, w)
		}
	}

	if len(keywords) > 0 && g.rng.Float64() > 0.5 {
		keyword := keywords[g.rng.Intn(len(keywords))]
		clean := cleanWord(keyword)
		if clean != "" {
			if g.rng.Float64() > 0.5 {
				prefix := catalog.BrandPrefixes[g.rng.Intn(len(catalog.BrandPrefixes))]
				return capitalize(prefix + clean)
			}
			suffix := catalog.BrandSuffixes[g.rng.Intn(len(catalog.BrandSuffixes))]
			return capitalize(clean + suffix)
		}
	}

	prefix := catalog.BrandPrefixes[g.rng.Intn(len(catalog.BrandPrefixes))]
	suffix := catalog.BrandSuffixes[g.rng.Intn(len(catalog.BrandSuffixes))]
	return capitalize(prefix + suffix)
}

// Tagline은 고정 태그라인 10개 중 하나를 균등 확률로 선택합니다.
// idea 파라미터는 현재 선택에 사용되지 않지만 시그니처 호환성을 위해
// 유지됩니다.
func (g *Generator) Tagline(idea string) string {
	_ = idea
	g.mu.Lock()
	defer g.mu.Unlock()
	return catalog.Taglines[g.rng.Intn(len(catalog.Taglines))]
}

// Palette는 업종과 바이브 기반으로 팔레트를 선택합니다.
// 두 맵의 후보를 합치고 순서를 유지하며 중복을 제거한 뒤 균등 확률로
// 선택합니다. 두 조회가 모두 실패하면 고정 기본 후보를 사용합니다.
func (g *Generator) Palette(industry, vibe string) catalog.Palette {
	g.mu.Lock()
	defer g.mu.Unlock()

	var candidates []string
	candidates = append(candidates, catalog.PaletteCandidatesForIndustry(industry)...)
	candidates = append(candidates, catalog.PaletteCandidatesForVibe(vibe)...)

	if len(candidates) == 0 {
		candidates = append(candidates, catalog.DefaultPaletteCandidates...)
	}

	unique := dedupe(candidates)
	chosen := unique[g.rng.Intn(len(unique))]
	return catalog.FindPalette(chosen)
}

// Logo는 업종별 아이콘과 바이브별 그라디언트를 조합한 아이콘 로고를
// 생성합니다. 표시 텍스트는 브랜드 이름입니다.
func (g *Generator) Logo(brandName, industry, vibe string) Logo {
	g.mu.Lock()
	defer g.mu.Unlock()

	icons := catalog.IconsForIndustry(industry)
	icon := icons[g.rng.Intn(len(icons))]

	gradients := catalog.GradientsForVibe(vibe)
	gradient := gradients[g.rng.Intn(len(gradients))]

	return NewIconLogo(icon, gradient, brandName)
}

// Data는 완전한 폴백 브랜드 데이터를 생성합니다.
// 업종/바이브는 고정 기본값을 사용합니다.
func (g *Generator) Data(idea string) Data {
	return Data{
		BrandName: g.Name(idea),
		Tagline:   g.Tagline(idea),
		Industry:  FallbackIndustry,
		Vibe:      FallbackVibe,
		Reasoning: FallbackReasoning,
	}
}

// cleanWord는 소문자화된 단어에서 a-z 이외의 문자를 제거합니다.
func cleanWord(w string) string {
	var b strings.Builder
	for _, r := range w {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// capitalize는 첫 글자를 대문자로 변환합니다.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// dedupe는 순서를 유지하며 중복 문자열을 제거합니다.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
