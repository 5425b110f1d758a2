// Package catalog는 브랜드 생성에 사용되는 고정 자산 테이블을 제공합니다.
// 팔레트, 접두사/접미사, 태그라인, 아이콘, 그라디언트 등 모든 테이블은
// 로드 후 변경되지 않습니다.
package catalog

import "strings"

// Palette는 이름이 붙은 5색 팔레트입니다.
type Palette struct {
	// Name은 카탈로그 내에서 유일한 팔레트 이름입니다.
	Name string `json:"name"`
	// Colors는 5개의 헥스 컬러 문자열입니다 (순서 유지).
	Colors []string `json:"colors"`
}

// Palettes는 고정된 8개 팔레트 카탈로그입니다.
var Palettes = []Palette{
	{Name: "Ocean Breeze", Colors: []string{"#0077be", "#00a8cc", "#7dd3c0", "#ffd23f", "#ff6b35"}},
	{Name: "Sunset Vibes", Colors: []string{"#ff6b6b", "#ffd93d", "#6bcf7f", "#4d96ff", "#9b59b6"}},
	{Name: "Forest Fresh", Colors: []string{"#27ae60", "#2ecc71", "#f39c12", "#e67e22", "#34495e"}},
	{Name: "Tech Modern", Colors: []string{"#667eea", "#764ba2", "#f093fb", "#f5576c", "#4facfe"}},
	{Name: "Minimal Clean", Colors: []string{"#2c3e50", "#34495e", "#95a5a6", "#ecf0f1", "#3498db"}},
	{Name: "Vibrant Energy", Colors: []string{"#e74c3c", "#f39c12", "#f1c40f", "#2ecc71", "#9b59b6"}},
	{Name: "Cool Blues", Colors: []string{"#3498db", "#2980b9", "#1abc9c", "#16a085", "#34495e"}},
	{Name: "Warm Sunset", Colors: []string{"#ff7675", "#fd79a8", "#fdcb6e", "#e17055", "#6c5ce7"}},
}

// FindPalette는 이름으로 팔레트를 조회합니다.
// 이름이 카탈로그에 없으면 첫 번째 팔레트를 반환합니다 (방어적 기본값).
func FindPalette(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return Palettes[0]
}

// BrandPrefixes는 폴백 이름 생성용 접두사 목록입니다.
var BrandPrefixes = []string{
	"Spark", "Nova", "Zen", "Flux", "Echo", "Pulse", "Vibe", "Flow", "Sync", "Leap",
	"Swift", "Bright", "Smart", "Quick", "Pure", "Bold", "Fresh", "Clear", "Sharp", "Wise",
	"True", "Prime", "Core", "Edge", "Peak", "Max", "Pro", "Ultra", "Meta", "Hyper",
	"Micro", "Nano", "Mega", "Super", "Turbo", "Rapid", "Instant", "Direct", "Simple", "Easy",
}

// BrandSuffixes는 폴백 이름 생성용 접미사 목록입니다.
var BrandSuffixes = []string{
	"ly", "fy", "io", "co", "ai", "lab", "hub", "box", "kit", "app",
	"tech", "soft", "ware", "sys", "net", "web", "link", "sync", "flow", "wave",
	"space", "cloud", "data", "mind", "core", "base", "zone", "spot", "dock", "port",
}

// Taglines는 폴백 태그라인 10개 목록입니다.
var Taglines = []string{
	"Revolutionizing business for everyone",
	"The future is here",
	"Simplifying life, one step at a time",
	"Where innovation meets excellence",
	"Empowering your journey",
	"Making the impossible possible",
	"Your trusted companion",
	"Transforming how you think",
	"Innovation that drives progress",
	"The smart way to succeed",
}

// LogoIcons는 업종 매핑이 없을 때 사용하는 범용 아이콘 목록입니다.
// 아이콘 식별자는 웹 UI의 심볼 ID와 일치합니다.
var LogoIcons = []string{
	"fas fa-rocket", "fas fa-lightbulb", "fas fa-star", "fas fa-bolt", "fas fa-gem",
	"fas fa-crown", "fas fa-fire", "fas fa-leaf", "fas fa-heart", "fas fa-shield-alt",
	"fas fa-cog", "fas fa-cube", "fas fa-diamond", "fas fa-feather", "fas fa-globe",
	"fas fa-magic", "fas fa-mountain", "fas fa-paper-plane", "fas fa-puzzle-piece",
	"fas fa-seedling", "fas fa-sun", "fas fa-tree", "fas fa-trophy", "fas fa-umbrella",
}

// StopWords는 폴백 이름 생성 시 제외되는 영어 불용어 집합입니다.
var StopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "they": true, "have": true, "will": true,
}

// industryPalettes는 업종별 팔레트 후보 이름 맵입니다 (소문자 키).
var industryPalettes = map[string][]string{
	"tech":          {"Tech Modern", "Cool Blues", "Minimal Clean"},
	"technology":    {"Tech Modern", "Cool Blues", "Minimal Clean"},
	"health":        {"Forest Fresh", "Ocean Breeze", "Minimal Clean"},
	"healthcare":    {"Forest Fresh", "Ocean Breeze", "Minimal Clean"},
	"finance":       {"Minimal Clean", "Cool Blues", "Tech Modern"},
	"financial":     {"Minimal Clean", "Cool Blues", "Tech Modern"},
	"food":          {"Warm Sunset", "Forest Fresh", "Vibrant Energy"},
	"education":     {"Ocean Breeze", "Forest Fresh", "Cool Blues"},
	"travel":        {"Sunset Vibes", "Ocean Breeze", "Warm Sunset"},
	"social":        {"Vibrant Energy", "Sunset Vibes", "Warm Sunset"},
	"business":      {"Minimal Clean", "Tech Modern", "Cool Blues"},
	"entertainment": {"Vibrant Energy", "Sunset Vibes", "Warm Sunset"},
	"retail":        {"Warm Sunset", "Vibrant Energy", "Sunset Vibes"},
}

// vibePalettes는 바이브별 팔레트 후보 이름 맵입니다 (소문자 키).
var vibePalettes = map[string][]string{
	"modern":       {"Tech Modern", "Minimal Clean", "Cool Blues"},
	"playful":      {"Sunset Vibes", "Vibrant Energy", "Warm Sunset"},
	"professional": {"Minimal Clean", "Cool Blues", "Tech Modern"},
	"creative":     {"Vibrant Energy", "Sunset Vibes", "Warm Sunset"},
	"natural":      {"Forest Fresh", "Ocean Breeze", "Warm Sunset"},
	"classic":      {"Minimal Clean", "Cool Blues", "Forest Fresh"},
	"innovative":   {"Tech Modern", "Vibrant Energy", "Cool Blues"},
}

// DefaultPaletteCandidates는 업종/바이브 매핑이 모두 없을 때의 기본 후보입니다.
var DefaultPaletteCandidates = []string{"Tech Modern", "Minimal Clean", "Ocean Breeze"}

// industryIcons는 업종별 아이콘 후보 맵입니다 (소문자 키).
var industryIcons = map[string][]string{
	"tech":          {"fas fa-rocket", "fas fa-bolt", "fas fa-cog", "fas fa-cube"},
	"technology":    {"fas fa-rocket", "fas fa-bolt", "fas fa-cog", "fas fa-cube"},
	"health":        {"fas fa-heart", "fas fa-leaf", "fas fa-shield-alt", "fas fa-seedling"},
	"healthcare":    {"fas fa-heart", "fas fa-leaf", "fas fa-shield-alt", "fas fa-seedling"},
	"finance":       {"fas fa-gem", "fas fa-shield-alt", "fas fa-crown", "fas fa-trophy"},
	"financial":     {"fas fa-gem", "fas fa-shield-alt", "fas fa-crown", "fas fa-trophy"},
	"food":          {"fas fa-leaf", "fas fa-heart", "fas fa-sun", "fas fa-fire"},
	"education":     {"fas fa-lightbulb", "fas fa-star", "fas fa-tree", "fas fa-globe"},
	"travel":        {"fas fa-paper-plane", "fas fa-globe", "fas fa-mountain", "fas fa-umbrella"},
	"social":        {"fas fa-heart", "fas fa-star", "fas fa-globe", "fas fa-puzzle-piece"},
	"business":      {"fas fa-rocket", "fas fa-crown", "fas fa-trophy", "fas fa-bolt"},
	"entertainment": {"fas fa-star", "fas fa-fire", "fas fa-magic", "fas fa-trophy"},
	"retail":        {"fas fa-gem", "fas fa-crown", "fas fa-star", "fas fa-heart"},
}

// vibeGradients는 바이브별 CSS 그라디언트 후보 맵입니다 (소문자 키).
var vibeGradients = map[string][]string{
	"modern": {
		"linear-gradient(135deg, #667eea, #764ba2)",
		"linear-gradient(135deg, #4facfe, #00f2fe)",
		"linear-gradient(135deg, #43e97b, #38f9d7)",
	},
	"playful": {
		"linear-gradient(135deg, #f093fb, #f5576c)",
		"linear-gradient(135deg, #fa709a, #fee140)",
		"linear-gradient(135deg, #ff9a9e, #fecfef)",
	},
	"professional": {
		"linear-gradient(135deg, #667eea, #764ba2)",
		"linear-gradient(135deg, #2c3e50, #34495e)",
		"linear-gradient(135deg, #4facfe, #00f2fe)",
	},
	"creative": {
		"linear-gradient(135deg, #f093fb, #f5576c)",
		"linear-gradient(135deg, #fa709a, #fee140)",
		"linear-gradient(135deg, #a8edea, #fed6e3)",
	},
	"classic": {
		"linear-gradient(135deg, #2c3e50, #34495e)",
		"linear-gradient(135deg, #667eea, #764ba2)",
		"linear-gradient(135deg, #27ae60, #2ecc71)",
	},
	"innovative": {
		"linear-gradient(135deg, #667eea, #764ba2)",
		"linear-gradient(135deg, #f093fb, #f5576c)",
		"linear-gradient(135deg, #43e97b, #38f9d7)",
	},
}

// PaletteCandidatesForIndustry는 업종에 매핑된 팔레트 후보 이름을 반환합니다.
// 매핑이 없으면 nil을 반환합니다. 대소문자를 구분하지 않습니다.
func PaletteCandidatesForIndustry(industry string) []string {
	return industryPalettes[strings.ToLower(industry)]
}

// PaletteCandidatesForVibe는 바이브에 매핑된 팔레트 후보 이름을 반환합니다.
// 매핑이 없으면 nil을 반환합니다. 대소문자를 구분하지 않습니다.
func PaletteCandidatesForVibe(vibe string) []string {
	return vibePalettes[strings.ToLower(vibe)]
}

// IconsForIndustry는 업종별 아이콘 후보를 반환합니다.
// 매핑이 없으면 범용 아이콘 목록을 반환합니다.
func IconsForIndustry(industry string) []string {
	if icons, ok := industryIcons[strings.ToLower(industry)]; ok {
		return icons
	}
	return LogoIcons
}

// GradientsForVibe는 바이브별 그라디언트 후보를 반환합니다.
// 매핑이 없으면 "modern" 그라디언트를 반환합니다.
func GradientsForVibe(vibe string) []string {
	if gradients, ok := vibeGradients[strings.ToLower(vibe)]; ok {
		return gradients
	}
	return vibeGradients["modern"]
}
