package brand

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/insajin/brandsnap/internal/catalog"
)

func testRecord(logo Logo, withAI bool) *Record {
	return &Record{
		Idea:            "handmade pottery subscription box",
		BrandName:       "Potteryly",
		Tagline:         "The future is here",
		Palette:         catalog.FindPalette("Warm Sunset"),
		Logo:            logo,
		Industry:        "retail",
		Vibe:            "creative",
		Reasoning:       "Generated using algorithmic approach",
		GeneratedWithAI: withAI,
		Timestamp:       time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

// TestExportJSON_IconLogo는 아이콘 로고 레코드의 JSON 직렬화를 테스트합니다.
func TestExportJSON_IconLogo(t *testing.T) {
	rec := testRecord(NewIconLogo("fas fa-gem", "linear-gradient(135deg, #fa709a, #fee140)", "Potteryly"), false)

	data, err := ExportJSON(rec)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if doc["brandName"] != "Potteryly" {
		t.Errorf("brandName = %v, want Potteryly", doc["brandName"])
	}
	if doc["originalIdea"] != "handmade pottery subscription box" {
		t.Errorf("originalIdea = %v", doc["originalIdea"])
	}
	if doc["generatedWithAI"] != false {
		t.Errorf("generatedWithAI = %v, want false", doc["generatedWithAI"])
	}
	if doc["generatedAt"] != "2025-06-01T12:30:00Z" {
		t.Errorf("generatedAt = %v", doc["generatedAt"])
	}

	palette, ok := doc["colorPalette"].(map[string]any)
	if !ok {
		t.Fatal("colorPalette가 객체가 아님")
	}
	if palette["name"] != "Warm Sunset" {
		t.Errorf("colorPalette.name = %v", palette["name"])
	}
	colors, ok := palette["colors"].([]any)
	if !ok || len(colors) != 5 {
		t.Fatalf("colorPalette.colors = %v, want 5색 배열", palette["colors"])
	}

	logo, ok := doc["logo"].(map[string]any)
	if !ok {
		t.Fatal("logo가 객체가 아님")
	}
	if logo["icon"] != "fas fa-gem" {
		t.Errorf("logo.icon = %v", logo["icon"])
	}
	if logo["style"] != "linear-gradient(135deg, #fa709a, #fee140)" {
		t.Errorf("logo.style = %v", logo["style"])
	}
	if _, exists := logo["imageUrl"]; exists {
		t.Error("아이콘 변형에 imageUrl 필드가 존재함")
	}
}

// TestExportJSON_ImageLogo는 이미지 로고 레코드의 JSON 직렬화를 테스트합니다.
func TestExportJSON_ImageLogo(t *testing.T) {
	rec := testRecord(NewImageLogo("https://example.com/logo.png", "minimalist pottery mark", "Potteryly"), true)

	data, err := ExportJSON(rec)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	logo, ok := doc["logo"].(map[string]any)
	if !ok {
		t.Fatal("logo가 객체가 아님")
	}
	if logo["imageUrl"] != "https://example.com/logo.png" {
		t.Errorf("logo.imageUrl = %v", logo["imageUrl"])
	}
	if logo["style"] != "AI-generated image" {
		t.Errorf("logo.style = %v", logo["style"])
	}
	if _, exists := logo["icon"]; exists {
		t.Error("이미지 변형에 icon 필드가 존재함")
	}
	if doc["generatedWithAI"] != true {
		t.Errorf("generatedWithAI = %v, want true", doc["generatedWithAI"])
	}
}

// TestExportJSON_UnknownLogoKind는 알 수 없는 로고 종류에 대한 오류를
// 테스트합니다.
func TestExportJSON_UnknownLogoKind(t *testing.T) {
	rec := testRecord(Logo{Kind: "hologram"}, false)
	if _, err := ExportJSON(rec); err == nil {
		t.Fatal("알 수 없는 로고 종류인데 오류가 없음")
	}
}

// TestExportText는 텍스트 보고서 템플릿을 테스트합니다.
func TestExportText(t *testing.T) {
	rec := testRecord(NewIconLogo("fas fa-paper-plane", "linear-gradient(135deg, #667eea, #764ba2)", "Potteryly"), false)

	got, err := ExportText(rec)
	if err != nil {
		t.Fatalf("ExportText() error = %v", err)
	}

	wantContains := []string{
		"BRAND IDENTITY PACKAGE",
		"2025-06-01",
		"BRAND NAME: Potteryly",
		"TAGLINE: The future is here",
		"INDUSTRY: retail",
		"BRAND VIBE: creative",
		"COLOR PALETTE: Warm Sunset",
		"Color 1: #ff7675",
		"Color 5: #6c5ce7",
		"LOGO CONCEPT: paper plane icon",
		"GENERATION METHOD: Algorithmic",
		"REASONING: Generated using algorithmic approach",
		"ORIGINAL IDEA: handmade pottery subscription box",
	}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("보고서에 %q가 없음", want)
		}
	}
}

// TestExportText_AIImageLogo는 AI 이미지 로고 보고서를 테스트합니다.
func TestExportText_AIImageLogo(t *testing.T) {
	rec := testRecord(NewImageLogo("https://example.com/logo.png", "", "Potteryly"), true)

	got, err := ExportText(rec)
	if err != nil {
		t.Fatalf("ExportText() error = %v", err)
	}

	if !strings.Contains(got, "GENERATION METHOD: AI-Powered (OpenAI GPT)") {
		t.Error("AI 생성 방법 표기가 없음")
	}
	if !strings.Contains(got, "Image URL: https://example.com/logo.png") {
		t.Error("이미지 URL이 없음")
	}
}

// TestExportFileName은 파일 이름 생성 규칙을 테스트합니다.
func TestExportFileName(t *testing.T) {
	tests := []struct {
		brandName string
		want      string
	}{
		{brandName: "Potteryly", want: "Potteryly_brand_package"},
		{brandName: "Spark Pot", want: "Spark_Pot_brand_package"},
	}

	for _, tt := range tests {
		rec := &Record{BrandName: tt.brandName}
		if got := ExportFileName(rec); got != tt.want {
			t.Errorf("ExportFileName(%q) = %q, want %q", tt.brandName, got, tt.want)
		}
	}
}
