package brand

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// exportDocument는 다운로드 아티팩트의 JSON 스키마입니다.
type exportDocument struct {
	BrandName       string        `json:"brandName"`
	Tagline         string        `json:"tagline"`
	ColorPalette    exportPalette `json:"colorPalette"`
	Logo            exportLogo    `json:"logo"`
	OriginalIdea    string        `json:"originalIdea"`
	Industry        string        `json:"industry"`
	Vibe            string        `json:"vibe"`
	Reasoning       string        `json:"reasoning"`
	GeneratedWithAI bool          `json:"generatedWithAI"`
	GeneratedAt     string        `json:"generatedAt"`
}

type exportPalette struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

type exportLogo struct {
	Icon     string `json:"icon,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Style    string `json:"style"`
}

// ExportJSON은 레코드를 다운로드용 JSON 문서로 직렬화합니다.
func ExportJSON(rec *Record) ([]byte, error) {
	doc := exportDocument{
		BrandName: rec.BrandName,
		Tagline:   rec.Tagline,
		ColorPalette: exportPalette{
			Name:   rec.Palette.Name,
			Colors: rec.Palette.Colors,
		},
		OriginalIdea:    rec.Idea,
		Industry:        rec.Industry,
		Vibe:            rec.Vibe,
		Reasoning:       rec.Reasoning,
		GeneratedWithAI: rec.GeneratedWithAI,
		GeneratedAt:     rec.Timestamp.Format(time.RFC3339),
	}

	// 로고 변형별 분기 (완전 분기)
	switch rec.Logo.Kind {
	case LogoKindIcon:
		doc.Logo = exportLogo{Icon: rec.Logo.Icon, Style: rec.Logo.Gradient}
	case LogoKindImage:
		doc.Logo = exportLogo{ImageURL: rec.Logo.ImageURL, Style: "AI-generated image"}
	default:
		return nil, fmt.Errorf("알 수 없는 로고 종류: %q", rec.Logo.Kind)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// ExportText는 레코드를 사람이 읽을 수 있는 고정 템플릿 보고서로 변환합니다.
func ExportText(rec *Record) (string, error) {
	var colors strings.Builder
	for i, c := range rec.Palette.Colors {
		fmt.Fprintf(&colors, "Color %d: %s\n", i+1, c)
	}

	var logoConcept string
	switch rec.Logo.Kind {
	case LogoKindIcon:
		name := strings.ReplaceAll(strings.TrimPrefix(rec.Logo.Icon, "fas fa-"), "-", " ")
		logoConcept = fmt.Sprintf("LOGO CONCEPT: %s icon\nBackground: Gradient design", name)
	case LogoKindImage:
		logoConcept = fmt.Sprintf("LOGO CONCEPT: AI-generated image\nImage URL: %s", rec.Logo.ImageURL)
	default:
		return "", fmt.Errorf("알 수 없는 로고 종류: %q", rec.Logo.Kind)
	}

	method := "Algorithmic"
	if rec.GeneratedWithAI {
		method = "AI-Powered (OpenAI GPT)"
	}

	var reasoning string
	if rec.Reasoning != "" {
		reasoning = fmt.Sprintf("REASONING: %s\n", rec.Reasoning)
	}

	report := fmt.Sprintf(`BRAND IDENTITY PACKAGE
Generated by BrandSnap
%s

BRAND NAME: %s

TAGLINE: %s

INDUSTRY: %s
BRAND VIBE: %s

COLOR PALETTE: %s
%s
%s

GENERATION METHOD: %s
%s
ORIGINAL IDEA: %s

---
Generated with BrandSnap
`,
		rec.Timestamp.Format("2006-01-02"),
		rec.BrandName,
		rec.Tagline,
		rec.Industry,
		rec.Vibe,
		rec.Palette.Name,
		strings.TrimRight(colors.String(), "\n"),
		logoConcept,
		method,
		reasoning,
		rec.Idea,
	)

	return report, nil
}

// ExportFileName은 다운로드 파일 이름을 생성합니다 (확장자 제외).
func ExportFileName(rec *Record) string {
	name := strings.ReplaceAll(rec.BrandName, " ", "_")
	return name + "_brand_package"
}
