package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/insajin/brandsnap/internal/brand"
	"github.com/insajin/brandsnap/internal/branding"
	"github.com/insajin/brandsnap/internal/session"
	"github.com/insajin/brandsnap/internal/tui"
)

var (
	generateJSON bool
	generateOut  string
)

// generateCmd는 아이디어로부터 브랜드 아이덴티티를 한 번에 생성합니다.
var generateCmd = &cobra.Command{
	Use:   "generate <idea>",
	Short: "스타트업 아이디어로부터 브랜드 아이덴티티 생성",
	Long: `아이디어 텍스트로부터 브랜드 이름, 태그라인, 5색 팔레트, 로고를 생성합니다.

API 키가 설정되어 있으면 AI 경로를, 없으면 결정적 폴백 알고리즘을 사용합니다.
--json으로 기계 판독 가능한 JSON 문서를, --out으로 내보내기 파일을 얻을 수 있습니다.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "JSON 문서로 출력")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "브랜드 패키지 파일을 저장할 디렉토리")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	idea := strings.TrimSpace(strings.Join(args, " "))
	if idea == "" {
		return fmt.Errorf("아이디어 텍스트가 비어 있습니다")
	}

	opts := []session.Option{
		session.WithImageRetries(cfg.Generation.GetLogoImageRetries()),
	}
	if client := newProviderClient(cfg, nil); client != nil {
		opts = append(opts, session.WithAIClient(client))
	}
	sess := session.New(opts...)

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
	defer cancel()

	rec, err := sess.Generate(ctx, idea)
	if err != nil {
		return fmt.Errorf("브랜드 생성 실패: %w", err)
	}

	if generateJSON {
		doc, err := brand.ExportJSON(rec)
		if err != nil {
			return fmt.Errorf("브랜드 직렬화 실패: %w", err)
		}
		fmt.Println(string(doc))
	} else {
		printBrand(rec)
	}

	if generateOut != "" {
		if err := writeBrandPackage(rec, generateOut); err != nil {
			return err
		}
	}
	return nil
}

// printBrand는 브랜드 레코드를 스타일 적용된 요약으로 출력합니다.
func printBrand(rec *brand.Record) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(branding.ColorPrimary))
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(branding.ColorLightGray)).
		Width(10)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(branding.ColorWhite))
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(branding.ColorMutedGray))

	fmt.Println()
	fmt.Println(titleStyle.Render("  " + rec.BrandName))
	fmt.Println(mutedStyle.Render("  " + rec.Tagline))
	fmt.Println()
	fmt.Println("  " + labelStyle.Render("Industry") + valueStyle.Render(rec.Industry))
	fmt.Println("  " + labelStyle.Render("Vibe") + valueStyle.Render(rec.Vibe))
	fmt.Println("  " + labelStyle.Render("Palette") + valueStyle.Render(rec.Palette.Name))

	var swatches []string
	for _, hex := range rec.Palette.Colors {
		swatches = append(swatches, tui.Swatch(hex)+" "+mutedStyle.Render(hex))
	}
	fmt.Println("  " + labelStyle.Render("") + strings.Join(swatches, "  "))

	switch rec.Logo.Kind {
	case brand.LogoKindImage:
		fmt.Println("  " + labelStyle.Render("Logo") + valueStyle.Render(rec.Logo.ImageURL))
	default:
		fmt.Println("  " + labelStyle.Render("Logo") + valueStyle.Render(rec.Logo.Icon+" ("+rec.Logo.Gradient+")"))
	}

	method := "Algorithmic"
	methodColor := branding.ColorAmber
	if rec.GeneratedWithAI {
		method = "AI-Powered"
		methodColor = branding.ColorMint
	}
	methodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(methodColor))
	fmt.Println("  " + labelStyle.Render("Method") + methodStyle.Render(method))

	if rec.Reasoning != "" {
		fmt.Println()
		fmt.Println(mutedStyle.Render("  " + rec.Reasoning))
	}
	fmt.Println()
}

// writeBrandPackage는 JSON 문서와 텍스트 보고서를 디렉토리에 저장합니다.
func writeBrandPackage(rec *brand.Record, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("출력 디렉토리 생성 실패: %w", err)
	}

	base := brand.ExportFileName(rec)

	doc, err := brand.ExportJSON(rec)
	if err != nil {
		return fmt.Errorf("브랜드 직렬화 실패: %w", err)
	}
	jsonPath := filepath.Join(dir, base+".json")
	if err := os.WriteFile(jsonPath, doc, 0o644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}

	report, err := brand.ExportText(rec)
	if err != nil {
		return fmt.Errorf("보고서 렌더링 실패: %w", err)
	}
	textPath := filepath.Join(dir, base+".txt")
	if err := os.WriteFile(textPath, []byte(report), 0o644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}

	fmt.Printf("브랜드 패키지 저장 완료: %s, %s\n", jsonPath, textPath)
	return nil
}
