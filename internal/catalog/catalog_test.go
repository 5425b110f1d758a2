package catalog

import (
	"regexp"
	"testing"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TestPalettes_HaveFiveValidHexColors는 모든 팔레트가 유효한 헥스 컬러 5개를
// 갖는지 테스트합니다.
func TestPalettes_HaveFiveValidHexColors(t *testing.T) {
	if len(Palettes) != 8 {
		t.Fatalf("len(Palettes) = %d, want 8", len(Palettes))
	}

	for _, p := range Palettes {
		t.Run(p.Name, func(t *testing.T) {
			if len(p.Colors) != 5 {
				t.Fatalf("len(Colors) = %d, want 5", len(p.Colors))
			}
			for _, c := range p.Colors {
				if !hexColorPattern.MatchString(c) {
					t.Errorf("유효하지 않은 헥스 컬러: %q", c)
				}
			}
		})
	}
}

// TestPalettes_NamesAreUnique는 팔레트 이름이 중복되지 않는지 테스트합니다.
func TestPalettes_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Palettes {
		if seen[p.Name] {
			t.Errorf("중복된 팔레트 이름: %q", p.Name)
		}
		seen[p.Name] = true
	}
}

// TestFindPalette는 이름 조회와 방어적 기본값 동작을 테스트합니다.
func TestFindPalette(t *testing.T) {
	tests := []struct {
		name     string
		lookup   string
		wantName string
	}{
		{name: "존재하는 팔레트", lookup: "Cool Blues", wantName: "Cool Blues"},
		{name: "존재하지 않는 팔레트는 첫 번째 반환", lookup: "No Such Palette", wantName: "Ocean Breeze"},
		{name: "빈 이름도 첫 번째 반환", lookup: "", wantName: "Ocean Breeze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindPalette(tt.lookup)
			if got.Name != tt.wantName {
				t.Errorf("FindPalette(%q).Name = %q, want %q", tt.lookup, got.Name, tt.wantName)
			}
		})
	}
}

// TestPaletteCandidates_ResolveAgainstCatalog는 업종/바이브 맵의 모든 후보
// 이름이 실제 카탈로그에 존재하는지 테스트합니다.
func TestPaletteCandidates_ResolveAgainstCatalog(t *testing.T) {
	inCatalog := map[string]bool{}
	for _, p := range Palettes {
		inCatalog[p.Name] = true
	}

	for industry, names := range industryPalettes {
		for _, name := range names {
			if !inCatalog[name] {
				t.Errorf("업종 %q의 후보 %q가 카탈로그에 없습니다", industry, name)
			}
		}
	}
	for vibe, names := range vibePalettes {
		for _, name := range names {
			if !inCatalog[name] {
				t.Errorf("바이브 %q의 후보 %q가 카탈로그에 없습니다", vibe, name)
			}
		}
	}
	for _, name := range DefaultPaletteCandidates {
		if !inCatalog[name] {
			t.Errorf("기본 후보 %q가 카탈로그에 없습니다", name)
		}
	}
}

// TestPaletteCandidatesForIndustry는 대소문자 무시 조회를 테스트합니다.
func TestPaletteCandidatesForIndustry(t *testing.T) {
	tests := []struct {
		name     string
		industry string
		wantNil  bool
	}{
		{name: "소문자 업종", industry: "tech", wantNil: false},
		{name: "대문자 업종", industry: "TECH", wantNil: false},
		{name: "혼합 대소문자", industry: "HealthCare", wantNil: false},
		{name: "알 수 없는 업종", industry: "space mining", wantNil: true},
		{name: "빈 업종", industry: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaletteCandidatesForIndustry(tt.industry)
			if (got == nil) != tt.wantNil {
				t.Errorf("PaletteCandidatesForIndustry(%q) = %v, wantNil = %v", tt.industry, got, tt.wantNil)
			}
		})
	}
}

// TestIconsForIndustry_FallsBackToGenericList는 매핑이 없는 업종에 대해
// 범용 아이콘 목록을 반환하는지 테스트합니다.
func TestIconsForIndustry_FallsBackToGenericList(t *testing.T) {
	got := IconsForIndustry("underwater basket weaving")
	if len(got) != len(LogoIcons) {
		t.Errorf("len = %d, want %d (범용 목록)", len(got), len(LogoIcons))
	}

	tech := IconsForIndustry("Tech")
	if len(tech) != 4 {
		t.Errorf("tech 아이콘 수 = %d, want 4", len(tech))
	}
}

// TestGradientsForVibe_FallsBackToModern은 매핑이 없는 바이브에 대해
// modern 그라디언트를 반환하는지 테스트합니다.
func TestGradientsForVibe_FallsBackToModern(t *testing.T) {
	unknown := GradientsForVibe("mysterious")
	modern := GradientsForVibe("modern")
	if len(unknown) != len(modern) {
		t.Fatalf("len = %d, want %d", len(unknown), len(modern))
	}
	for i := range unknown {
		if unknown[i] != modern[i] {
			t.Errorf("gradients[%d] = %q, want %q", i, unknown[i], modern[i])
		}
	}
}

// TestFixedLists_Sizes는 고정 테이블 크기를 테스트합니다.
func TestFixedLists_Sizes(t *testing.T) {
	if len(BrandPrefixes) != 40 {
		t.Errorf("len(BrandPrefixes) = %d, want 40", len(BrandPrefixes))
	}
	if len(BrandSuffixes) != 30 {
		t.Errorf("len(BrandSuffixes) = %d, want 30", len(BrandSuffixes))
	}
	if len(Taglines) != 10 {
		t.Errorf("len(Taglines) = %d, want 10", len(Taglines))
	}
	if len(LogoIcons) != 24 {
		t.Errorf("len(LogoIcons) = %d, want 24", len(LogoIcons))
	}
}
