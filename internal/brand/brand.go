// Package brand는 브랜드 아이덴티티 도메인 모델과 폴백 생성기를 제공합니다.
package brand

import (
	"time"

	"github.com/insajin/brandsnap/internal/catalog"
)

// LogoKind는 로고 변형 태그입니다.
type LogoKind string

const (
	// LogoKindIcon은 아이콘 + 그라디언트 로고입니다.
	LogoKindIcon LogoKind = "icon"
	// LogoKindImage는 AI가 생성한 이미지 로고입니다.
	LogoKindImage LogoKind = "image"
)

// Logo는 태그된 로고 변형입니다. Kind에 따라 아이콘 필드 또는 이미지 필드 중
// 한쪽만 유효합니다. 소비 지점(렌더링, 내보내기)은 Kind를 완전 분기해야 합니다.
type Logo struct {
	// Kind는 활성 변형을 나타냅니다 (icon 또는 image).
	Kind LogoKind `json:"kind"`

	// Icon은 심볼 ID입니다 (Kind == icon).
	Icon string `json:"icon,omitempty"`
	// Gradient는 CSS 그라디언트 문자열입니다 (Kind == icon).
	Gradient string `json:"gradient,omitempty"`

	// ImageURL은 생성된 로고 이미지 URI입니다 (Kind == image).
	ImageURL string `json:"image_url,omitempty"`
	// Description은 이미지 생성에 사용된 로고 설명입니다 (Kind == image).
	Description string `json:"description,omitempty"`

	// Text는 로고에 표시되는 브랜드 이름입니다.
	Text string `json:"text"`
}

// NewIconLogo는 아이콘 변형 로고를 생성합니다.
func NewIconLogo(icon, gradient, text string) Logo {
	return Logo{Kind: LogoKindIcon, Icon: icon, Gradient: gradient, Text: text}
}

// NewImageLogo는 이미지 변형 로고를 생성합니다.
func NewImageLogo(imageURL, description, text string) Logo {
	return Logo{Kind: LogoKindImage, ImageURL: imageURL, Description: description, Text: text}
}

// Data는 AI 또는 폴백 경로가 산출하는 정규화된 브랜드 데이터입니다.
// 유효한 Data의 모든 필드는 비어 있지 않은 문자열입니다 (LogoDescription 제외).
type Data struct {
	BrandName string `json:"brandName"`
	Tagline   string `json:"tagline"`
	Industry  string `json:"industry"`
	Vibe      string `json:"vibe"`
	Reasoning string `json:"reasoning"`
	// LogoDescription은 이미지 로고 생성용 설명입니다 (선택적).
	LogoDescription string `json:"logoDescription,omitempty"`
}

// Record는 한 번의 생성 사이클의 집계 결과입니다.
type Record struct {
	// Idea는 사용자가 입력한 원본 아이디어 텍스트입니다 (불변).
	Idea string `json:"idea"`

	BrandName string          `json:"brand_name"`
	Tagline   string          `json:"tagline"`
	Palette   catalog.Palette `json:"color_palette"`
	Logo      Logo            `json:"logo"`
	Industry  string          `json:"industry"`
	Vibe      string          `json:"vibe"`
	Reasoning string          `json:"reasoning"`

	// GeneratedWithAI는 현재 필드가 AI 경로에서 생성되었는지 여부입니다.
	// AI 경로가 실행되고 구조적으로 유효한 응답을 반환한 경우에만 true입니다.
	GeneratedWithAI bool `json:"generated_with_ai"`

	Timestamp time.Time `json:"timestamp"`
}

// Component는 부분 재생성 대상 컴포넌트 종류입니다.
type Component string

const (
	// ComponentName은 브랜드 이름 재생성입니다 (로고 텍스트도 함께 갱신됨).
	ComponentName Component = "name"
	// ComponentTagline은 태그라인 재생성입니다.
	ComponentTagline Component = "tagline"
	// ComponentColors는 팔레트 재계산입니다 (네트워크 호출 없음).
	ComponentColors Component = "colors"
	// ComponentLogo는 로고 재계산입니다.
	ComponentLogo Component = "logo"
)

// Valid는 알려진 컴포넌트 종류인지 확인합니다.
func (c Component) Valid() bool {
	switch c {
	case ComponentName, ComponentTagline, ComponentColors, ComponentLogo:
		return true
	default:
		return false
	}
}
