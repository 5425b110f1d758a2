package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/insajin/brandsnap/internal/brand"
	"github.com/insajin/brandsnap/internal/catalog"
)

// newTextResource는 텍스트 리소스 콘텐츠를 생성하는 헬퍼입니다.
func newTextResource(uri, text, mimeType string) mcp.TextResourceContents {
	return mcp.TextResourceContents{
		URI:      uri,
		MIMEType: mimeType,
		Text:     text,
	}
}

// handleBrandResource는 brandsnap://brand 리소스 핸들러입니다.
// 현재 브랜드 레코드를 반환합니다. 브랜드가 없으면 안내 응답을 반환합니다.
func (s *Server) handleBrandResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rec := s.session.Current()
	if rec == nil {
		// Graceful degradation: 브랜드가 없어도 리소스는 응답
		empty := map[string]string{
			"error": "no active brand: call generate_brand first",
		}
		data, _ := json.MarshalIndent(empty, "", "  ")
		return []mcp.ResourceContents{
			newTextResource(request.Params.URI, string(data), "application/json"),
		}, nil
	}

	data, err := brand.ExportJSON(rec)
	if err != nil {
		return nil, fmt.Errorf("브랜드 직렬화 실패: %w", err)
	}

	return []mcp.ResourceContents{
		newTextResource(request.Params.URI, string(data), "application/json"),
	}, nil
}

// handlePalettesResource는 brandsnap://palettes 리소스 핸들러입니다.
// 생성기가 사용하는 팔레트 카탈로그 전체를 반환합니다.
func (s *Server) handlePalettesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(catalog.Palettes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("팔레트 카탈로그 직렬화 실패: %w", err)
	}

	return []mcp.ResourceContents{
		newTextResource(request.Params.URI, string(data), "application/json"),
	}, nil
}

// handleMetricsResource는 brandsnap://metrics 리소스 핸들러입니다.
// 생성/상담 카운터 스냅샷을 반환합니다.
func (s *Server) handleMetricsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := s.metrics.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("메트릭 직렬화 실패: %w", err)
	}

	return []mcp.ResourceContents{
		newTextResource(request.Params.URI, string(data), "application/json"),
	}, nil
}
