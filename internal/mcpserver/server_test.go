package mcpserver

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/insajin/brandsnap/internal/consultant"
	"github.com/insajin/brandsnap/internal/metrics"
	"github.com/insajin/brandsnap/internal/session"
)

// newTestServer는 폴백 경로만 사용하는 MCP 서버를 생성합니다.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	m := metrics.NewMetrics()
	sess := session.New(
		session.WithMetrics(m),
		session.WithRandSource(rand.NewSource(42)),
	)
	cons := consultant.New(consultant.WithMetrics(m))
	return NewServer(sess, cons, m, zerolog.Nop())
}

// toolRequest는 도구 호출 요청을 구성하는 헬퍼입니다.
func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultText는 도구 결과의 첫 텍스트 콘텐츠를 반환합니다.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("결과 콘텐츠가 비어 있습니다")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("텍스트 콘텐츠가 아닙니다: %T", result.Content[0])
	}
	return tc.Text
}

// TestNewServer는 MCP 서버 초기화를 테스트합니다.
func TestNewServer(t *testing.T) {
	srv := newTestServer(t)

	if srv == nil {
		t.Fatal("서버가 nil입니다")
	}
	if srv.mcpServer == nil {
		t.Fatal("mcpServer가 nil입니다")
	}
	if srv.session == nil {
		t.Fatal("session이 nil입니다")
	}
}

// TestToolHandler_GenerateBrand는 브랜드 생성 도구를 테스트합니다.
func TestToolHandler_GenerateBrand(t *testing.T) {
	t.Run("idea 누락 시 에러 응답", func(t *testing.T) {
		srv := newTestServer(t)

		result, err := srv.handleGenerateBrand(context.Background(),
			toolRequest("generate_brand", map[string]interface{}{}))
		if err != nil {
			t.Fatalf("핸들러가 에러를 반환하면 안됩니다: %v", err)
		}
		if !result.IsError {
			t.Error("필수 파라미터 누락 시 에러 응답이어야 합니다")
		}
	})

	t.Run("폴백 경로로 생성", func(t *testing.T) {
		srv := newTestServer(t)

		result, err := srv.handleGenerateBrand(context.Background(),
			toolRequest("generate_brand", map[string]interface{}{
				"idea": "a handmade pottery subscription box",
			}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if result.IsError {
			t.Fatalf("성공 응답이어야 합니다: %s", resultText(t, result))
		}

		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(resultText(t, result)), &doc); err != nil {
			t.Fatalf("응답 파싱 실패: %v", err)
		}
		if doc["brandName"] == "" || doc["brandName"] == nil {
			t.Error("brandName이 비어 있습니다")
		}
		if doc["generatedWithAI"] != false {
			t.Errorf("generatedWithAI = %v, want false", doc["generatedWithAI"])
		}
	})
}

// TestToolHandler_RegenerateComponent는 컴포넌트 재생성 도구를 테스트합니다.
func TestToolHandler_RegenerateComponent(t *testing.T) {
	t.Run("활성 브랜드 없으면 에러 응답", func(t *testing.T) {
		srv := newTestServer(t)

		result, err := srv.handleRegenerateComponent(context.Background(),
			toolRequest("regenerate_component", map[string]interface{}{
				"component": "name",
			}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if !result.IsError {
			t.Error("활성 브랜드 없이 에러 응답이어야 합니다")
		}
	})

	t.Run("알 수 없는 컴포넌트면 에러 응답", func(t *testing.T) {
		srv := newTestServer(t)

		result, err := srv.handleRegenerateComponent(context.Background(),
			toolRequest("regenerate_component", map[string]interface{}{
				"component": "palette",
			}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if !result.IsError {
			t.Error("잘못된 컴포넌트에 에러 응답이어야 합니다")
		}
	})

	t.Run("색상 재생성", func(t *testing.T) {
		srv := newTestServer(t)

		if _, err := srv.session.Generate(context.Background(), "a pottery box"); err != nil {
			t.Fatalf("사전 생성 실패: %v", err)
		}

		result, err := srv.handleRegenerateComponent(context.Background(),
			toolRequest("regenerate_component", map[string]interface{}{
				"component": "colors",
			}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if result.IsError {
			t.Fatalf("성공 응답이어야 합니다: %s", resultText(t, result))
		}

		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(resultText(t, result)), &doc); err != nil {
			t.Fatalf("응답 파싱 실패: %v", err)
		}
		if doc["generatedWithAI"] != false {
			t.Errorf("색상 재생성 후 generatedWithAI = %v, want false", doc["generatedWithAI"])
		}
	})
}

// TestToolHandler_Consult는 상담 도구를 테스트합니다.
func TestToolHandler_Consult(t *testing.T) {
	t.Run("start는 인사말 반환", func(t *testing.T) {
		srv := newTestServer(t)

		result, err := srv.handleConsult(context.Background(),
			toolRequest("consult", map[string]interface{}{
				"action": "start",
				"idea":   "a pottery subscription box",
			}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if result.IsError {
			t.Fatalf("성공 응답이어야 합니다: %s", resultText(t, result))
		}
		if !strings.Contains(resultText(t, result), "pottery") {
			t.Error("인사말에 아이디어 맥락이 없습니다")
		}
	})

	t.Run("chat은 자격 증명 없으면 에러 응답 (폴백 없음)", func(t *testing.T) {
		srv := newTestServer(t)

		result, err := srv.handleConsult(context.Background(),
			toolRequest("consult", map[string]interface{}{
				"action":  "chat",
				"message": "hello",
			}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if !result.IsError {
			t.Error("자격 증명 없는 상담은 에러 응답이어야 합니다")
		}
	})

	t.Run("chat은 message 필수", func(t *testing.T) {
		srv := newTestServer(t)

		result, err := srv.handleConsult(context.Background(),
			toolRequest("consult", map[string]interface{}{}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if !result.IsError {
			t.Error("message 누락 시 에러 응답이어야 합니다")
		}
	})

	t.Run("알 수 없는 action은 에러 응답", func(t *testing.T) {
		srv := newTestServer(t)

		result, err := srv.handleConsult(context.Background(),
			toolRequest("consult", map[string]interface{}{
				"action": "stop",
			}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if !result.IsError {
			t.Error("잘못된 action에 에러 응답이어야 합니다")
		}
	})
}

// TestToolHandler_ExportBrand는 내보내기 도구를 테스트합니다.
func TestToolHandler_ExportBrand(t *testing.T) {
	t.Run("활성 브랜드 없으면 에러 응답", func(t *testing.T) {
		srv := newTestServer(t)

		result, err := srv.handleExportBrand(context.Background(),
			toolRequest("export_brand", map[string]interface{}{}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if !result.IsError {
			t.Error("활성 브랜드 없이 에러 응답이어야 합니다")
		}
	})

	t.Run("텍스트 형식", func(t *testing.T) {
		srv := newTestServer(t)
		if _, err := srv.session.Generate(context.Background(), "a pottery box"); err != nil {
			t.Fatalf("사전 생성 실패: %v", err)
		}

		result, err := srv.handleExportBrand(context.Background(),
			toolRequest("export_brand", map[string]interface{}{"format": "text"}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if result.IsError {
			t.Fatalf("성공 응답이어야 합니다: %s", resultText(t, result))
		}
		if !strings.Contains(resultText(t, result), "BRAND IDENTITY PACKAGE") {
			t.Error("텍스트 보고서 헤더가 없습니다")
		}
	})

	t.Run("지원하지 않는 형식이면 에러 응답", func(t *testing.T) {
		srv := newTestServer(t)
		if _, err := srv.session.Generate(context.Background(), "a pottery box"); err != nil {
			t.Fatalf("사전 생성 실패: %v", err)
		}

		result, err := srv.handleExportBrand(context.Background(),
			toolRequest("export_brand", map[string]interface{}{"format": "xml"}))
		if err != nil {
			t.Fatalf("핸들러 오류: %v", err)
		}
		if !result.IsError {
			t.Error("잘못된 형식에 에러 응답이어야 합니다")
		}
	})
}

// TestResource_Brand는 현재 브랜드 리소스를 테스트합니다.
func TestResource_Brand(t *testing.T) {
	srv := newTestServer(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "brandsnap://brand"

	// 브랜드 없음: 안내 응답
	contents, err := srv.handleBrandResource(context.Background(), req)
	if err != nil {
		t.Fatalf("리소스 오류: %v", err)
	}
	text := contents[0].(mcp.TextResourceContents).Text
	if !strings.Contains(text, "no active brand") {
		t.Errorf("안내 응답이 아닙니다: %s", text)
	}

	// 생성 후: 브랜드 문서
	if _, err := srv.session.Generate(context.Background(), "a pottery box"); err != nil {
		t.Fatalf("사전 생성 실패: %v", err)
	}
	contents, err = srv.handleBrandResource(context.Background(), req)
	if err != nil {
		t.Fatalf("리소스 오류: %v", err)
	}
	text = contents[0].(mcp.TextResourceContents).Text
	if !strings.Contains(text, "brandName") {
		t.Errorf("브랜드 문서가 아닙니다: %s", text)
	}
}

// TestResource_Palettes는 팔레트 카탈로그 리소스를 테스트합니다.
func TestResource_Palettes(t *testing.T) {
	srv := newTestServer(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "brandsnap://palettes"

	contents, err := srv.handlePalettesResource(context.Background(), req)
	if err != nil {
		t.Fatalf("리소스 오류: %v", err)
	}
	text := contents[0].(mcp.TextResourceContents).Text
	if !strings.Contains(text, "Ocean Breeze") {
		t.Error("팔레트 카탈로그에 Ocean Breeze가 없습니다")
	}
}

// TestResource_Metrics는 메트릭 리소스를 테스트합니다.
func TestResource_Metrics(t *testing.T) {
	srv := newTestServer(t)

	if _, err := srv.session.Generate(context.Background(), "a pottery box"); err != nil {
		t.Fatalf("사전 생성 실패: %v", err)
	}

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "brandsnap://metrics"

	contents, err := srv.handleMetricsResource(context.Background(), req)
	if err != nil {
		t.Fatalf("리소스 오류: %v", err)
	}

	var snap map[string]interface{}
	text := contents[0].(mcp.TextResourceContents).Text
	if err := json.Unmarshal([]byte(text), &snap); err != nil {
		t.Fatalf("메트릭 파싱 실패: %v", err)
	}
	if snap["generations"].(float64) != 1 {
		t.Errorf("generations = %v, want 1", snap["generations"])
	}
}
