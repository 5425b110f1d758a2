// Package mcpserver는 BrandSnap 기능을 MCP 도구로 노출합니다.
// mark3labs/mcp-go를 사용하여 stdio 기반 MCP 프로토콜을 처리합니다.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/insajin/brandsnap/internal/consultant"
	"github.com/insajin/brandsnap/internal/metrics"
	"github.com/insajin/brandsnap/internal/session"
)

const (
	// ServerName은 MCP 서버 이름입니다.
	ServerName = "brandsnap"
	// ServerVersion은 MCP 서버 버전입니다.
	ServerVersion = "0.1.0"
)

// Server는 BrandSnap MCP 서버입니다.
// 브랜드 생성 세션과 상담 세션을 AI 어시스턴트에게 도구로 제공합니다.
type Server struct {
	mcpServer *server.MCPServer
	session   *session.Session
	cons      *consultant.Consultant
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewServer는 새 MCP 서버를 생성합니다.
func NewServer(sess *session.Session, cons *consultant.Consultant, m *metrics.Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		session: sess,
		cons:    cons,
		metrics: m,
		logger:  logger.With().Str("component", "mcpserver").Logger(),
	}

	// MCP 서버 생성
	s.mcpServer = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	// 도구 및 리소스 등록
	s.registerTools()
	s.registerResources()

	s.logger.Info().
		Str("name", ServerName).
		Str("version", ServerVersion).
		Msg("MCP 서버 초기화 완료")

	return s
}

// Start는 stdio 기반 MCP 서버를 시작합니다.
// 이 함수는 서버가 종료될 때까지 블로킹됩니다.
func (s *Server) Start() error {
	s.logger.Info().Msg("MCP 서버 시작 (stdio 트랜스포트)")
	return server.ServeStdio(s.mcpServer)
}

// registerTools는 모든 MCP 도구를 등록합니다.
func (s *Server) registerTools() {
	// 1. generate_brand - 아이디어로부터 브랜드 아이덴티티 생성
	generateBrandTool := mcp.NewTool("generate_brand",
		mcp.WithDescription("Generate a complete brand identity (name, tagline, color palette, logo) from a startup idea. Uses the AI provider when a credential is configured, a deterministic fallback otherwise."),
		mcp.WithString("idea",
			mcp.Required(),
			mcp.Description("Free-text description of the startup idea"),
		),
	)
	s.mcpServer.AddTool(generateBrandTool, s.handleGenerateBrand)

	// 2. regenerate_component - 단일 브랜드 컴포넌트 재생성
	regenerateTool := mcp.NewTool("regenerate_component",
		mcp.WithDescription("Regenerate a single component of the current brand. Requires a prior generate_brand call."),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component to regenerate"),
			mcp.Enum("name", "tagline", "colors", "logo"),
		),
	)
	s.mcpServer.AddTool(regenerateTool, s.handleRegenerateComponent)

	// 3. consult - 브랜드 상담 대화
	consultTool := mcp.NewTool("consult",
		mcp.WithDescription("Talk to the brand consultant to refine a startup idea before generating. Requires an API credential; there is no fallback path."),
		mcp.WithString("action",
			mcp.Description("Action: 'start' begins a consultation, 'chat' sends a message (default)"),
			mcp.Enum("start", "chat"),
		),
		mcp.WithString("idea",
			mcp.Description("Startup idea for 'start' (optional)"),
		),
		mcp.WithString("message",
			mcp.Description("User message for 'chat'"),
		),
	)
	s.mcpServer.AddTool(consultTool, s.handleConsult)

	// 4. export_brand - 현재 브랜드 내보내기
	exportTool := mcp.NewTool("export_brand",
		mcp.WithDescription("Export the current brand as a JSON document or a plain-text report."),
		mcp.WithString("format",
			mcp.Description("Export format (default: json)"),
			mcp.Enum("json", "text"),
		),
	)
	s.mcpServer.AddTool(exportTool, s.handleExportBrand)

	s.logger.Debug().Msg("MCP 도구 4개 등록 완료")
}

// registerResources는 모든 MCP 리소스를 등록합니다.
func (s *Server) registerResources() {
	// 1. brandsnap://brand - 현재 브랜드 레코드
	brandResource := mcp.NewResource(
		"brandsnap://brand",
		"Current Brand",
		mcp.WithResourceDescription("The currently generated brand identity, if any"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(brandResource, s.handleBrandResource)

	// 2. brandsnap://palettes - 팔레트 카탈로그
	palettesResource := mcp.NewResource(
		"brandsnap://palettes",
		"Palette Catalog",
		mcp.WithResourceDescription("The catalog of named five-color palettes used by the generator"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(palettesResource, s.handlePalettesResource)

	// 3. brandsnap://metrics - 생성 메트릭 스냅샷
	metricsResource := mcp.NewResource(
		"brandsnap://metrics",
		"Generation Metrics",
		mcp.WithResourceDescription("Counters for generations, AI successes, fallbacks, and consultations"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(metricsResource, s.handleMetricsResource)

	s.logger.Debug().Msg("MCP 리소스 3개 등록 완료")
}
