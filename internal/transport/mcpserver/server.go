package mcpserver

import (
	"context"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/coach"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

const serverName = "pitchcoach"

type Coach interface {
	StartSession(ctx context.Context, id string) (core.TurnResult, error)
	Submit(ctx context.Context, id, text string, kind core.TurnKind) (core.TurnResult, error)
	Snapshot(id string) (core.Snapshot, error)
	Reset(ctx context.Context, id string) error
}

// Server exposes practice sessions as MCP tools over stdio, so an assistant
// can play the salesperson against the buyer.
type Server struct {
	coach Coach
	mcp   *server.MCPServer
	in    io.Reader
	out   io.Writer
}

func NewServer(c Coach, version string, in io.Reader, out io.Writer) *Server {
	s := &Server{
		coach: c,
		mcp:   server.NewMCPServer(serverName, version, server.WithToolCapabilities(false)),
		in:    in,
		out:   out,
	}

	s.mcp.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a new pitch practice session. Returns the session id and the buyer's welcome."),
	), s.startSession)

	s.mcp.AddTool(mcp.NewTool("submit_turn",
		mcp.WithDescription("Submit the salesperson's next message. Use the kind returned as 'expect' by the previous call."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_session")),
		mcp.WithString("text", mcp.Required(), mcp.Description("What the salesperson says")),
		mcp.WithString("kind", mcp.Required(),
			mcp.Description("Turn kind"),
			mcp.Enum(
				string(core.TurnPitch),
				string(core.TurnResponse),
				string(core.TurnReadiness),
				string(core.TurnPriceProposal),
				string(core.TurnNegotiation),
			),
		),
	), s.submitTurn)

	s.mcp.AddTool(mcp.NewTool("session_state",
		mcp.WithDescription("Read score, phase and price history of a session."),
		mcp.WithString("session_id", mcp.Required()),
	), s.sessionState)

	s.mcp.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Discard a session."),
		mcp.WithString("session_id", mcp.Required()),
	), s.resetSession)

	return s
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting mcp stdio server")
	return server.NewStdioServer(s.mcp).Listen(ctx, s.in, s.out)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) startSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := uuid.NewString()
	res, err := s.coach.StartSession(log.WithSession(ctx, id), id)
	return result(ctx, res, err)
}

func (s *Server) submitTurn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind := core.TurnKind(req.GetString("kind", ""))
	if !kind.Valid() {
		return mcp.NewToolResultError("unknown turn kind " + string(kind)), nil
	}

	ctx = log.WithSession(ctx, id)
	res, err := s.coach.Submit(ctx, id, req.GetString("text", ""), kind)
	return result(ctx, res, err)
}

func (s *Server) sessionState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.coach.Snapshot(id)
	return result(ctx, snap, err)
}

func (s *Server) resetSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.coach.Reset(ctx, id); err != nil {
		return mcp.NewToolResultError(coach.UserMessage(err)), nil
	}
	return mcp.NewToolResultText("session discarded"), nil
}

// Coach failures become tool errors the model can read; only encoding
// problems fail the call itself.
func result(ctx context.Context, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("tool call failed")
		return mcp.NewToolResultError(coach.UserMessage(err)), nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
