package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "titleblock/internal/adapters/mcp"
	"titleblock/internal/config"
	"titleblock/internal/logging"
	"titleblock/internal/wire"
)

func main() {
	configFlag := flag.String("config", "", "configuration file")
	simulateFlag := flag.String("simulate", "", "drive a simulated CAD application loaded from this fixture")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("titleblock-mcp: %v", err)
	}
	// stdout carries the protocol, so logs go to stderr or the configured file
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("titleblock-mcp: %v", err)
	}
	defer logger.Sync()

	env, err := wire.Open(cfg, logger)
	if err != nil {
		log.Fatalf("titleblock-mcp: %v", err)
	}
	defer env.Close()

	cad, err := env.Connect(*simulateFlag)
	if err != nil {
		log.Fatalf("titleblock-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"titleblock-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	svc := mcpadapter.Services{
		Mappings: env.Mappings,
		Tables:   env.Tables,
		Session:  env.Session,
		Exporter: env.Exporter,
	}
	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc, env.Extractor(cad.Connector))

	serveErr := server.ServeStdio(mcpServer)
	if err := cad.Flush(); err != nil {
		logger.Warn("failed to write simulated drawings", zap.Error(err))
	}
	if serveErr != nil {
		env.Close()
		log.Fatalf("titleblock-mcp: %v", serveErr)
	}
}
