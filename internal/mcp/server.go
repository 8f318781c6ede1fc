// Package mcp provides a Model Context Protocol server for daylog.
//
// It exposes the work-input pipeline and the stored records (calendar
// events, notes, tasks, contacts) as MCP tools, plus storage statistics
// and recent work logs as MCP resources. Serves over stdio transport.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/minseo-dev/daylog/internal/datetime"
	"github.com/minseo-dev/daylog/internal/engine"
	"github.com/minseo-dev/daylog/internal/store"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Engine  *engine.Engine
	Store   store.Store
	Version string
}

// dbMu serializes all MCP tool calls that touch the database.
// The mcp-go library dispatches handlers concurrently via goroutines,
// and SQLite supports only one writer at a time. A global mutex keeps
// processing ordered: a process call completes before a list call sees
// its records.
var dbMu sync.Mutex

// NewServer creates a configured MCP server with all daylog tools and
// resources.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"daylog",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerProcessTool(s, cfg.Engine)
	registerEventsTool(s, cfg.Store)
	registerNotesTool(s, cfg.Store)
	registerTasksTool(s, cfg.Store)
	registerTaskStatusTool(s, cfg.Store)
	registerContactsTool(s, cfg.Store)

	registerStatsResource(s, cfg.Store)
	registerRecentResource(s, cfg.Store)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client hangs up.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// --- Tools ---

func registerProcessTool(s *server.MCPServer, eng *engine.Engine) {
	tool := mcp.NewTool("daylog_process",
		mcp.WithDescription("Analyze a Korean work-input sentence, classify it, and create the derived records: calendar events for schedules, events plus notes for meetings, tasks for work logs, and contacts whenever people are mentioned."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The work-input text to process"),
		),
		mcp.WithString("user_id",
			mcp.Description("Owner of the created records (default: 'default')"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		userID := "default"
		if v, err := req.RequireString("user_id"); err == nil && v != "" {
			userID = v
		}

		out, err := eng.Process(ctx, text, userID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("processing failed: %v", err)), nil
		}

		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerEventsTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("daylog_events",
		mcp.WithDescription("List calendar events ordered by start time, optionally narrowed to a single day."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("date",
			mcp.Description("Optional day filter. Accepts 오늘, 내일, 모레, 다음주, 1월 15일, or 2024-01-15."),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		events, err := st.ListEvents(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing events: %v", err)), nil
		}
		if raw, derr := req.RequireString("date"); derr == nil && raw != "" {
			day := datetime.ParseDate(raw, time.Now())
			y, m, d := day.Date()
			filtered := events[:0]
			for _, ev := range events {
				ey, em, ed := ev.Start.Date()
				if ey == y && em == m && ed == d {
					filtered = append(filtered, ev)
				}
			}
			events = filtered
		}
		data, _ := json.MarshalIndent(events, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerNotesTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("daylog_notes",
		mcp.WithDescription("List all markdown notes, newest first."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		notes, err := st.ListNotes(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing notes: %v", err)), nil
		}
		data, _ := json.MarshalIndent(notes, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerTasksTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("daylog_tasks",
		mcp.WithDescription("List all project tasks ordered by start date."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		tasks, err := st.ListTasks(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing tasks: %v", err)), nil
		}
		data, _ := json.MarshalIndent(tasks, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerTaskStatusTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("daylog_task_status",
		mcp.WithDescription("Update a task's status."),
		mcp.WithNumber("task_id",
			mcp.Required(),
			mcp.Description("ID of the task to update"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status"),
			mcp.Enum(store.StatusPending, store.StatusInProgress, store.StatusCompleted),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		idVal, err := req.RequireFloat("task_id")
		if err != nil {
			return mcp.NewToolResultError("task_id is required"), nil
		}
		status, err := req.RequireString("status")
		if err != nil {
			return mcp.NewToolResultError("status is required"), nil
		}

		id := int64(idVal)
		if err := st.UpdateTaskStatus(ctx, id, status); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("updating task %d: %v", id, err)), nil
		}

		task, err := st.GetTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("reading task %d: %v", id, err)), nil
		}
		data, _ := json.MarshalIndent(task, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerContactsTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("daylog_contacts",
		mcp.WithDescription("List contacts, or search them by name, company, position, or email."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("query",
			mcp.Description("Optional substring to search for. Empty lists all contacts."),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		var (
			contacts []*store.Contact
			err      error
		)
		if query, qerr := req.RequireString("query"); qerr == nil && query != "" {
			contacts, err = st.SearchContacts(ctx, query)
		} else {
			contacts, err = st.ListContacts(ctx)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing contacts: %v", err)), nil
		}
		data, _ := json.MarshalIndent(contacts, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Resources ---

func registerStatsResource(s *server.MCPServer, st store.Store) {
	resource := mcp.NewResource(
		"daylog://stats",
		"Storage Statistics",
		mcp.WithResourceDescription("Record counts per table: calendar events, notes, tasks, contacts, and work logs."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		stats, err := st.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting stats: %w", err)
		}

		data, _ := json.MarshalIndent(stats, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func registerRecentResource(s *server.MCPServer, st store.Store) {
	resource := mcp.NewResource(
		"daylog://recent",
		"Recent Work Logs",
		mcp.WithResourceDescription("The 20 most recently processed work inputs with their categories."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		logs, err := st.ListWorkLogs(ctx, 20)
		if err != nil {
			return nil, fmt.Errorf("listing recent work logs: %w", err)
		}

		type recentLog struct {
			ID        int64  `json:"id"`
			Snippet   string `json:"snippet"`
			Category  string `json:"category"`
			CreatedAt string `json:"created_at"`
		}
		recent := make([]recentLog, 0, len(logs))
		for _, l := range logs {
			snippet := l.Text
			if runes := []rune(snippet); len(runes) > 200 {
				snippet = string(runes[:200]) + "..."
			}
			recent = append(recent, recentLog{
				ID:        l.ID,
				Snippet:   snippet,
				Category:  l.Category,
				CreatedAt: l.CreatedAt.Format(time.RFC3339),
			})
		}

		data, _ := json.MarshalIndent(recent, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
