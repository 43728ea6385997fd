package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCreateEntryTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerSearchHistoryTool(srv, svc)
	registerUpdateAnswerTool(srv, svc)
	registerAppendSectionTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerBackupTool(srv, svc)
}

func registerCreateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_entry",
		mcp.WithDescription("Record a new walk. Sections come from a template unless listed explicitly."),
		mcp.WithString("date",
			mcp.Description("Walk date as YYYY-MM-DD. Defaults to today."),
		),
		mcp.WithString("tags",
			mcp.Description("Free-form tags for the walk."),
		),
		mcp.WithString("template",
			mcp.Description("Template name such as \"Standard Walk\" or \"Quick Check\"."),
		),
		mcp.WithArray("sections",
			mcp.Description("Section titles. Each gets the Findings, Reasoning and Solution questions."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("answers",
			mcp.Description("Answers to fill in. section and answer start at 1."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"section": map[string]any{"type": "integer", "minimum": 1},
					"answer":  map[string]any{"type": "integer", "minimum": 1},
					"text":    map[string]any{"type": "string"},
				},
				"required": []string{"section", "answer", "text"},
			}),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date     string        `json:"date"`
			Tags     string        `json:"tags"`
			Template string        `json:"template"`
			Sections []string      `json:"sections"`
			Answers  []AnswerInput `json:"answers"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CreateEntry(ctx, CreateEntryOptions{
			Date:     args.Date,
			Tags:     args.Tags,
			Template: args.Template,
			Sections: args.Sections,
			Answers:  args.Answers,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single walk by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSearchHistoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_history",
		mcp.WithDescription("List walks grouped by ISO week and day, newest first, optionally filtered."),
		mcp.WithString("term",
			mcp.Description("Case-insensitive text matched against titles, questions, answers and tags."),
		),
		mcp.WithString("since",
			mcp.Description("Only walks dated on or after this YYYY-MM-DD date."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.History(ctx,
			request.GetString("term", ""),
			request.GetString("since", ""),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	})
}

func registerUpdateAnswerTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_answer",
		mcp.WithDescription("Replace one answer of a saved walk. An empty text clears it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to modify."),
		),
		mcp.WithNumber("section",
			mcp.Required(),
			mcp.Description("Section number, starting at 1."),
			mcp.Min(1),
		),
		mcp.WithNumber("answer",
			mcp.Required(),
			mcp.Description("Answer number within the section, starting at 1."),
			mcp.Min(1),
		),
		mcp.WithString("text",
			mcp.Description("New answer text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		section, err := request.RequireInt("section")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		answer, err := request.RequireInt("answer")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.UpdateAnswer(ctx, id, section, answer, request.GetString("text", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAppendSectionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"append_section",
		mcp.WithDescription("Add a section with one open question to a saved walk."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to modify."),
		),
		mcp.WithString("title",
			mcp.Description("Section title. Defaults to \"New Section\"."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.AppendSection(ctx, id, request.GetString("title", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete a saved walk. Deleting a missing walk succeeds."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := svc.DeleteEntry(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"deleted": true,
		})
	})
}

func registerBackupTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"backup",
		mcp.WithDescription("Return every walk, oldest first, as a backup document."),
		mcp.WithString("format",
			mcp.Description("Backup format."),
			mcp.Enum("json", "yaml"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.Backup(ctx, request.GetString("format", "json"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
