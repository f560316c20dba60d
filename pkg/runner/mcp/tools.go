package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTasksTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerCreateTaskTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerCompleteTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerMoveTaskTool(srv, svc)
}

func refOption(verb string) mcp.ToolOption {
	return mcp.WithString("ref",
		mcp.Required(),
		mcp.Description(fmt.Sprintf("Task id, or 1-based position in the list, of the task to %s.", verb)),
	)
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List all tasks in display order."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := svc.ListTasks(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Fetch a single task."),
		refOption("fetch"),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.TaskByRef(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Append a new open task to the end of the list."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short title of the task."),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("A few words describing the task."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title   string `json:"title"`
			Summary string `json:"summary"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CreateTask(ctx, args.Title, args.Summary)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Change the title and/or summary of a task. Completion is not affected."),
		refOption("update"),
		mcp.WithString("title",
			mcp.Description("New title; omit to keep the current one."),
		),
		mcp.WithString("summary",
			mcp.Description("New summary; omit to keep the current one."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Ref     string  `json:"ref"`
			Title   *string `json:"title"`
			Summary *string `json:"summary"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.UpdateTask(ctx, UpdateTaskOptions{
			Ref:     args.Ref,
			Title:   args.Title,
			Summary: args.Summary,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCompleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_task",
		mcp.WithDescription("Mark a task as done. Completing a done task is harmless."),
		refOption("complete"),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.CompleteTask(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task."),
		refOption("delete"),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteTask(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": dto})
	})
}

func registerMoveTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_task",
		mcp.WithDescription("Move a task to another position. The task is removed and reinserted, not swapped."),
		refOption("move"),
		mcp.WithNumber("position",
			mcp.Required(),
			mcp.Description("1-based destination position."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Ref      string `json:"ref"`
			Position int    `json:"position"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		tasks, err := svc.MoveTask(ctx, args.Ref, args.Position)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
