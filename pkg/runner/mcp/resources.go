package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTasksResource(srv, svc)
	registerTaskTemplate(srv, svc)
}

func registerTasksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"taskboard://tasks",
		"Tasks",
		mcp.WithResourceDescription("The ordered task list."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tasks, err := svc.ListTasks(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTaskTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"taskboard://tasks/{ref}",
		"Task Details",
		mcp.WithTemplateDescription("A single task by id or 1-based position."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ref := templateArg(request.Params.Arguments["ref"])
		if ref == "" {
			return nil, fmt.Errorf("task reference is required")
		}

		dto, err := svc.TaskByRef(ctx, ref)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"task": dto})
	})
}

// templateArg reads a URI template variable, which may arrive as a string or
// a single element list.
func templateArg(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
