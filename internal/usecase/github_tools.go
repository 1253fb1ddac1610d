package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/halcyon-labs/assistant-mcp/internal/adapter/outbound/github"
	"github.com/halcyon-labs/assistant-mcp/internal/domain"
)

// GitHubToolSet provides the repository tools.
type GitHubToolSet struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubToolSet creates the GitHub tool set.
func NewGitHubToolSet(client *github.Client, logger *slog.Logger) *GitHubToolSet {
	return &GitHubToolSet{
		client: client,
		logger: logger.With("toolset", "github"),
	}
}

// Register adds the repository tools to the registry, in catalog order.
func (s *GitHubToolSet) Register(r *domain.Registry) {
	r.Register(mcp.NewTool("create_github_repository",
		mcp.WithDescription("Create a new GitHub repository"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the repository to create"),
		),
		mcp.WithBoolean("private",
			mcp.Description("Whether the repository should be private"),
			mcp.DefaultBool(false),
		),
		mcp.WithString("description",
			mcp.Description("Description of the repository"),
		),
		mcp.WithBoolean("auto_init",
			mcp.Description("Initialize repository with README"),
			mcp.DefaultBool(true),
		),
	), s.CreateRepository)

	r.Register(mcp.NewTool("delete_github_repository",
		mcp.WithDescription("Delete a GitHub repository"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the repository to delete"),
		),
	), s.DeleteRepository)
}

// CreateRepository handles the create_github_repository tool.
func (s *GitHubToolSet) CreateRepository(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	name := stringArg(args, "name")
	if name == "" {
		return mcp.NewToolResultError("Error: Repository name is required")
	}

	params := github.CreateRepositoryParams{
		Name:     name,
		Private:  boolArg(args, "private", false),
		AutoInit: boolArg(args, "auto_init", true),
	}
	if desc, ok := args["description"].(string); ok {
		params.Description = &desc
	}

	repo, err := s.client.CreateRepository(ctx, params)
	if err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) {
			return mcp.NewToolResultError(fmt.Sprintf("❌ Failed to create repository: %s (Status: %d)", apiErr.Message, apiErr.StatusCode))
		}
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error creating repository: %v", err))
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"✅ Successfully created GitHub repository '%s'!\n\nRepository URL: %s\nClone URL: %s",
		name, valueOr(repo.HTMLURL, "Unknown"), valueOr(repo.CloneURL, "Unknown")))
}

// DeleteRepository handles the delete_github_repository tool.
func (s *GitHubToolSet) DeleteRepository(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	name := stringArg(args, "name")
	if name == "" {
		return mcp.NewToolResultError("Error: Repository name is required")
	}

	if err := s.client.DeleteRepository(ctx, name); err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) {
			return mcp.NewToolResultError(fmt.Sprintf("❌ Failed to delete repository: %s (Status: %d)", apiErr.Message, apiErr.StatusCode))
		}
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error deleting repository: %v", err))
	}

	return mcp.NewToolResultText(fmt.Sprintf("✅ Successfully deleted GitHub repository '%s'", name))
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
