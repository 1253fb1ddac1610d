package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/halcyon-labs/assistant-mcp/internal/adapter/outbound/googleapi"
	"github.com/halcyon-labs/assistant-mcp/internal/domain"
)

// GmailToolSet provides the email tools.
type GmailToolSet struct {
	client *googleapi.Client
	logger *slog.Logger
}

// NewGmailToolSet creates the Gmail tool set.
func NewGmailToolSet(client *googleapi.Client, logger *slog.Logger) *GmailToolSet {
	return &GmailToolSet{
		client: client,
		logger: logger.With("toolset", "gmail"),
	}
}

// Register adds the email tools to the registry, in catalog order.
func (s *GmailToolSet) Register(r *domain.Registry) {
	r.Register(mcp.NewTool("list_emails",
		mcp.WithDescription("List Gmail messages"),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of emails to return"),
			mcp.DefaultNumber(10),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query (optional)"),
			mcp.DefaultString(""),
		),
	), s.ListEmails)

	r.Register(mcp.NewTool("send_email",
		mcp.WithDescription("Send an email using the Gmail API"),
		mcp.WithString("to", mcp.Required(), mcp.Description("Recipient email address")),
		mcp.WithString("subject", mcp.Required(), mcp.Description("Email subject")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Email body content")),
	), s.SendEmail)

	r.Register(mcp.NewTool("read_email",
		mcp.WithDescription("Read a specific email by ID"),
		mcp.WithString("emailId", mcp.Required(), mcp.Description("ID of the email to read")),
	), s.ReadEmail)

	r.Register(mcp.NewTool("delete_email",
		mcp.WithDescription("Delete a Gmail message"),
		mcp.WithString("emailId", mcp.Required(), mcp.Description("ID of the email to delete")),
	), s.DeleteEmail)
}

// ListEmails handles the list_emails tool.
func (s *GmailToolSet) ListEmails(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	maxResults := intArg(args, "maxResults", 10)
	query := stringArg(args, "query")

	messages, err := s.client.ListMessages(ctx, maxResults, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
	}
	if len(messages) == 0 {
		return mcp.NewToolResultText("No emails found.")
	}

	blocks := make([]string, 0, len(messages))
	for _, msg := range messages {
		blocks = append(blocks, fmt.Sprintf("📧 %s\nFrom: %s\nDate: %s\nID: %s\n%s",
			msg.HeaderOr("Subject", "No Subject"),
			msg.HeaderOr("From", "Unknown Sender"),
			msg.HeaderOr("Date", "Unknown Date"),
			msg.ID, blockSeparator))
	}
	return mcp.NewToolResultText(strings.Join(blocks, "\n"))
}

// SendEmail handles the send_email tool.
func (s *GmailToolSet) SendEmail(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	to := stringArg(args, "to")
	subject := stringArg(args, "subject")
	body := stringArg(args, "body")
	if to == "" || subject == "" || body == "" {
		return mcp.NewToolResultError("Error: to, subject, and body are required")
	}

	id, err := s.client.SendMessage(ctx, to, subject, body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error sending email: %v", err))
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Email sent successfully!\nMessage ID: %s", valueOr(id, "No ID")))
}

// ReadEmail handles the read_email tool.
func (s *GmailToolSet) ReadEmail(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	emailID := stringArg(args, "emailId")
	if emailID == "" {
		return mcp.NewToolResultError("Error: Email ID is required")
	}

	msg, err := s.client.GetMessage(ctx, emailID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error reading email: %v", err))
	}

	body, err := msg.PlainTextBody()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error reading email: %v", err))
	}
	if body == "" {
		body = "No text content found"
	}

	return mcp.NewToolResultText(fmt.Sprintf("📧 %s\nFrom: %s\nDate: %s\nID: %s\n\n%s",
		msg.HeaderOr("Subject", "No Subject"),
		msg.HeaderOr("From", "Unknown Sender"),
		msg.HeaderOr("Date", "Unknown Date"),
		emailID, body))
}

// DeleteEmail handles the delete_email tool.
func (s *GmailToolSet) DeleteEmail(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	emailID := stringArg(args, "emailId")
	if emailID == "" {
		return mcp.NewToolResultError("Error: Email ID is required")
	}

	if err := s.client.DeleteMessage(ctx, emailID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error deleting email: %v", err))
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Successfully deleted email: %s", emailID))
}
