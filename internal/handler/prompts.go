package handler

import "github.com/manueltarouca/protein-bars-mcp-server/internal/mcp"

const welcomePromptText = `
Welcome to the Office Protein Bar Ordering System! As an AI assistant, I can help you with the following:

1. View available protein bars in stock
2. Place a new order for protein bars with delivery to your desk
3. For admins: View and manage existing orders

What would you like to do today? For example, you could say:
- "Show me the available protein bars"
- "I'd like to order 2 Choco Blast bars and 1 Peanut Butter Power bar"
- "Check the status of my recent order"
`

// promptList describes the available prompts.
func promptList() []mcp.Prompt {
	return []mcp.Prompt{
		{Name: "welcome", Description: "Welcome message explaining available protein bar ordering tools"},
	}
}

// getPrompt resolves a prompts/get request.
func getPrompt(name string) (mcp.GetPromptResult, *mcp.Error) {
	if name != "welcome" {
		return mcp.GetPromptResult{}, &mcp.Error{Code: mcp.CodeInvalidParams, Message: "Unknown prompt: " + name}
	}

	return mcp.GetPromptResult{
		Messages: []mcp.PromptMessage{
			{Role: "user", Content: mcp.NewTextContent(welcomePromptText)},
		},
	}, nil
}
