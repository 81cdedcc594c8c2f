package assistant

import (
	"fmt"

	"github.com/optisale/optisale/pkg/domain"
)

// SummaryContext is the serialized CRM context handed to the completion
// service. The assistant only supplies it; it never depends on what
// comes back.
type SummaryContext struct {
	UserName string
	UserRole string
	Summary  domain.Summary
}

func (sc SummaryContext) userName() string {
	if sc.UserName == "" {
		return "User"
	}
	return sc.UserName
}

func (sc SummaryContext) userRole() string {
	if sc.UserRole == "" {
		return "owner"
	}
	return sc.UserRole
}

func (sc SummaryContext) describe() string {
	return fmt.Sprintf(`- Total Leads: %d
- Total Deals: %d
- Total Tasks: %d
- Total Notes: %d
- Total Deal Value: $%.2f
- Closed Deals: %d
- Closed Deal Value: $%.2f`,
		sc.Summary.TotalLeads,
		sc.Summary.TotalDeals,
		sc.Summary.TotalTasks,
		sc.Summary.TotalNotes,
		sc.Summary.TotalDealValue,
		sc.Summary.ClosedDeals,
		sc.Summary.ClosedDealValue,
	)
}

func buildSystemPrompt(sc SummaryContext) string {
	return fmt.Sprintf(`You are a helpful CRM AI assistant for %s. You have access to their CRM data and can help them with insights and suggestions.

User Information:
- Name: %s
- Role: %s

Current CRM Data Summary:
%s

Instructions:
- Be conversational and helpful.
- Provide specific insights when possible.
- If asked about data you don't have access to, explain what you can see.
- Offer actionable recommendations.
- Keep responses concise but informative.
- Focus on the user's specific data and context.`,
		sc.userName(), sc.userName(), sc.userRole(), sc.describe())
}
