package domain

import "strings"

// StageClosedWon is the only stage text counted as a closed deal. The
// match is case-insensitive but exact; other closed-stage spellings are
// not guessed at.
const StageClosedWon = "closed won"

type Summary struct {
	TotalLeads      int     `json:"total_leads"`
	TotalDeals      int     `json:"total_deals"`
	TotalTasks      int     `json:"total_tasks"`
	TotalNotes      int     `json:"total_notes"`
	TotalDealValue  float64 `json:"total_deal_value"`
	ClosedDeals     int     `json:"closed_deals"`
	ClosedDealValue float64 `json:"closed_deal_value"`
}

// Overview bundles one owner's (or everyone's) records with the derived
// summary for a single dashboard render.
type Overview struct {
	Leads   []Lead  `json:"leads"`
	Deals   []Deal  `json:"deals"`
	Tasks   []Task  `json:"tasks"`
	Notes   []Note  `json:"notes"`
	Summary Summary `json:"summary"`
}

// Summarize computes the cross-cutting dashboard metrics. Deal amounts
// are summed only when present and non-zero.
func Summarize(leads []Lead, deals []Deal, tasks []Task, notes []Note) Summary {
	s := Summary{
		TotalLeads: len(leads),
		TotalDeals: len(deals),
		TotalTasks: len(tasks),
		TotalNotes: len(notes),
	}

	for _, deal := range deals {
		if deal.Amount == nil || *deal.Amount == 0 {
			if strings.EqualFold(deal.Stage, StageClosedWon) {
				s.ClosedDeals++
			}
			continue
		}
		s.TotalDealValue += *deal.Amount
		if strings.EqualFold(deal.Stage, StageClosedWon) {
			s.ClosedDeals++
			s.ClosedDealValue += *deal.Amount
		}
	}

	return s
}

// Stats carries per-owner record counts for the dashboard's breakdown
// widgets.
type Stats struct {
	TotalDeals   int            `json:"total_deals"`
	TotalLeads   int            `json:"total_leads"`
	TotalTasks   int            `json:"total_tasks"`
	DealsByOwner map[string]int `json:"deals_by_owner"`
	LeadsByOwner map[string]int `json:"leads_by_owner"`
	TasksByOwner map[string]int `json:"tasks_by_owner"`
}
