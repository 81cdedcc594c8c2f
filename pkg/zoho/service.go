package zoho

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/optisale/optisale/pkg/domain"
)

// CRM module names as the upstream API spells them.
const (
	ModuleDeals = "Deals"
	ModuleLeads = "Leads"
	ModuleTasks = "Tasks"
	ModuleNotes = "Notes"
)

// OwnerAll selects every owner in owner-scoped queries.
const OwnerAll = "All"

// Service is the query facade the dashboard consumes. Each call fetches
// fresh data, normalizes it and partitions it by owner; nothing is
// cached between calls and every failure comes back as a typed error
// instead of escaping.
type Service struct {
	client *Client
}

type ServiceDependencies struct {
	Client *Client
}

func NewService(deps ServiceDependencies) *Service {
	return &Service{client: deps.Client}
}

func (s *Service) GetDeals(ctx context.Context) (*domain.OwnerPartition[domain.Deal], error) {
	return fetchPartitioned(ctx, s.client, ModuleDeals, domain.EmptyDealsKey, rawDeal.normalize)
}

func (s *Service) GetLeads(ctx context.Context) (*domain.OwnerPartition[domain.Lead], error) {
	return fetchPartitioned(ctx, s.client, ModuleLeads, domain.EmptyLeadsKey, rawLead.normalize)
}

func (s *Service) GetTasks(ctx context.Context) (*domain.OwnerPartition[domain.Task], error) {
	return fetchPartitioned(ctx, s.client, ModuleTasks, domain.EmptyTasksKey, rawTask.normalize)
}

func (s *Service) GetNotes(ctx context.Context) (*domain.OwnerPartition[domain.Note], error) {
	return fetchPartitioned(ctx, s.client, ModuleNotes, domain.EmptyNotesKey, rawNote.normalize)
}

// GetDealsByStage returns the deal partition restricted to one stage.
// The match is case-insensitive; owners with no matching deals are
// dropped. An empty stage returns everything.
func (s *Service) GetDealsByStage(ctx context.Context, stage string) (*domain.OwnerPartition[domain.Deal], error) {
	deals, err := s.GetDeals(ctx)
	if err != nil {
		return nil, err
	}
	if stage == "" {
		return deals, nil
	}

	return deals.Filter(func(d domain.Deal) bool {
		return strings.EqualFold(d.Stage, stage)
	}), nil
}

// GetTasksByStatus returns the task partition restricted to one status.
func (s *Service) GetTasksByStatus(ctx context.Context, status string) (*domain.OwnerPartition[domain.Task], error) {
	tasks, err := s.GetTasks(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return tasks, nil
	}

	return tasks.Filter(func(t domain.Task) bool {
		return strings.EqualFold(t.Status, status)
	}), nil
}

// GetLeadsByStatus returns the lead partition restricted to one status.
func (s *Service) GetLeadsByStatus(ctx context.Context, status string) (*domain.OwnerPartition[domain.Lead], error) {
	leads, err := s.GetLeads(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return leads, nil
	}

	return leads.Filter(func(l domain.Lead) bool {
		return strings.EqualFold(l.Status, status)
	}), nil
}

// FilterByOwner restricts a partition to the given owners. OwnerAll (or
// no owners at all) returns the partition unchanged.
func FilterByOwner[T any](p *domain.OwnerPartition[T], owners ...string) *domain.OwnerPartition[T] {
	if len(owners) == 0 {
		return p
	}
	if len(owners) == 1 && (owners[0] == OwnerAll || owners[0] == "") {
		return p
	}
	return p.Select(owners...)
}

// GetCRMSummary assembles the overview for one owner, or for everyone
// when ownerName is OwnerAll. A section whose fetch fails counts as
// empty; the totals only ever include real records.
func (s *Service) GetCRMSummary(ctx context.Context, ownerName string) domain.Overview {
	leads := flattenSection(ctx, ownerName, s.GetLeads)
	deals := flattenSection(ctx, ownerName, s.GetDeals)
	tasks := flattenSection(ctx, ownerName, s.GetTasks)
	notes := flattenSection(ctx, ownerName, s.GetNotes)

	return domain.Overview{
		Leads:   leads,
		Deals:   deals,
		Tasks:   tasks,
		Notes:   notes,
		Summary: domain.Summarize(leads, deals, tasks, notes),
	}
}

func flattenSection[T domain.Owned](ctx context.Context, ownerName string, fetch func(context.Context) (*domain.OwnerPartition[T], error)) []T {
	part, err := fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Section fetch failed, treating as empty")
		return nil
	}

	if ownerName == OwnerAll || ownerName == "" {
		return part.Flatten()
	}
	return part.Records(ownerName)
}

// GetAllOwners returns the sorted union of owner names seen across
// deals, leads and tasks. Sections that fail to fetch are skipped.
func (s *Service) GetAllOwners(ctx context.Context) []string {
	seen := map[string]struct{}{}

	collect := func(owners []string, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("Owner listing skipped a failed section")
			return
		}
		for _, owner := range owners {
			seen[owner] = struct{}{}
		}
	}

	if deals, err := s.GetDeals(ctx); err != nil {
		collect(nil, err)
	} else {
		collect(deals.Owners(), nil)
	}
	if leads, err := s.GetLeads(ctx); err != nil {
		collect(nil, err)
	} else {
		collect(leads.Owners(), nil)
	}
	if tasks, err := s.GetTasks(ctx); err != nil {
		collect(nil, err)
	} else {
		collect(tasks.Owners(), nil)
	}

	owners := make([]string, 0, len(seen))
	for owner := range seen {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

// GetSummaryStats returns total and per-owner record counts for the
// dashboard breakdown widgets. Failed sections contribute zero counts.
func (s *Service) GetSummaryStats(ctx context.Context) domain.Stats {
	stats := domain.Stats{
		DealsByOwner: map[string]int{},
		LeadsByOwner: map[string]int{},
		TasksByOwner: map[string]int{},
	}

	if deals, err := s.GetDeals(ctx); err == nil {
		stats.TotalDeals = deals.Len()
		for _, owner := range deals.Owners() {
			stats.DealsByOwner[owner] = len(deals.Records(owner))
		}
	} else {
		log.Warn().Err(err).Msg("Deal stats unavailable")
	}

	if leads, err := s.GetLeads(ctx); err == nil {
		stats.TotalLeads = leads.Len()
		for _, owner := range leads.Owners() {
			stats.LeadsByOwner[owner] = len(leads.Records(owner))
		}
	} else {
		log.Warn().Err(err).Msg("Lead stats unavailable")
	}

	if tasks, err := s.GetTasks(ctx); err == nil {
		stats.TotalTasks = tasks.Len()
		for _, owner := range tasks.Owners() {
			stats.TasksByOwner[owner] = len(tasks.Records(owner))
		}
	} else {
		log.Warn().Err(err).Msg("Task stats unavailable")
	}

	return stats
}

// TestConnection performs a minimal one-record probe against the Leads
// module and reports success plus a human-readable message. It never
// returns an error.
func (s *Service) TestConnection(ctx context.Context) (bool, string) {
	if err := s.client.Tokens().Validate(); err != nil {
		return false, fmt.Sprintf("Configuration missing: %v", err)
	}

	query := url.Values{"per_page": {"1"}}
	if _, err := s.client.List(ctx, ModuleLeads, query); err != nil {
		return false, fmt.Sprintf("API connection failed: %v", err)
	}

	return true, "API connection successful"
}
