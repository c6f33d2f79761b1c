package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CHRISCARLON/uk-future-works-model/internal/domain"
	"github.com/CHRISCARLON/uk-future-works-model/internal/seed"
)

// PrimaryTables are the tables the summary report counts, in presentation
// order.
var PrimaryTables = []string{
	"organisation",
	"contactdetails",
	"plannedprogramme",
	"networklink",
	"relationship_organisationtocontactdetails",
	"future_works_unified",
}

type ProfileService struct {
	repo domain.ProfileRepository
}

func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

type PopulationResult struct {
	Organisations int
	Contacts      int
	ContactLinks  int
	Programmes    int
	NetworkLinks  int
	UnifiedRows   int64
}

// SeedCodelists loads every codelist enumeration into its table. Runs as part
// of schema creation, so the codelists ship with the empty container.
func (s *ProfileService) SeedCodelists(ctx context.Context, lists []domain.Codelist) error {
	for _, list := range lists {
		if len(list.Entries) == 0 {
			return fmt.Errorf("codelist %s has no entries", list.Table)
		}
		if err := uniqueSystemIDs(list.Table, codelistIDs(list.Entries)); err != nil {
			return err
		}
		if err := s.repo.SeedCodelist(ctx, list); err != nil {
			return err
		}
	}
	return nil
}

// PopulateSampleData inserts the dataset in logical foreign-key dependency
// order, then rebuilds the unified table. Any insert failure aborts the run
// immediately; rows written by earlier phases are left as they are.
func (s *ProfileService) PopulateSampleData(ctx context.Context, set *seed.Set) (PopulationResult, error) {
	if set == nil {
		return PopulationResult{}, errors.New("nil sample dataset")
	}
	if err := s.validate(set); err != nil {
		return PopulationResult{}, err
	}

	if err := s.repo.InsertOrganisations(ctx, set.Organisations); err != nil {
		return PopulationResult{}, err
	}
	if err := s.repo.InsertContactDetails(ctx, set.Contacts); err != nil {
		return PopulationResult{}, err
	}
	if err := s.repo.InsertContactLinks(ctx, set.ContactLinks); err != nil {
		return PopulationResult{}, err
	}
	if err := s.repo.InsertProgrammes(ctx, set.Programmes); err != nil {
		return PopulationResult{}, err
	}
	if err := s.repo.InsertNetworkLinks(ctx, set.NetworkLinks); err != nil {
		return PopulationResult{}, err
	}

	unified, err := s.repo.RebuildUnified(ctx)
	if err != nil {
		return PopulationResult{}, err
	}

	return PopulationResult{
		Organisations: len(set.Organisations),
		Contacts:      len(set.Contacts),
		ContactLinks:  len(set.ContactLinks),
		Programmes:    len(set.Programmes),
		NetworkLinks:  len(set.NetworkLinks),
		UnifiedRows:   unified,
	}, nil
}

func (s *ProfileService) validate(set *seed.Set) error {
	checks := []struct {
		table string
		ids   []string
	}{
		{"organisation", organisationIDs(set.Organisations)},
		{"contactdetails", contactIDs(set.Contacts)},
		{"relationship_organisationtocontactdetails", contactLinkIDs(set.ContactLinks)},
		{"plannedprogramme", programmeIDs(set.Programmes)},
		{"networklink", networkLinkIDs(set.NetworkLinks)},
	}
	for _, c := range checks {
		if err := uniqueSystemIDs(c.table, c.ids); err != nil {
			return err
		}
	}

	for _, nl := range set.NetworkLinks {
		if !nl.Geometry.IsValid() {
			return fmt.Errorf("network link %s: geometry needs at least 2 points", nl.SystemID)
		}
	}
	return nil
}

// Summary computes the read-only diagnostics over a populated container.
func (s *ProfileService) Summary(ctx context.Context, path string) (domain.SummaryReport, error) {
	report := domain.SummaryReport{Path: path, GeneratedAt: time.Now()}

	var err error
	if report.TableCounts, err = s.repo.TableCounts(ctx, PrimaryTables); err != nil {
		return domain.SummaryReport{}, err
	}
	if report.ActiveLinks, err = s.repo.CountActiveLinks(ctx); err != nil {
		return domain.SummaryReport{}, err
	}
	if report.EarliestPlannedStart, report.LatestPlannedStart, err = s.repo.PlannedStartRange(ctx); err != nil {
		return domain.SummaryReport{}, err
	}

	groups := []struct {
		column string
		target *[]domain.GroupCount
	}{
		{"utilitytype", &report.ByUtilityType},
		{"linkstatus", &report.ByLinkStatus},
		{"schemestatus", &report.BySchemeStatus},
		{"plannedinstallationmethod", &report.ByInstallationMethod},
		{"worktype", &report.ByWorkType},
	}
	for _, g := range groups {
		if *g.target, err = s.repo.GroupLinksBy(ctx, g.column); err != nil {
			return domain.SummaryReport{}, err
		}
	}
	if report.ByOrganisation, err = s.repo.GroupLinksByOrganisation(ctx); err != nil {
		return domain.SummaryReport{}, err
	}
	if report.QualityFindings, err = s.repo.QualityFindings(ctx); err != nil {
		return domain.SummaryReport{}, err
	}
	return report, nil
}

func (s *ProfileService) FutureWorks(ctx context.Context, limit int) ([]domain.FutureWork, error) {
	if limit <= 0 {
		limit = 500
	}
	if limit > 5000 {
		limit = 5000
	}
	return s.repo.ListFutureWorks(ctx, limit)
}

func (s *ProfileService) Organisations(ctx context.Context, limit int) ([]domain.Organisation, error) {
	if limit <= 0 {
		limit = 200
	}
	return s.repo.ListOrganisations(ctx, limit)
}

func (s *ProfileService) Codelist(ctx context.Context, table string) ([]domain.CodelistEntry, error) {
	return s.repo.ListCodelist(ctx, table)
}

func uniqueSystemIDs(table string, ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%s: empty systemid", table)
		}
		if seen[id] {
			return fmt.Errorf("%s: duplicate systemid %q", table, id)
		}
		seen[id] = true
	}
	return nil
}

func codelistIDs(entries []domain.CodelistEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.SystemID)
	}
	return out
}

func organisationIDs(values []domain.Organisation) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.SystemID)
	}
	return out
}

func contactIDs(values []domain.ContactDetails) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.SystemID)
	}
	return out
}

func contactLinkIDs(values []domain.OrganisationContactLink) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.SystemID)
	}
	return out
}

func programmeIDs(values []domain.PlannedProgramme) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.SystemID)
	}
	return out
}

func networkLinkIDs(values []domain.NetworkLink) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.SystemID)
	}
	return out
}
