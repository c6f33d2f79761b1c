package application

import (
	"context"
	"testing"
	"time"

	"github.com/CHRISCARLON/uk-future-works-model/internal/domain"
	"github.com/CHRISCARLON/uk-future-works-model/internal/seed"
)

// stubRepository records the order of mutating calls and hands back canned
// query results.
type stubRepository struct {
	calls       []string
	seededLists []string
	listLimit   int

	futureWorks []domain.FutureWork
	groupCounts []domain.GroupCount
	findings    []domain.QualityFinding
}

func (s *stubRepository) SeedCodelist(ctx context.Context, list domain.Codelist) error {
	s.calls = append(s.calls, "codelist")
	s.seededLists = append(s.seededLists, list.Table)
	return nil
}

func (s *stubRepository) InsertOrganisations(ctx context.Context, values []domain.Organisation) error {
	s.calls = append(s.calls, "organisation")
	return nil
}

func (s *stubRepository) InsertContactDetails(ctx context.Context, values []domain.ContactDetails) error {
	s.calls = append(s.calls, "contactdetails")
	return nil
}

func (s *stubRepository) InsertContactLinks(ctx context.Context, values []domain.OrganisationContactLink) error {
	s.calls = append(s.calls, "relationship")
	return nil
}

func (s *stubRepository) InsertProgrammes(ctx context.Context, values []domain.PlannedProgramme) error {
	s.calls = append(s.calls, "plannedprogramme")
	return nil
}

func (s *stubRepository) InsertNetworkLinks(ctx context.Context, values []domain.NetworkLink) error {
	s.calls = append(s.calls, "networklink")
	return nil
}

func (s *stubRepository) RebuildUnified(ctx context.Context) (int64, error) {
	s.calls = append(s.calls, "rebuild")
	return 9, nil
}

func (s *stubRepository) GetNetworkLink(ctx context.Context, systemID string) (domain.NetworkLink, error) {
	return domain.NetworkLink{}, nil
}

func (s *stubRepository) ListFutureWorks(ctx context.Context, limit int) ([]domain.FutureWork, error) {
	s.listLimit = limit
	return s.futureWorks, nil
}

func (s *stubRepository) ListOrganisations(ctx context.Context, limit int) ([]domain.Organisation, error) {
	s.listLimit = limit
	return nil, nil
}

func (s *stubRepository) ListCodelist(ctx context.Context, table string) ([]domain.CodelistEntry, error) {
	return nil, nil
}

func (s *stubRepository) TableCounts(ctx context.Context, tables []string) ([]domain.TableCount, error) {
	out := make([]domain.TableCount, 0, len(tables))
	for _, table := range tables {
		out = append(out, domain.TableCount{Table: table, Count: 5})
	}
	return out, nil
}

func (s *stubRepository) CountActiveLinks(ctx context.Context) (int64, error) {
	return 9, nil
}

func (s *stubRepository) PlannedStartRange(ctx context.Context) (string, string, error) {
	return "2025-10-09", "2026-01-22", nil
}

func (s *stubRepository) GroupLinksBy(ctx context.Context, column string) ([]domain.GroupCount, error) {
	return s.groupCounts, nil
}

func (s *stubRepository) GroupLinksByOrganisation(ctx context.Context) ([]domain.GroupCount, error) {
	return s.groupCounts, nil
}

func (s *stubRepository) QualityFindings(ctx context.Context) ([]domain.QualityFinding, error) {
	return s.findings, nil
}

func TestPopulateSampleDataRunsInDependencyOrder(t *testing.T) {
	ctx := context.Background()
	set, err := seed.Load(time.Now())
	if err != nil {
		t.Fatalf("load seed data: %v", err)
	}

	repo := &stubRepository{}
	service := NewProfileService(repo)

	result, err := service.PopulateSampleData(ctx, set)
	if err != nil {
		t.Fatalf("populate: %v", err)
	}

	want := []string{"organisation", "contactdetails", "relationship", "plannedprogramme", "networklink", "rebuild"}
	if len(repo.calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), repo.calls)
	}
	for i, call := range want {
		if repo.calls[i] != call {
			t.Fatalf("call %d = %s, want %s", i, repo.calls[i], call)
		}
	}

	if result.Organisations != 5 || result.NetworkLinks != 9 || result.UnifiedRows != 9 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestPopulateSampleDataRejectsDuplicateIDs(t *testing.T) {
	set, err := seed.Load(time.Now())
	if err != nil {
		t.Fatalf("load seed data: %v", err)
	}
	set.Organisations = append(set.Organisations, set.Organisations[0])

	repo := &stubRepository{}
	if _, err := NewProfileService(repo).PopulateSampleData(context.Background(), set); err == nil {
		t.Fatal("expected duplicate systemid error")
	}
	if len(repo.calls) != 0 {
		t.Fatalf("no inserts should run on invalid data, got %v", repo.calls)
	}
}

func TestPopulateSampleDataRejectsBadGeometry(t *testing.T) {
	set, err := seed.Load(time.Now())
	if err != nil {
		t.Fatalf("load seed data: %v", err)
	}
	set.NetworkLinks[0].Geometry = domain.NewLineString(domain.Coordinate{X: 1, Y: 1})

	repo := &stubRepository{}
	if _, err := NewProfileService(repo).PopulateSampleData(context.Background(), set); err == nil {
		t.Fatal("expected geometry validation error")
	}
	if len(repo.calls) != 0 {
		t.Fatalf("no inserts should run on invalid data, got %v", repo.calls)
	}
}

func TestPopulateSampleDataRejectsNilSet(t *testing.T) {
	if _, err := NewProfileService(&stubRepository{}).PopulateSampleData(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil dataset")
	}
}

func TestSeedCodelistsValidatesEntries(t *testing.T) {
	repo := &stubRepository{}
	service := NewProfileService(repo)
	ctx := context.Background()

	err := service.SeedCodelists(ctx, []domain.Codelist{{Table: "utilitytypevalue"}})
	if err == nil {
		t.Fatal("expected error for empty codelist")
	}

	err = service.SeedCodelists(ctx, []domain.Codelist{{
		Table: "utilitytypevalue",
		Entries: []domain.CodelistEntry{
			{SystemID: "fw-utl-001", Value: "Electricity"},
			{SystemID: "fw-utl-001", Value: "Gas"},
		},
	}})
	if err == nil {
		t.Fatal("expected error for duplicate codes")
	}

	err = service.SeedCodelists(ctx, []domain.Codelist{
		{Table: "utilitytypevalue", Entries: []domain.CodelistEntry{{SystemID: "fw-utl-001", Value: "Electricity"}}},
		{Table: "worktypevalue", Entries: []domain.CodelistEntry{{SystemID: "fw-wkt-001", Value: "New Installation"}}},
	})
	if err != nil {
		t.Fatalf("seed codelists: %v", err)
	}
	if len(repo.seededLists) != 2 || repo.seededLists[0] != "utilitytypevalue" {
		t.Fatalf("unexpected seeded lists: %v", repo.seededLists)
	}
}

func TestListLimitsAreClamped(t *testing.T) {
	repo := &stubRepository{}
	service := NewProfileService(repo)
	ctx := context.Background()

	if _, err := service.FutureWorks(ctx, 0); err != nil {
		t.Fatalf("future works: %v", err)
	}
	if repo.listLimit != 500 {
		t.Fatalf("default limit = %d, want 500", repo.listLimit)
	}

	if _, err := service.FutureWorks(ctx, 100000); err != nil {
		t.Fatalf("future works: %v", err)
	}
	if repo.listLimit != 5000 {
		t.Fatalf("clamped limit = %d, want 5000", repo.listLimit)
	}

	if _, err := service.Organisations(ctx, -1); err != nil {
		t.Fatalf("organisations: %v", err)
	}
	if repo.listLimit != 200 {
		t.Fatalf("default organisation limit = %d, want 200", repo.listLimit)
	}
}

func TestSummaryAssemblesReport(t *testing.T) {
	repo := &stubRepository{
		groupCounts: []domain.GroupCount{{Key: "Gas", Count: 2}},
		findings:    []domain.QualityFinding{{SystemID: "nl-bad", MissingFields: []string{"usrn"}}},
	}
	service := NewProfileService(repo)

	report, err := service.Summary(context.Background(), "test.gpkg")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if report.Path != "test.gpkg" {
		t.Fatalf("path %q", report.Path)
	}
	if report.GeneratedAt.IsZero() {
		t.Fatal("generated timestamp not set")
	}
	if len(report.TableCounts) != len(PrimaryTables) {
		t.Fatalf("expected %d table counts, got %d", len(PrimaryTables), len(report.TableCounts))
	}
	if report.ActiveLinks != 9 {
		t.Fatalf("active links = %d", report.ActiveLinks)
	}
	if report.EarliestPlannedStart != "2025-10-09" || report.LatestPlannedStart != "2026-01-22" {
		t.Fatalf("range %s..%s", report.EarliestPlannedStart, report.LatestPlannedStart)
	}
	for _, groups := range [][]domain.GroupCount{
		report.ByUtilityType, report.ByLinkStatus, report.BySchemeStatus,
		report.ByInstallationMethod, report.ByWorkType, report.ByOrganisation,
	} {
		if len(groups) != 1 || groups[0].Key != "Gas" {
			t.Fatalf("unexpected group breakdown: %+v", groups)
		}
	}
	if len(report.QualityFindings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(report.QualityFindings))
	}
}
