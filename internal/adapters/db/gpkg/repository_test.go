package gpkg

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/CHRISCARLON/uk-future-works-model/internal/domain"
	"github.com/CHRISCARLON/uk-future-works-model/internal/seed"
	"gorm.io/gorm"
)

func newContainer(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "futureworks_test.gpkg")
	db, err := Create(context.Background(), path)
	if err != nil {
		t.Fatalf("create geopackage: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db, path
}

func populate(t *testing.T, repo *ProfileRepository) *seed.Set {
	t.Helper()
	ctx := context.Background()

	set, err := seed.Load(time.Now())
	if err != nil {
		t.Fatalf("load seed data: %v", err)
	}
	for _, list := range set.Codelists {
		if err := repo.SeedCodelist(ctx, list); err != nil {
			t.Fatalf("seed codelist %s: %v", list.Table, err)
		}
	}
	if err := repo.InsertOrganisations(ctx, set.Organisations); err != nil {
		t.Fatalf("insert organisations: %v", err)
	}
	if err := repo.InsertContactDetails(ctx, set.Contacts); err != nil {
		t.Fatalf("insert contacts: %v", err)
	}
	if err := repo.InsertContactLinks(ctx, set.ContactLinks); err != nil {
		t.Fatalf("insert contact links: %v", err)
	}
	if err := repo.InsertProgrammes(ctx, set.Programmes); err != nil {
		t.Fatalf("insert programmes: %v", err)
	}
	if err := repo.InsertNetworkLinks(ctx, set.NetworkLinks); err != nil {
		t.Fatalf("insert network links: %v", err)
	}
	return set
}

func TestCreateWritesGeoPackageMetadata(t *testing.T) {
	db, _ := newContainer(t)

	var appID int64
	if err := db.Raw("PRAGMA application_id").Scan(&appID).Error; err != nil {
		t.Fatalf("read application_id: %v", err)
	}
	if appID != 0x47504B47 {
		t.Fatalf("application_id = %#x, want GPKG magic", appID)
	}

	var srsCount int64
	if err := db.Table("gpkg_spatial_ref_sys").Count(&srsCount).Error; err != nil {
		t.Fatalf("count srs rows: %v", err)
	}
	if srsCount != 4 {
		t.Fatalf("expected 4 spatial ref systems, got %d", srsCount)
	}

	var geomTables []string
	if err := db.Raw("SELECT table_name FROM gpkg_geometry_columns ORDER BY table_name").Scan(&geomTables).Error; err != nil {
		t.Fatalf("read geometry columns: %v", err)
	}
	if len(geomTables) != 2 || geomTables[0] != "future_works_unified" || geomTables[1] != "networklink" {
		t.Fatalf("unexpected geometry tables: %v", geomTables)
	}
}

func TestCreateDiscardsExistingContainer(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "futureworks_test.gpkg")

	db, err := Create(ctx, path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo := NewProfileRepository(db)
	populate(t, repo)
	if err := Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = Create(ctx, path)
	if err != nil {
		t.Fatalf("recreate: %v", err)
	}
	defer func() { _ = Close(db) }()

	counts, err := NewProfileRepository(db).TableCounts(ctx, []string{"organisation", "networklink"})
	if err != nil {
		t.Fatalf("table counts: %v", err)
	}
	for _, tc := range counts {
		if tc.Count != 0 {
			t.Fatalf("expected empty %s after recreate, got %d rows", tc.Table, tc.Count)
		}
	}
}

func TestOpenExistingRequiresFile(t *testing.T) {
	if _, err := OpenExisting(filepath.Join(t.TempDir(), "missing.gpkg")); err == nil {
		t.Fatal("expected error opening missing geopackage")
	}
}

func TestRebuildUnifiedJoinsAllSources(t *testing.T) {
	ctx := context.Background()
	db, _ := newContainer(t)
	repo := NewProfileRepository(db)
	populate(t, repo)

	rows, err := repo.RebuildUnified(ctx)
	if err != nil {
		t.Fatalf("rebuild unified: %v", err)
	}
	if rows != 9 {
		t.Fatalf("expected 9 unified rows, got %d", rows)
	}

	works, err := repo.ListFutureWorks(ctx, 0)
	if err != nil {
		t.Fatalf("list future works: %v", err)
	}
	if len(works) != 9 {
		t.Fatalf("expected 9 future works, got %d", len(works))
	}

	byID := make(map[string]domain.FutureWork, len(works))
	for _, fw := range works {
		byID[fw.WorkID] = fw
	}

	first := byID["nl-001"]
	if first.WorkName != "Park Lane Gas Main" {
		t.Fatalf("unexpected work name %q", first.WorkName)
	}
	if first.OrganisationName == nil || *first.OrganisationName != "Northern Gas Networks" {
		t.Fatalf("unexpected organisation: %v", first.OrganisationName)
	}
	if first.ContactName == nil || *first.ContactName != "Planning Coordinator - Network Planning" {
		t.Fatalf("unexpected contact name: %v", first.ContactName)
	}
	if first.ProgrammeName == nil || *first.ProgrammeName != "Leeds City Centre Gas Main Replacement 2025" {
		t.Fatalf("unexpected programme: %v", first.ProgrammeName)
	}
	if first.StreetName != "Park Lane" {
		t.Fatalf("unexpected street name %q", first.StreetName)
	}
	if first.Geometry.SRSID != domain.BritishNationalGrid {
		t.Fatalf("expected srs 27700, got %d", first.Geometry.SRSID)
	}
	wantPoints := []domain.Coordinate{{X: 430100, Y: 433875}, {X: 430300, Y: 433875}}
	if len(first.Geometry.Points) != len(wantPoints) {
		t.Fatalf("expected %d points, got %d", len(wantPoints), len(first.Geometry.Points))
	}
	for i, p := range wantPoints {
		if first.Geometry.Points[i] != p {
			t.Fatalf("point %d = %+v, want %+v", i, first.Geometry.Points[i], p)
		}
	}

	// nl-009 carries no programme reference, so its programme columns stay
	// NULL while the organisation and contact paths still resolve.
	corridor := byID["nl-009"]
	if corridor.ProgrammeName != nil || corridor.ProgrammeType != nil {
		t.Fatalf("expected nil programme fields, got %v / %v", corridor.ProgrammeName, corridor.ProgrammeType)
	}
	if corridor.OrganisationName == nil || *corridor.OrganisationName != "Leeds City Council Highways" {
		t.Fatalf("unexpected organisation: %v", corridor.OrganisationName)
	}
	if corridor.ContactName == nil || *corridor.ContactName != "Emergency Contact - Highway Services" {
		t.Fatalf("unexpected contact name: %v", corridor.ContactName)
	}
}

func TestRebuildUnifiedKeepsDanglingProviderRows(t *testing.T) {
	ctx := context.Background()
	db, _ := newContainer(t)
	repo := NewProfileRepository(db)
	populate(t, repo)

	// Provider id matches no organisation row; the link must still appear in
	// the unified table with the organisation and contact paths NULL.
	orphan := domain.NetworkLink{
		RecordEnvelope: domain.RecordEnvelope{
			SystemID:        "nl-010",
			LifecycleStatus: domain.LifecycleActive,
		},
		ObjectName:      "Unattributed Diversion",
		UtilityType:     "Water",
		USRN:            "40708901",
		LinkStatus:      "New",
		SchemeStatus:    "Proposed",
		ConfidenceLevel: "Possible",
		DataProviderID:  "org-999",
		Geometry: domain.NewLineString(
			domain.Coordinate{X: 428000, Y: 433000},
			domain.Coordinate{X: 428100, Y: 433000},
		),
	}
	if err := repo.InsertNetworkLinks(ctx, []domain.NetworkLink{orphan}); err != nil {
		t.Fatalf("insert dangling link: %v", err)
	}

	rows, err := repo.RebuildUnified(ctx)
	if err != nil {
		t.Fatalf("rebuild unified: %v", err)
	}
	if rows != 10 {
		t.Fatalf("expected 10 unified rows, got %d", rows)
	}

	works, err := repo.ListFutureWorks(ctx, 0)
	if err != nil {
		t.Fatalf("list future works: %v", err)
	}
	var dangling *domain.FutureWork
	for i := range works {
		if works[i].WorkID == "nl-010" {
			dangling = &works[i]
		}
	}
	if dangling == nil {
		t.Fatal("dangling-provider link missing from unified table")
	}
	if dangling.WorkName != "Unattributed Diversion" {
		t.Fatalf("unexpected work name %q", dangling.WorkName)
	}
	if dangling.OrganisationName != nil || dangling.OrganisationShortName != nil ||
		dangling.OrganisationType != nil || dangling.SWACode != nil {
		t.Fatalf("expected nil organisation fields, got %+v", dangling)
	}
	if dangling.ContactName != nil || dangling.ContactEmail != nil || dangling.ContactPhone != nil {
		t.Fatalf("expected nil contact fields, got %+v", dangling)
	}

	byOrg, err := repo.GroupLinksByOrganisation(ctx)
	if err != nil {
		t.Fatalf("group by organisation: %v", err)
	}
	orgCounts := make(map[string]int64, len(byOrg))
	for _, g := range byOrg {
		orgCounts[g.Key] = g.Count
	}
	if orgCounts["Unknown"] != 1 {
		t.Fatalf("expected 1 link under Unknown, got %d (%+v)", orgCounts["Unknown"], byOrg)
	}
}

func TestRebuildUnifiedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	db, _ := newContainer(t)
	repo := NewProfileRepository(db)
	populate(t, repo)

	if _, err := repo.RebuildUnified(ctx); err != nil {
		t.Fatalf("first rebuild: %v", err)
	}
	rows, err := repo.RebuildUnified(ctx)
	if err != nil {
		t.Fatalf("second rebuild: %v", err)
	}
	if rows != 9 {
		t.Fatalf("expected 9 rows after second rebuild, got %d", rows)
	}

	counts, err := repo.TableCounts(ctx, []string{"future_works_unified"})
	if err != nil {
		t.Fatalf("table counts: %v", err)
	}
	if counts[0].Count != 9 {
		t.Fatalf("expected 9 stored rows, got %d", counts[0].Count)
	}
}

func TestRebuildUnifiedSkipsInactiveLinks(t *testing.T) {
	ctx := context.Background()
	db, _ := newContainer(t)
	repo := NewProfileRepository(db)
	populate(t, repo)

	if err := db.Exec(`UPDATE networklink SET lifecyclestatus = 'Cancelled' WHERE systemid = 'nl-002'`).Error; err != nil {
		t.Fatalf("deactivate link: %v", err)
	}

	rows, err := repo.RebuildUnified(ctx)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if rows != 8 {
		t.Fatalf("expected 8 rows with one inactive link, got %d", rows)
	}
}

func TestTableCountsAfterPopulation(t *testing.T) {
	ctx := context.Background()
	db, _ := newContainer(t)
	repo := NewProfileRepository(db)
	populate(t, repo)
	if _, err := repo.RebuildUnified(ctx); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	want := map[string]int64{
		"organisation":    5,
		"contactdetails":  5,
		"relationship_organisationtocontactdetails": 5,
		"plannedprogramme":     4,
		"networklink":          9,
		"future_works_unified": 9,
	}
	tables := make([]string, 0, len(want))
	for table := range want {
		tables = append(tables, table)
	}
	counts, err := repo.TableCounts(ctx, tables)
	if err != nil {
		t.Fatalf("table counts: %v", err)
	}
	for _, tc := range counts {
		if tc.Count != want[tc.Table] {
			t.Fatalf("%s: got %d rows, want %d", tc.Table, tc.Count, want[tc.Table])
		}
	}

	if _, err := repo.TableCounts(ctx, []string{"sqlite_master"}); err == nil {
		t.Fatal("expected error for non-profile table")
	}
}

func TestGetNetworkLinkRoundTripsGeometry(t *testing.T) {
	ctx := context.Background()
	db, _ := newContainer(t)
	repo := NewProfileRepository(db)
	populate(t, repo)

	link, err := repo.GetNetworkLink(ctx, "nl-005")
	if err != nil {
		t.Fatalf("get network link: %v", err)
	}
	if link.UtilityType != "Electricity" || link.UtilitySubtype != "High Voltage" {
		t.Fatalf("unexpected utility fields: %s / %s", link.UtilityType, link.UtilitySubtype)
	}
	if link.ProgrammeID != "prg-003" {
		t.Fatalf("unexpected programme id %q", link.ProgrammeID)
	}
	if len(link.Geometry.Points) != 3 || link.Geometry.SRSID != domain.BritishNationalGrid {
		t.Fatalf("unexpected geometry: %+v", link.Geometry)
	}

	if _, err := repo.GetNetworkLink(ctx, "nl-999"); err == nil {
		t.Fatal("expected error for unknown link")
	}
}

func TestGroupAndRangeQueries(t *testing.T) {
	ctx := context.Background()
	db, _ := newContainer(t)
	repo := NewProfileRepository(db)
	set := populate(t, repo)

	active, err := repo.CountActiveLinks(ctx)
	if err != nil {
		t.Fatalf("count active links: %v", err)
	}
	if active != 9 {
		t.Fatalf("expected 9 active links, got %d", active)
	}

	byType, err := repo.GroupLinksBy(ctx, "utilitytype")
	if err != nil {
		t.Fatalf("group by utility type: %v", err)
	}
	want := []domain.GroupCount{
		{Key: "Electricity", Count: 2},
		{Key: "Gas", Count: 2},
		{Key: "Other", Count: 1},
		{Key: "Telecommunications", Count: 2},
		{Key: "Water", Count: 2},
	}
	if len(byType) != len(want) {
		t.Fatalf("expected %d groups, got %d: %+v", len(want), len(byType), byType)
	}
	for i, g := range want {
		if byType[i] != g {
			t.Fatalf("group %d = %+v, want %+v", i, byType[i], g)
		}
	}

	if _, err := repo.GroupLinksBy(ctx, "systemid; DROP TABLE networklink"); err == nil {
		t.Fatal("expected error for unsupported group column")
	}

	byOrg, err := repo.GroupLinksByOrganisation(ctx)
	if err != nil {
		t.Fatalf("group by organisation: %v", err)
	}
	orgCounts := make(map[string]int64, len(byOrg))
	for _, g := range byOrg {
		orgCounts[g.Key] = g.Count
	}
	if orgCounts["Northern Gas Networks"] != 2 || orgCounts["Leeds City Council Highways"] != 1 {
		t.Fatalf("unexpected organisation groups: %+v", byOrg)
	}

	earliest, latest, err := repo.PlannedStartRange(ctx)
	if err != nil {
		t.Fatalf("planned start range: %v", err)
	}
	wantEarliest, wantLatest := set.NetworkLinks[0].PlannedStartDate, set.NetworkLinks[0].PlannedStartDate
	for _, nl := range set.NetworkLinks {
		if nl.PlannedStartDate < wantEarliest {
			wantEarliest = nl.PlannedStartDate
		}
		if nl.PlannedStartDate > wantLatest {
			wantLatest = nl.PlannedStartDate
		}
	}
	if earliest != wantEarliest || latest != wantLatest {
		t.Fatalf("range %s..%s, want %s..%s", earliest, latest, wantEarliest, wantLatest)
	}
}

func TestListCodelistGuardsAndTags(t *testing.T) {
	ctx := context.Background()
	db, _ := newContainer(t)
	repo := NewProfileRepository(db)
	populate(t, repo)

	types, err := repo.ListCodelist(ctx, "utilitytypevalue")
	if err != nil {
		t.Fatalf("list utilitytypevalue: %v", err)
	}
	if len(types) != 10 {
		t.Fatalf("expected 10 utility types, got %d", len(types))
	}
	if types[0].SystemID != "fw-utl-001" || types[0].Value != "Electricity" {
		t.Fatalf("unexpected first entry: %+v", types[0])
	}
	if types[0].ApplicableDomains != "" {
		t.Fatalf("plain codelist should carry no domain tags, got %q", types[0].ApplicableDomains)
	}

	materials, err := repo.ListCodelist(ctx, "materialvalue")
	if err != nil {
		t.Fatalf("list materialvalue: %v", err)
	}
	tagged := make(map[string]string, len(materials))
	for _, m := range materials {
		tagged[m.Value] = m.ApplicableDomains
	}
	if tagged["Ductile Iron"] != "Water" {
		t.Fatalf("expected Ductile Iron tagged Water, got %q", tagged["Ductile Iron"])
	}

	if _, err := repo.ListCodelist(ctx, "users"); err == nil {
		t.Fatal("expected error for unknown codelist table")
	}
	if err := repo.SeedCodelist(ctx, domain.Codelist{Table: "users"}); err == nil {
		t.Fatal("expected error seeding unknown codelist table")
	}
}

func TestQualityFindingsFlagMissingFields(t *testing.T) {
	ctx := context.Background()
	db, _ := newContainer(t)
	repo := NewProfileRepository(db)
	populate(t, repo)

	findings, err := repo.QualityFindings(ctx)
	if err != nil {
		t.Fatalf("quality findings: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("sample dataset should be complete, got findings %+v", findings)
	}

	incomplete := domain.NetworkLink{
		RecordEnvelope: domain.RecordEnvelope{
			SystemID:        "nl-bad",
			LifecycleStatus: domain.LifecycleActive,
		},
		ObjectName:  "Incomplete Link",
		UtilityType: "Gas",
		Geometry: domain.NewLineString(
			domain.Coordinate{X: 1, Y: 1},
			domain.Coordinate{X: 2, Y: 2},
		),
	}
	if err := repo.InsertNetworkLinks(ctx, []domain.NetworkLink{incomplete}); err != nil {
		t.Fatalf("insert incomplete link: %v", err)
	}

	findings, err = repo.QualityFindings(ctx)
	if err != nil {
		t.Fatalf("quality findings: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].SystemID != "nl-bad" || len(findings[0].MissingFields) != 4 {
		t.Fatalf("unexpected finding: %+v", findings[0])
	}
}
