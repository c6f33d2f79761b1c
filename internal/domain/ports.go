package domain

import "context"

type ProfileRepository interface {
	SeedCodelist(ctx context.Context, list Codelist) error

	InsertOrganisations(ctx context.Context, values []Organisation) error
	InsertContactDetails(ctx context.Context, values []ContactDetails) error
	InsertContactLinks(ctx context.Context, values []OrganisationContactLink) error
	InsertProgrammes(ctx context.Context, values []PlannedProgramme) error
	InsertNetworkLinks(ctx context.Context, values []NetworkLink) error

	// RebuildUnified truncates future_works_unified and refills it from the
	// outer-join chain over the base tables. Returns the row count written.
	RebuildUnified(ctx context.Context) (int64, error)

	GetNetworkLink(ctx context.Context, systemID string) (NetworkLink, error)
	ListFutureWorks(ctx context.Context, limit int) ([]FutureWork, error)
	ListOrganisations(ctx context.Context, limit int) ([]Organisation, error)
	ListCodelist(ctx context.Context, table string) ([]CodelistEntry, error)

	TableCounts(ctx context.Context, tables []string) ([]TableCount, error)
	CountActiveLinks(ctx context.Context) (int64, error)
	PlannedStartRange(ctx context.Context) (earliest, latest string, err error)
	GroupLinksBy(ctx context.Context, column string) ([]GroupCount, error)
	GroupLinksByOrganisation(ctx context.Context) ([]GroupCount, error)
	QualityFindings(ctx context.Context) ([]QualityFinding, error)
}
