package domain

import "time"

// RecordEnvelope carries the lifecycle fields present on every base-table
// record in the profile.
type RecordEnvelope struct {
	SystemID                        string
	LifecycleStatus                 string
	DateLastUpdated                 time.Time
	DateOfLastLifecycleStatusChange time.Time
	SystemLoadDate                  time.Time
}

// StewardshipEnvelope is the extended MUDDI envelope carried by planned
// programmes and network links on top of the record envelope.
type StewardshipEnvelope struct {
	Certification                string
	ProviderAssignedID           string
	ProviderAssignedIDAutoIssued bool
	DataOwner                    string
	DataOwnerAssignedID          string
	DataSensitivityLevel         string
}

type Organisation struct {
	RecordEnvelope
	Name             string
	ShortName        string
	OrganisationType string
	SWACode          string
	WebsiteURL       string
}

type ContactDetails struct {
	RecordEnvelope
	OrganisationName   string
	ContactDetailsType string
	DepartmentName     string
	EmailAddress       string
	TelephoneNumber    string
	DataProviderID     string
}

// OrganisationContactLink is the association row between an organisation and
// one of its contacts. Both linked ids are logical references only; nothing
// in the container enforces them.
type OrganisationContactLink struct {
	RecordEnvelope
	LinkedOrganisationID   string
	LinkedContactDetailsID string
	DataProviderID         string
}

type PlannedProgramme struct {
	RecordEnvelope
	StewardshipEnvelope
	ProgrammeName        string
	ProgrammeType        string
	ProgrammeDescription string
	PlannedStartDate     string
	PlannedEndDate       string
	DataProviderID       string
}

type NetworkLink struct {
	RecordEnvelope
	StewardshipEnvelope
	Description               string
	FeatureType               string
	UtilityType               string
	UtilitySubtype            string
	PlannedInstallationDate   string
	PlannedMaterial           string
	PlannedInstallationMethod string
	PlannedDepth              float64
	PlannedDepthUnit          string
	ComponentType             string
	ComponentSubtype          string
	WorkType                  string
	SchemeStatus              string
	PlannedStartDate          string
	PlannedEndDate            string
	ConfidenceLevel           string
	LocaleReference           string
	LocaleReferenceType       string
	ObjectName                string
	ObjectOwner               string
	Operator                  string
	USRN                      string
	LinkStatus                string
	DataProviderID            string
	ProgrammeID               string
	Geometry                  LineString
}

// FutureWork is one row of the denormalised future_works_unified table.
// Pointer fields are the outer-join paths that may have no match.
type FutureWork struct {
	WorkID                string
	WorkName              string
	Description           string
	OrganisationName      *string
	OrganisationShortName *string
	OrganisationType      *string
	SWACode               *string
	UtilityType           string
	UtilitySubtype        string
	USRN                  string
	StreetName            string
	LinkStatus            string
	SchemeStatus          string
	WorkType              string
	PlannedStartDate      string
	PlannedEndDate        string
	ConfidenceLevel       string
	Material              string
	InstallationMethod    string
	DepthMetres           float64
	ProgrammeName         *string
	ProgrammeType         *string
	ContactName           *string
	ContactEmail          *string
	ContactPhone          *string
	LastUpdated           time.Time
	DataSensitivity       string
	Geometry              LineString
}

// CodelistEntry is one code/label pair in a codelist table. ApplicableDomains
// is only meaningful on the domain-tagged lists (utility subtype, material,
// installation method).
type CodelistEntry struct {
	SystemID          string
	Value             string
	ApplicableDomains string
}

// Codelist is a full enumeration destined for one codelist table, stamped
// with the version of the codelist set it belongs to.
type Codelist struct {
	Table        string
	Version      string
	VersionDate  time.Time
	DomainTagged bool
	Entries      []CodelistEntry
}

// LifecycleActive is the lifecycle status label that makes a record visible
// in the unified table.
const LifecycleActive = "Active"

type TableCount struct {
	Table string
	Count int64
}

type GroupCount struct {
	Key   string
	Count int64
}

// QualityFinding flags a network link missing one of the fields the profile
// expects every publishable record to carry.
type QualityFinding struct {
	SystemID      string
	ObjectName    string
	MissingFields []string
}

// SummaryReport is the read-only diagnostic output computed after
// population. It never affects stored data.
type SummaryReport struct {
	Path                 string
	GeneratedAt          time.Time
	TableCounts          []TableCount
	ActiveLinks          int64
	EarliestPlannedStart string
	LatestPlannedStart   string
	ByUtilityType        []GroupCount
	ByLinkStatus         []GroupCount
	BySchemeStatus       []GroupCount
	ByInstallationMethod []GroupCount
	ByWorkType           []GroupCount
	ByOrganisation       []GroupCount
	QualityFindings      []QualityFinding
}
