package gpkg

import (
	"context"
	"fmt"
	"time"

	"github.com/CHRISCARLON/uk-future-works-model/internal/domain"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// profileTables guards every identifier that gets spliced into raw SQL.
var profileTables = map[string]bool{
	"organisation":              true,
	"contactdetails":            true,
	"relationship_organisationtocontactdetails": true,
	"plannedprogramme":          true,
	"networklink":               true,
	"future_works_unified":      true,
	"lifecyclestatusvalue":      true,
	"organisationtypevalue":     true,
	"contactdetailstypevalue":   true,
	"plannedworkstatusvalue":    true,
	"programmetypevalue":        true,
	"worktypevalue":             true,
	"confidencelevelvalue":      true,
	"utilitytypevalue":          true,
	"utilitysubtypevalue":       true,
	"materialvalue":             true,
	"installationmethodvalue":   true,
	"locationtypevalue":         true,
	"dataprovenancevalue":       true,
	"measurementunitsvalue":     true,
	"datasensitivitylevelvalue": true,
	"linkstatusvalue":           true,
}

var domainTaggedCodelists = map[string]bool{
	"utilitysubtypevalue":     true,
	"materialvalue":           true,
	"installationmethodvalue": true,
}

var linkGroupColumns = map[string]bool{
	"utilitytype":               true,
	"linkstatus":                true,
	"schemestatus":              true,
	"plannedinstallationmethod": true,
	"worktype":                  true,
}

const (
	datetimeFormat = time.RFC3339
	dateFormat     = "2006-01-02"
)

func formatDatetime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(datetimeFormat)
}

// parseDatetime maps empty or unparseable text to the zero time. The profile
// carries third-party data without rejecting it, so a corrupt timestamp reads
// the same as an absent one; the stored text stays untouched either way.
func parseDatetime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", dateFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r *ProfileRepository) SeedCodelist(ctx context.Context, list domain.Codelist) error {
	if !profileTables[list.Table] {
		return fmt.Errorf("unknown codelist table %q", list.Table)
	}

	rows := make([]codelistRow, 0, len(list.Entries))
	now := formatDatetime(time.Now())
	for _, e := range list.Entries {
		row := codelistRow{
			SystemID:        e.SystemID,
			SystemLoadDate:  now,
			DateLastUpdated: now,
			VersionNumber:   list.Version,
			VersionDate:     formatDatetime(list.VersionDate),
			Value:           e.Value,
		}
		if domainTaggedCodelists[list.Table] {
			domains := e.ApplicableDomains
			row.ApplicableDomains = &domains
		}
		rows = append(rows, row)
	}

	tx := r.db.WithContext(ctx).Table(list.Table)
	if !domainTaggedCodelists[list.Table] {
		tx = tx.Omit("applicabledomains")
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed codelist %s: %w", list.Table, err)
	}
	return nil
}

func (r *ProfileRepository) InsertOrganisations(ctx context.Context, values []domain.Organisation) error {
	rows := make([]organisationRow, 0, len(values))
	for _, v := range values {
		rows = append(rows, organisationRow{
			SystemID:                        v.SystemID,
			LifecycleStatus:                 v.LifecycleStatus,
			DateLastUpdated:                 formatDatetime(v.DateLastUpdated),
			DateOfLastLifecycleStatusChange: formatDatetime(v.DateOfLastLifecycleStatusChange),
			SystemLoadDate:                  formatDatetime(v.SystemLoadDate),
			Name:                            v.Name,
			ShortName:                       v.ShortName,
			OrganisationType:                v.OrganisationType,
			SWACode:                         v.SWACode,
			WebsiteURL:                      v.WebsiteURL,
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert organisation rows: %w", err)
	}
	return nil
}

func (r *ProfileRepository) InsertContactDetails(ctx context.Context, values []domain.ContactDetails) error {
	rows := make([]contactDetailsRow, 0, len(values))
	for _, v := range values {
		rows = append(rows, contactDetailsRow{
			SystemID:                        v.SystemID,
			LifecycleStatus:                 v.LifecycleStatus,
			DateLastUpdated:                 formatDatetime(v.DateLastUpdated),
			DateOfLastLifecycleStatusChange: formatDatetime(v.DateOfLastLifecycleStatusChange),
			SystemLoadDate:                  formatDatetime(v.SystemLoadDate),
			OrganisationName:                v.OrganisationName,
			ContactDetailsType:              v.ContactDetailsType,
			DepartmentName:                  v.DepartmentName,
			EmailAddress:                    v.EmailAddress,
			TelephoneNumber:                 v.TelephoneNumber,
			DataProviderID:                  v.DataProviderID,
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert contactdetails rows: %w", err)
	}
	return nil
}

func (r *ProfileRepository) InsertContactLinks(ctx context.Context, values []domain.OrganisationContactLink) error {
	rows := make([]contactLinkRow, 0, len(values))
	for _, v := range values {
		rows = append(rows, contactLinkRow{
			SystemID:                        v.SystemID,
			LifecycleStatus:                 v.LifecycleStatus,
			DateLastUpdated:                 formatDatetime(v.DateLastUpdated),
			DateOfLastLifecycleStatusChange: formatDatetime(v.DateOfLastLifecycleStatusChange),
			SystemLoadDate:                  formatDatetime(v.SystemLoadDate),
			LinkedOrganisationID:            v.LinkedOrganisationID,
			LinkedContactDetailsID:          v.LinkedContactDetailsID,
			DataProviderID:                  v.DataProviderID,
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert relationship rows: %w", err)
	}
	return nil
}

func (r *ProfileRepository) InsertProgrammes(ctx context.Context, values []domain.PlannedProgramme) error {
	rows := make([]programmeRow, 0, len(values))
	for _, v := range values {
		auto := 0
		if v.ProviderAssignedIDAutoIssued {
			auto = 1
		}
		rows = append(rows, programmeRow{
			SystemID:                        v.SystemID,
			LifecycleStatus:                 v.LifecycleStatus,
			DateLastUpdated:                 formatDatetime(v.DateLastUpdated),
			DateOfLastLifecycleStatusChange: formatDatetime(v.DateOfLastLifecycleStatusChange),
			SystemLoadDate:                  formatDatetime(v.SystemLoadDate),
			Certification:                   v.Certification,
			ProviderAssignedID:              v.ProviderAssignedID,
			ProviderAssignedIDAutoIssued:    auto,
			DataOwner:                       v.DataOwner,
			DataOwnerAssignedID:             v.DataOwnerAssignedID,
			DataSensitivityLevel:            v.DataSensitivityLevel,
			ProgrammeName:                   v.ProgrammeName,
			ProgrammeType:                   v.ProgrammeType,
			ProgrammeDescription:            v.ProgrammeDescription,
			PlannedStartDate:                v.PlannedStartDate,
			PlannedEndDate:                  v.PlannedEndDate,
			DataProviderID:                  v.DataProviderID,
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert plannedprogramme rows: %w", err)
	}
	return nil
}

func (r *ProfileRepository) InsertNetworkLinks(ctx context.Context, values []domain.NetworkLink) error {
	rows := make([]networkLinkRow, 0, len(values))
	for _, v := range values {
		geom, err := EncodeLineString(v.Geometry)
		if err != nil {
			return fmt.Errorf("network link %s: %w", v.SystemID, err)
		}
		auto := 0
		if v.ProviderAssignedIDAutoIssued {
			auto = 1
		}
		var programmeID *string
		if v.ProgrammeID != "" {
			id := v.ProgrammeID
			programmeID = &id
		}
		rows = append(rows, networkLinkRow{
			Geom:                            geom,
			SystemID:                        v.SystemID,
			LifecycleStatus:                 v.LifecycleStatus,
			DateLastUpdated:                 formatDatetime(v.DateLastUpdated),
			DateOfLastLifecycleStatusChange: formatDatetime(v.DateOfLastLifecycleStatusChange),
			SystemLoadDate:                  formatDatetime(v.SystemLoadDate),
			Certification:                   v.Certification,
			ProviderAssignedID:              v.ProviderAssignedID,
			ProviderAssignedIDAutoIssued:    auto,
			DataOwner:                       v.DataOwner,
			DataOwnerAssignedID:             v.DataOwnerAssignedID,
			DataSensitivityLevel:            v.DataSensitivityLevel,
			Description:                     v.Description,
			FeatureType:                     v.FeatureType,
			UtilityType:                     v.UtilityType,
			UtilitySubtype:                  v.UtilitySubtype,
			PlannedInstallationDate:         v.PlannedInstallationDate,
			PlannedMaterial:                 v.PlannedMaterial,
			PlannedInstallationMethod:       v.PlannedInstallationMethod,
			PlannedDepth:                    v.PlannedDepth,
			PlannedDepthUnit:                v.PlannedDepthUnit,
			ComponentType:                   v.ComponentType,
			ComponentSubtype:                v.ComponentSubtype,
			WorkType:                        v.WorkType,
			SchemeStatus:                    v.SchemeStatus,
			PlannedStartDate:                v.PlannedStartDate,
			PlannedEndDate:                  v.PlannedEndDate,
			ConfidenceLevel:                 v.ConfidenceLevel,
			LocaleReference:                 v.LocaleReference,
			LocaleReferenceType:             v.LocaleReferenceType,
			ObjectName:                      v.ObjectName,
			ObjectOwner:                     v.ObjectOwner,
			Operator:                        v.Operator,
			USRN:                            v.USRN,
			LinkStatus:                      v.LinkStatus,
			DataProviderID:                  v.DataProviderID,
			ProgrammeID:                     programmeID,
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert networklink rows: %w", err)
	}
	return nil
}

// RebuildUnified drops every row of future_works_unified and refills it from
// the outer-join chain over the base tables. The projected column list must
// match the table declared in migration 00003 exactly.
func (r *ProfileRepository) RebuildUnified(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx)

	if err := tx.Exec(`DELETE FROM future_works_unified`).Error; err != nil {
		return 0, fmt.Errorf("truncate future_works_unified: %w", err)
	}

	res := tx.Exec(`
		INSERT INTO future_works_unified (
			work_id, work_name, description,
			organisation_name, organisation_shortname, organisation_type, swa_code,
			utility_type, utility_subtype, usrn, street_name,
			link_status, scheme_status, work_type,
			planned_start_date, planned_end_date, confidence_level,
			material, installation_method, depth_metres,
			programme_name, programme_type,
			contact_name, contact_email, contact_phone,
			last_updated, data_sensitivity, geom
		)
		SELECT
			nl.systemid,
			nl.objectname,
			nl.description,
			org.name,
			org.shortname,
			org.organisationtype,
			org.swacode,
			nl.utilitytype,
			nl.utilitysubtype,
			nl.usrn,
			nl.localereference,
			nl.linkstatus,
			nl.schemestatus,
			nl.worktype,
			nl.plannedstartdate,
			nl.plannedenddate,
			nl.confidencelevel,
			nl.plannedmaterial,
			nl.plannedinstallationmethod,
			nl.planneddepth_depth,
			prog.programmename,
			prog.programmetype,
			cd.contactdetailstype || ' - ' || cd.departmentname,
			cd.emailaddress,
			cd.telephonenumber,
			nl.datelastupdated,
			nl.datasensitivitylevel,
			nl.geom
		FROM networklink nl
		LEFT JOIN organisation org ON nl.dataproviderid_fk = org.systemid
		LEFT JOIN plannedprogramme prog ON nl.programmeid_fk = prog.systemid
		LEFT JOIN relationship_organisationtocontactdetails rel ON org.systemid = rel.linkedorganisationid
		LEFT JOIN contactdetails cd ON rel.linkedcontactdetailsid = cd.systemid
		WHERE nl.lifecyclestatus = ?
	`, domain.LifecycleActive)
	if res.Error != nil {
		return 0, fmt.Errorf("rebuild future_works_unified: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ProfileRepository) GetNetworkLink(ctx context.Context, systemID string) (domain.NetworkLink, error) {
	var row networkLinkRow
	if err := r.db.WithContext(ctx).Where("systemid = ?", systemID).First(&row).Error; err != nil {
		return domain.NetworkLink{}, fmt.Errorf("get network link %s: %w", systemID, err)
	}

	geom, err := DecodeLineString(row.Geom)
	if err != nil {
		return domain.NetworkLink{}, fmt.Errorf("network link %s geometry: %w", systemID, err)
	}

	programmeID := ""
	if row.ProgrammeID != nil {
		programmeID = *row.ProgrammeID
	}
	return domain.NetworkLink{
		RecordEnvelope: domain.RecordEnvelope{
			SystemID:                        row.SystemID,
			LifecycleStatus:                 row.LifecycleStatus,
			DateLastUpdated:                 parseDatetime(row.DateLastUpdated),
			DateOfLastLifecycleStatusChange: parseDatetime(row.DateOfLastLifecycleStatusChange),
			SystemLoadDate:                  parseDatetime(row.SystemLoadDate),
		},
		StewardshipEnvelope: domain.StewardshipEnvelope{
			Certification:                row.Certification,
			ProviderAssignedID:           row.ProviderAssignedID,
			ProviderAssignedIDAutoIssued: row.ProviderAssignedIDAutoIssued != 0,
			DataOwner:                    row.DataOwner,
			DataOwnerAssignedID:          row.DataOwnerAssignedID,
			DataSensitivityLevel:         row.DataSensitivityLevel,
		},
		Description:               row.Description,
		FeatureType:               row.FeatureType,
		UtilityType:               row.UtilityType,
		UtilitySubtype:            row.UtilitySubtype,
		PlannedInstallationDate:   row.PlannedInstallationDate,
		PlannedMaterial:           row.PlannedMaterial,
		PlannedInstallationMethod: row.PlannedInstallationMethod,
		PlannedDepth:              row.PlannedDepth,
		PlannedDepthUnit:          row.PlannedDepthUnit,
		ComponentType:             row.ComponentType,
		ComponentSubtype:          row.ComponentSubtype,
		WorkType:                  row.WorkType,
		SchemeStatus:              row.SchemeStatus,
		PlannedStartDate:          row.PlannedStartDate,
		PlannedEndDate:            row.PlannedEndDate,
		ConfidenceLevel:           row.ConfidenceLevel,
		LocaleReference:           row.LocaleReference,
		LocaleReferenceType:       row.LocaleReferenceType,
		ObjectName:                row.ObjectName,
		ObjectOwner:               row.ObjectOwner,
		Operator:                  row.Operator,
		USRN:                      row.USRN,
		LinkStatus:                row.LinkStatus,
		DataProviderID:            row.DataProviderID,
		ProgrammeID:               programmeID,
		Geometry:                  geom,
	}, nil
}

func (r *ProfileRepository) ListFutureWorks(ctx context.Context, limit int) ([]domain.FutureWork, error) {
	var rows []futureWorkRow
	q := r.db.WithContext(ctx).Order("fid")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list future works: %w", err)
	}

	out := make([]domain.FutureWork, 0, len(rows))
	for _, row := range rows {
		geom, err := DecodeLineString(row.Geom)
		if err != nil {
			return nil, fmt.Errorf("future work %s geometry: %w", row.WorkID, err)
		}
		out = append(out, domain.FutureWork{
			WorkID:                row.WorkID,
			WorkName:              row.WorkName,
			Description:           row.Description,
			OrganisationName:      row.OrganisationName,
			OrganisationShortName: row.OrganisationShortName,
			OrganisationType:      row.OrganisationType,
			SWACode:               row.SWACode,
			UtilityType:           row.UtilityType,
			UtilitySubtype:        row.UtilitySubtype,
			USRN:                  row.USRN,
			StreetName:            row.StreetName,
			LinkStatus:            row.LinkStatus,
			SchemeStatus:          row.SchemeStatus,
			WorkType:              row.WorkType,
			PlannedStartDate:      row.PlannedStartDate,
			PlannedEndDate:        row.PlannedEndDate,
			ConfidenceLevel:       row.ConfidenceLevel,
			Material:              row.Material,
			InstallationMethod:    row.InstallationMethod,
			DepthMetres:           row.DepthMetres,
			ProgrammeName:         row.ProgrammeName,
			ProgrammeType:         row.ProgrammeType,
			ContactName:           row.ContactName,
			ContactEmail:          row.ContactEmail,
			ContactPhone:          row.ContactPhone,
			LastUpdated:           parseDatetime(row.LastUpdated),
			DataSensitivity:       row.DataSensitivity,
			Geometry:              geom,
		})
	}
	return out, nil
}

func (r *ProfileRepository) ListOrganisations(ctx context.Context, limit int) ([]domain.Organisation, error) {
	var rows []organisationRow
	q := r.db.WithContext(ctx).Order("fid")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}

	out := make([]domain.Organisation, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Organisation{
			RecordEnvelope: domain.RecordEnvelope{
				SystemID:                        row.SystemID,
				LifecycleStatus:                 row.LifecycleStatus,
				DateLastUpdated:                 parseDatetime(row.DateLastUpdated),
				DateOfLastLifecycleStatusChange: parseDatetime(row.DateOfLastLifecycleStatusChange),
				SystemLoadDate:                  parseDatetime(row.SystemLoadDate),
			},
			Name:             row.Name,
			ShortName:        row.ShortName,
			OrganisationType: row.OrganisationType,
			SWACode:          row.SWACode,
			WebsiteURL:       row.WebsiteURL,
		})
	}
	return out, nil
}

func (r *ProfileRepository) ListCodelist(ctx context.Context, table string) ([]domain.CodelistEntry, error) {
	if !profileTables[table] {
		return nil, fmt.Errorf("unknown codelist table %q", table)
	}

	cols := "systemid, value"
	if domainTaggedCodelists[table] {
		cols += ", applicabledomains"
	}
	var rows []codelistRow
	if err := r.db.WithContext(ctx).Table(table).Select(cols).Order("fid").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list codelist %s: %w", table, err)
	}

	out := make([]domain.CodelistEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.CodelistEntry{SystemID: row.SystemID, Value: row.Value}
		if row.ApplicableDomains != nil {
			entry.ApplicableDomains = *row.ApplicableDomains
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *ProfileRepository) TableCounts(ctx context.Context, tables []string) ([]domain.TableCount, error) {
	out := make([]domain.TableCount, 0, len(tables))
	for _, table := range tables {
		if !profileTables[table] {
			return nil, fmt.Errorf("unknown profile table %q", table)
		}
		var count int64
		if err := r.db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out = append(out, domain.TableCount{Table: table, Count: count})
	}
	return out, nil
}

func (r *ProfileRepository) CountActiveLinks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("networklink").
		Where("lifecyclestatus = ?", domain.LifecycleActive).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count active links: %w", err)
	}
	return count, nil
}

func (r *ProfileRepository) PlannedStartRange(ctx context.Context) (string, string, error) {
	var bounds struct {
		Earliest *string
		Latest   *string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT MIN(plannedstartdate) AS earliest, MAX(plannedstartdate) AS latest
		FROM networklink
		WHERE plannedstartdate IS NOT NULL AND plannedstartdate != ''
	`).Scan(&bounds).Error
	if err != nil {
		return "", "", fmt.Errorf("planned start range: %w", err)
	}

	earliest, latest := "", ""
	if bounds.Earliest != nil {
		earliest = *bounds.Earliest
	}
	if bounds.Latest != nil {
		latest = *bounds.Latest
	}
	return earliest, latest, nil
}

func (r *ProfileRepository) GroupLinksBy(ctx context.Context, column string) ([]domain.GroupCount, error) {
	if !linkGroupColumns[column] {
		return nil, fmt.Errorf("unsupported group column %q", column)
	}

	var rows []domain.GroupCount
	q := fmt.Sprintf(`
		SELECT COALESCE(NULLIF(%s, ''), '(not set)') AS key, COUNT(*) AS count
		FROM networklink
		GROUP BY 1
		ORDER BY 1
	`, column)
	if err := r.db.WithContext(ctx).Raw(q).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("group links by %s: %w", column, err)
	}
	return rows, nil
}

func (r *ProfileRepository) GroupLinksByOrganisation(ctx context.Context) ([]domain.GroupCount, error) {
	var rows []domain.GroupCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(org.name, 'Unknown') AS key, COUNT(*) AS count
		FROM networklink nl
		LEFT JOIN organisation org ON nl.dataproviderid_fk = org.systemid
		GROUP BY 1
		ORDER BY 1
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group links by organisation: %w", err)
	}
	return rows, nil
}

func (r *ProfileRepository) QualityFindings(ctx context.Context) ([]domain.QualityFinding, error) {
	var rows []struct {
		SystemID        string
		ObjectName      string
		LinkStatus      *string
		SchemeStatus    *string
		ConfidenceLevel *string
		USRN            *string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT systemid AS system_id, objectname AS object_name,
		       linkstatus AS link_status, schemestatus AS scheme_status,
		       confidencelevel AS confidence_level, usrn
		FROM networklink
		ORDER BY systemid
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("quality scan: %w", err)
	}

	empty := func(s *string) bool { return s == nil || *s == "" }

	var findings []domain.QualityFinding
	for _, row := range rows {
		var missing []string
		if empty(row.LinkStatus) {
			missing = append(missing, "linkstatus")
		}
		if empty(row.SchemeStatus) {
			missing = append(missing, "schemestatus")
		}
		if empty(row.ConfidenceLevel) {
			missing = append(missing, "confidencelevel")
		}
		if empty(row.USRN) {
			missing = append(missing, "usrn")
		}
		if len(missing) > 0 {
			findings = append(findings, domain.QualityFinding{
				SystemID:      row.SystemID,
				ObjectName:    row.ObjectName,
				MissingFields: missing,
			})
		}
	}
	return findings, nil
}
