package gpkg

// Row types mirror the migrated tables; the schema itself lives in
// migrations/*.sql. Date and datetime columns are carried as text so reads
// behave the same whatever the driver decides to hand back for a declared
// DATE/DATETIME column.

type organisationRow struct {
	SystemID                        string `gorm:"column:systemid"`
	LifecycleStatus                 string `gorm:"column:lifecyclestatus"`
	DateLastUpdated                 string `gorm:"column:datelastupdated"`
	DateOfLastLifecycleStatusChange string `gorm:"column:dateoflastlifecyclestatuschange"`
	SystemLoadDate                  string `gorm:"column:systemloaddate"`
	Name                            string `gorm:"column:name"`
	ShortName                       string `gorm:"column:shortname"`
	OrganisationType                string `gorm:"column:organisationtype"`
	SWACode                         string `gorm:"column:swacode"`
	WebsiteURL                      string `gorm:"column:websiteurl"`
}

func (organisationRow) TableName() string { return "organisation" }

type contactDetailsRow struct {
	SystemID                        string `gorm:"column:systemid"`
	LifecycleStatus                 string `gorm:"column:lifecyclestatus"`
	DateLastUpdated                 string `gorm:"column:datelastupdated"`
	DateOfLastLifecycleStatusChange string `gorm:"column:dateoflastlifecyclestatuschange"`
	SystemLoadDate                  string `gorm:"column:systemloaddate"`
	OrganisationName                string `gorm:"column:organisationname"`
	ContactDetailsType              string `gorm:"column:contactdetailstype"`
	DepartmentName                  string `gorm:"column:departmentname"`
	EmailAddress                    string `gorm:"column:emailaddress"`
	TelephoneNumber                 string `gorm:"column:telephonenumber"`
	DataProviderID                  string `gorm:"column:dataproviderid_fk"`
}

func (contactDetailsRow) TableName() string { return "contactdetails" }

type contactLinkRow struct {
	SystemID                        string `gorm:"column:systemid"`
	LifecycleStatus                 string `gorm:"column:lifecyclestatus"`
	DateLastUpdated                 string `gorm:"column:datelastupdated"`
	DateOfLastLifecycleStatusChange string `gorm:"column:dateoflastlifecyclestatuschange"`
	SystemLoadDate                  string `gorm:"column:systemloaddate"`
	LinkedOrganisationID            string `gorm:"column:linkedorganisationid"`
	LinkedContactDetailsID          string `gorm:"column:linkedcontactdetailsid"`
	DataProviderID                  string `gorm:"column:dataproviderid_fk"`
}

func (contactLinkRow) TableName() string { return "relationship_organisationtocontactdetails" }

type programmeRow struct {
	SystemID                        string `gorm:"column:systemid"`
	LifecycleStatus                 string `gorm:"column:lifecyclestatus"`
	DateLastUpdated                 string `gorm:"column:datelastupdated"`
	DateOfLastLifecycleStatusChange string `gorm:"column:dateoflastlifecyclestatuschange"`
	SystemLoadDate                  string `gorm:"column:systemloaddate"`
	Certification                   string `gorm:"column:certification"`
	ProviderAssignedID              string `gorm:"column:dataproviderassigneduniqueid"`
	ProviderAssignedIDAutoIssued    int    `gorm:"column:dataproviderassigneduniqueidautoassigned"`
	DataOwner                       string `gorm:"column:dataowner"`
	DataOwnerAssignedID             string `gorm:"column:dataownerassigneduniqueid"`
	DataSensitivityLevel            string `gorm:"column:datasensitivitylevel"`
	ProgrammeName                   string `gorm:"column:programmename"`
	ProgrammeType                   string `gorm:"column:programmetype"`
	ProgrammeDescription            string `gorm:"column:programmedescription"`
	PlannedStartDate                string `gorm:"column:plannedstartdate"`
	PlannedEndDate                  string `gorm:"column:plannedenddate"`
	DataProviderID                  string `gorm:"column:dataproviderid_fk"`
}

func (programmeRow) TableName() string { return "plannedprogramme" }

type networkLinkRow struct {
	Geom                            []byte  `gorm:"column:geom"`
	SystemID                        string  `gorm:"column:systemid"`
	LifecycleStatus                 string  `gorm:"column:lifecyclestatus"`
	DateLastUpdated                 string  `gorm:"column:datelastupdated"`
	DateOfLastLifecycleStatusChange string  `gorm:"column:dateoflastlifecyclestatuschange"`
	SystemLoadDate                  string  `gorm:"column:systemloaddate"`
	Certification                   string  `gorm:"column:certification"`
	ProviderAssignedID              string  `gorm:"column:dataproviderassigneduniqueid"`
	ProviderAssignedIDAutoIssued    int     `gorm:"column:dataproviderassigneduniqueidautoassigned"`
	DataOwner                       string  `gorm:"column:dataowner"`
	DataOwnerAssignedID             string  `gorm:"column:dataownerassigneduniqueid"`
	DataSensitivityLevel            string  `gorm:"column:datasensitivitylevel"`
	Description                     string  `gorm:"column:description"`
	FeatureType                     string  `gorm:"column:featuretype"`
	UtilityType                     string  `gorm:"column:utilitytype"`
	UtilitySubtype                  string  `gorm:"column:utilitysubtype"`
	PlannedInstallationDate         string  `gorm:"column:plannedinstallationdate"`
	PlannedMaterial                 string  `gorm:"column:plannedmaterial"`
	PlannedInstallationMethod       string  `gorm:"column:plannedinstallationmethod"`
	PlannedDepth                    float64 `gorm:"column:planneddepth_depth"`
	PlannedDepthUnit                string  `gorm:"column:planneddepth_unitofmeasure"`
	ComponentType                   string  `gorm:"column:componenttype"`
	ComponentSubtype                string  `gorm:"column:componentsubtype"`
	WorkType                        string  `gorm:"column:worktype"`
	SchemeStatus                    string  `gorm:"column:schemestatus"`
	PlannedStartDate                string  `gorm:"column:plannedstartdate"`
	PlannedEndDate                  string  `gorm:"column:plannedenddate"`
	ConfidenceLevel                 string  `gorm:"column:confidencelevel"`
	LocaleReference                 string  `gorm:"column:localereference"`
	LocaleReferenceType             string  `gorm:"column:localereferencetype"`
	ObjectName                      string  `gorm:"column:objectname"`
	ObjectOwner                     string  `gorm:"column:objectowner"`
	Operator                        string  `gorm:"column:operator"`
	USRN                            string  `gorm:"column:usrn"`
	LinkStatus                      string  `gorm:"column:linkstatus"`
	DataProviderID                  string  `gorm:"column:dataproviderid_fk"`
	ProgrammeID                     *string `gorm:"column:programmeid_fk"`
}

func (networkLinkRow) TableName() string { return "networklink" }

type codelistRow struct {
	SystemID          string  `gorm:"column:systemid"`
	SystemLoadDate    string  `gorm:"column:systemloaddate"`
	DateLastUpdated   string  `gorm:"column:datelastupdated"`
	VersionNumber     string  `gorm:"column:versionnumber"`
	VersionDate       string  `gorm:"column:versiondate"`
	Value             string  `gorm:"column:value"`
	ApplicableDomains *string `gorm:"column:applicabledomains"`
}

type futureWorkRow struct {
	Geom                  []byte  `gorm:"column:geom"`
	WorkID                string  `gorm:"column:work_id"`
	WorkName              string  `gorm:"column:work_name"`
	Description           string  `gorm:"column:description"`
	OrganisationName      *string `gorm:"column:organisation_name"`
	OrganisationShortName *string `gorm:"column:organisation_shortname"`
	OrganisationType      *string `gorm:"column:organisation_type"`
	SWACode               *string `gorm:"column:swa_code"`
	UtilityType           string  `gorm:"column:utility_type"`
	UtilitySubtype        string  `gorm:"column:utility_subtype"`
	USRN                  string  `gorm:"column:usrn"`
	StreetName            string  `gorm:"column:street_name"`
	LinkStatus            string  `gorm:"column:link_status"`
	SchemeStatus          string  `gorm:"column:scheme_status"`
	WorkType              string  `gorm:"column:work_type"`
	PlannedStartDate      string  `gorm:"column:planned_start_date"`
	PlannedEndDate        string  `gorm:"column:planned_end_date"`
	ConfidenceLevel       string  `gorm:"column:confidence_level"`
	Material              string  `gorm:"column:material"`
	InstallationMethod    string  `gorm:"column:installation_method"`
	DepthMetres           float64 `gorm:"column:depth_metres"`
	ProgrammeName         *string `gorm:"column:programme_name"`
	ProgrammeType         *string `gorm:"column:programme_type"`
	ContactName           *string `gorm:"column:contact_name"`
	ContactEmail          *string `gorm:"column:contact_email"`
	ContactPhone          *string `gorm:"column:contact_phone"`
	LastUpdated           string  `gorm:"column:last_updated"`
	DataSensitivity       string  `gorm:"column:data_sensitivity"`
}

func (futureWorkRow) TableName() string { return "future_works_unified" }
