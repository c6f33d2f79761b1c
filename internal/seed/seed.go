// Package seed holds the embedded reference and sample data for the profile:
// the full codelist enumerations and the illustrative future-works dataset.
// Keeping these as YAML files separates the stable schema contract from the
// replaceable sample content.
package seed

import (
	"embed"
	"fmt"
	"time"

	"github.com/CHRISCARLON/uk-future-works-model/internal/domain"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

const dateFormat = "2006-01-02"

// Set is everything the loader inserts, already in dependency order.
type Set struct {
	Codelists     []domain.Codelist
	Organisations []domain.Organisation
	Contacts      []domain.ContactDetails
	ContactLinks  []domain.OrganisationContactLink
	Programmes    []domain.PlannedProgramme
	NetworkLinks  []domain.NetworkLink
}

type codelistFile struct {
	Version     string `yaml:"version"`
	VersionDate string `yaml:"version_date"`
	Codelists   []struct {
		Table        string `yaml:"table"`
		DomainTagged bool   `yaml:"domain_tagged"`
		Entries      []struct {
			Code    string `yaml:"code"`
			Label   string `yaml:"label"`
			Domains string `yaml:"domains"`
		} `yaml:"entries"`
	} `yaml:"codelists"`
}

type organisationsFile struct {
	Organisations []struct {
		SystemID   string `yaml:"systemid"`
		Name       string `yaml:"name"`
		ShortName  string `yaml:"shortname"`
		Type       string `yaml:"type"`
		SWACode    string `yaml:"swacode"`
		WebsiteURL string `yaml:"websiteurl"`
	} `yaml:"organisations"`
}

type contactsFile struct {
	Contacts []struct {
		SystemID         string `yaml:"systemid"`
		OrganisationName string `yaml:"organisation_name"`
		Type             string `yaml:"type"`
		Department       string `yaml:"department"`
		Email            string `yaml:"email"`
		Telephone        string `yaml:"telephone"`
		ProviderID       string `yaml:"provider_id"`
	} `yaml:"contacts"`
}

type relationshipsFile struct {
	Relationships []struct {
		SystemID       string `yaml:"systemid"`
		OrganisationID string `yaml:"organisation_id"`
		ContactID      string `yaml:"contact_id"`
		ProviderID     string `yaml:"provider_id"`
	} `yaml:"relationships"`
}

type programmesFile struct {
	Programmes []struct {
		SystemID         string `yaml:"systemid"`
		Name             string `yaml:"name"`
		Type             string `yaml:"type"`
		Description      string `yaml:"description"`
		StartInDays      int    `yaml:"start_in_days"`
		EndInDays        int    `yaml:"end_in_days"`
		ProviderID       string `yaml:"provider_id"`
		SensitivityLevel string `yaml:"sensitivity_level"`
	} `yaml:"programmes"`
}

type networkLinksFile struct {
	NetworkLinks []struct {
		SystemID           string      `yaml:"systemid"`
		ObjectName         string      `yaml:"objectname"`
		Description        string      `yaml:"description"`
		UtilityType        string      `yaml:"utility_type"`
		UtilitySubtype     string      `yaml:"utility_subtype"`
		Material           string      `yaml:"material"`
		InstallationMethod string      `yaml:"installation_method"`
		DepthMetres        float64     `yaml:"depth_metres"`
		WorkType           string      `yaml:"work_type"`
		SchemeStatus       string      `yaml:"scheme_status"`
		StartInDays        int         `yaml:"start_in_days"`
		EndInDays          int         `yaml:"end_in_days"`
		ConfidenceLevel    string      `yaml:"confidence_level"`
		USRN               string      `yaml:"usrn"`
		LinkStatus         string      `yaml:"link_status"`
		LocaleReference    string      `yaml:"locale_reference"`
		LocaleType         string      `yaml:"locale_type"`
		ProviderID         string      `yaml:"provider_id"`
		ProgrammeID        string      `yaml:"programme_id"`
		Coords             [][]float64 `yaml:"coords"`
	} `yaml:"network_links"`
}

func read(name string, out any) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read seed file %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse seed file %s: %w", name, err)
	}
	return nil
}

func systemIDOr(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// Load parses the embedded seed files into domain records. Planned dates in
// the files are day offsets resolved against now, matching the behaviour of
// the sample dataset this profile ships.
func Load(now time.Time) (*Set, error) {
	set := &Set{}

	var cf codelistFile
	if err := read("codelists.yaml", &cf); err != nil {
		return nil, err
	}
	versionDate, err := time.Parse(dateFormat, cf.VersionDate)
	if err != nil {
		return nil, fmt.Errorf("codelist version_date: %w", err)
	}
	for _, list := range cf.Codelists {
		cl := domain.Codelist{
			Table:        list.Table,
			Version:      cf.Version,
			VersionDate:  versionDate,
			DomainTagged: list.DomainTagged,
		}
		for _, e := range list.Entries {
			cl.Entries = append(cl.Entries, domain.CodelistEntry{
				SystemID:          e.Code,
				Value:             e.Label,
				ApplicableDomains: e.Domains,
			})
		}
		set.Codelists = append(set.Codelists, cl)
	}

	envelope := func(id string) domain.RecordEnvelope {
		return domain.RecordEnvelope{
			SystemID:        systemIDOr(id),
			LifecycleStatus: domain.LifecycleActive,
			DateLastUpdated: now,
			SystemLoadDate:  now,
		}
	}
	offsetDate := func(days int) string {
		return now.AddDate(0, 0, days).Format(dateFormat)
	}

	var of organisationsFile
	if err := read("organisations.yaml", &of); err != nil {
		return nil, err
	}
	for _, o := range of.Organisations {
		set.Organisations = append(set.Organisations, domain.Organisation{
			RecordEnvelope:   envelope(o.SystemID),
			Name:             o.Name,
			ShortName:        o.ShortName,
			OrganisationType: o.Type,
			SWACode:          o.SWACode,
			WebsiteURL:       o.WebsiteURL,
		})
	}

	var ctf contactsFile
	if err := read("contacts.yaml", &ctf); err != nil {
		return nil, err
	}
	for _, c := range ctf.Contacts {
		set.Contacts = append(set.Contacts, domain.ContactDetails{
			RecordEnvelope:     envelope(c.SystemID),
			OrganisationName:   c.OrganisationName,
			ContactDetailsType: c.Type,
			DepartmentName:     c.Department,
			EmailAddress:       c.Email,
			TelephoneNumber:    c.Telephone,
			DataProviderID:     c.ProviderID,
		})
	}

	var rf relationshipsFile
	if err := read("relationships.yaml", &rf); err != nil {
		return nil, err
	}
	for _, rel := range rf.Relationships {
		set.ContactLinks = append(set.ContactLinks, domain.OrganisationContactLink{
			RecordEnvelope:         envelope(rel.SystemID),
			LinkedOrganisationID:   rel.OrganisationID,
			LinkedContactDetailsID: rel.ContactID,
			DataProviderID:         rel.ProviderID,
		})
	}

	var pf programmesFile
	if err := read("programmes.yaml", &pf); err != nil {
		return nil, err
	}
	for _, p := range pf.Programmes {
		env := envelope(p.SystemID)
		set.Programmes = append(set.Programmes, domain.PlannedProgramme{
			RecordEnvelope: env,
			StewardshipEnvelope: domain.StewardshipEnvelope{
				Certification:                "Provisional",
				ProviderAssignedID:           env.SystemID,
				ProviderAssignedIDAutoIssued: true,
				DataSensitivityLevel:         p.SensitivityLevel,
			},
			ProgrammeName:        p.Name,
			ProgrammeType:        p.Type,
			ProgrammeDescription: p.Description,
			PlannedStartDate:     offsetDate(p.StartInDays),
			PlannedEndDate:       offsetDate(p.EndInDays),
			DataProviderID:       p.ProviderID,
		})
	}

	var nf networkLinksFile
	if err := read("networklinks.yaml", &nf); err != nil {
		return nil, err
	}
	for _, nl := range nf.NetworkLinks {
		points := make([]domain.Coordinate, 0, len(nl.Coords))
		for _, c := range nl.Coords {
			if len(c) != 2 {
				return nil, fmt.Errorf("network link %s: coordinate needs exactly x and y, got %d values", nl.SystemID, len(c))
			}
			points = append(points, domain.Coordinate{X: c[0], Y: c[1]})
		}
		geom := domain.NewLineString(points...)
		if !geom.IsValid() {
			return nil, fmt.Errorf("network link %s: linestring needs at least 2 points", nl.SystemID)
		}

		start := offsetDate(nl.StartInDays)
		set.NetworkLinks = append(set.NetworkLinks, domain.NetworkLink{
			RecordEnvelope: envelope(nl.SystemID),
			StewardshipEnvelope: domain.StewardshipEnvelope{
				DataOwner:            nl.ProviderID,
				DataSensitivityLevel: "Public",
			},
			Description:               nl.Description,
			FeatureType:               "NetworkLink",
			UtilityType:               nl.UtilityType,
			UtilitySubtype:            nl.UtilitySubtype,
			PlannedInstallationDate:   start,
			PlannedMaterial:           nl.Material,
			PlannedInstallationMethod: nl.InstallationMethod,
			PlannedDepth:              nl.DepthMetres,
			PlannedDepthUnit:          "Metres",
			ComponentType:             nl.UtilityType,
			WorkType:                  nl.WorkType,
			SchemeStatus:              nl.SchemeStatus,
			PlannedStartDate:          start,
			PlannedEndDate:            offsetDate(nl.EndInDays),
			ConfidenceLevel:           nl.ConfidenceLevel,
			LocaleReference:           nl.LocaleReference,
			LocaleReferenceType:       nl.LocaleType,
			ObjectName:                nl.ObjectName,
			ObjectOwner:               nl.ProviderID,
			Operator:                  nl.ProviderID,
			USRN:                      nl.USRN,
			LinkStatus:                nl.LinkStatus,
			DataProviderID:            nl.ProviderID,
			ProgrammeID:               nl.ProgrammeID,
			Geometry:                  geom,
		})
	}

	return set, nil
}
