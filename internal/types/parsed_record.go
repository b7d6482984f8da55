// Package types provides type definitions for the parser payloads and flat export records
// used throughout the resume-tabulator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ParseResponse is the envelope returned by the resume parsing service for one document.
// Only Value.ResumeData marks success; every other field may be absent.
type ParseResponse struct {
	Info    *ResponseInfo  `json:"Info,omitempty"`
	Value   *ResponseValue `json:"Value,omitempty"`
	Message string         `json:"Message,omitempty"`
}

// ResponseInfo carries the service status code and human-readable message
type ResponseInfo struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// ResponseValue wraps the parsed resume
type ResponseValue struct {
	ResumeData *ResumeData `json:"ResumeData,omitempty"`
}

// NoMessage is reported when a failed response carries no message of its own
const NoMessage = "No error message available"

// Succeeded reports whether the response carries the outer success marker.
func (r *ParseResponse) Succeeded() bool {
	return r != nil && r.Value != nil && r.Value.ResumeData != nil
}

// Resume returns the parsed resume, or nil when the response did not succeed.
func (r *ParseResponse) Resume() *ResumeData {
	if !r.Succeeded() {
		return nil
	}
	return r.Value.ResumeData
}

// ErrorMessage returns the service's own message for a failed response,
// preferring Info.Message over the top-level Message.
func (r *ParseResponse) ErrorMessage() string {
	if r == nil {
		return NoMessage
	}
	if r.Info != nil && r.Info.Message != "" {
		return r.Info.Message
	}
	if r.Message != "" {
		return r.Message
	}
	return NoMessage
}

// ResumeData is the parsed resume. Every block is optional.
type ResumeData struct {
	ContactInformation  *ContactInformation `json:"ContactInformation,omitempty"`
	ProfessionalSummary string              `json:"ProfessionalSummary,omitempty"`
	Education           *Education          `json:"Education,omitempty"`
	EmploymentHistory   *EmploymentHistory  `json:"EmploymentHistory,omitempty"`
	Skills              *Skills             `json:"Skills,omitempty"`
}

// Contact returns the contact block, or an empty one when absent.
func (d *ResumeData) Contact() ContactInformation {
	if d == nil || d.ContactInformation == nil {
		return ContactInformation{}
	}
	return *d.ContactInformation
}

// EducationDetails returns the education entries in document order.
func (d *ResumeData) EducationDetails() []EducationDetail {
	if d == nil || d.Education == nil {
		return nil
	}
	return d.Education.EducationDetails
}

// Positions returns the employment positions in document order.
func (d *ResumeData) Positions() []Position {
	if d == nil || d.EmploymentHistory == nil {
		return nil
	}
	return d.EmploymentHistory.Positions
}

// SkillNames returns the raw skill labels in document order.
func (d *ResumeData) SkillNames() []string {
	if d == nil || d.Skills == nil {
		return nil
	}
	names := make([]string, 0, len(d.Skills.Raw))
	for _, s := range d.Skills.Raw {
		names = append(names, s.Name)
	}
	return names
}

// ContactInformation holds the candidate's identity and contact details
type ContactInformation struct {
	CandidateName *CandidateName `json:"CandidateName,omitempty"`
	Telephones    []Telephone    `json:"Telephones,omitempty"`
	WebAddresses  []WebAddress   `json:"WebAddresses,omitempty"`
	Address       *Address       `json:"Address,omitempty"`
	Location      *Location      `json:"Location,omitempty"`
}

// Name returns the candidate name, or an empty one when absent.
func (c ContactInformation) Name() CandidateName {
	if c.CandidateName == nil {
		return CandidateName{}
	}
	return *c.CandidateName
}

// FirstTelephone returns the first listed telephone, or an empty one.
func (c ContactInformation) FirstTelephone() Telephone {
	if len(c.Telephones) == 0 {
		return Telephone{}
	}
	return c.Telephones[0]
}

// FirstWebAddress returns the first listed web address, or "".
func (c ContactInformation) FirstWebAddress() string {
	if len(c.WebAddresses) == 0 {
		return ""
	}
	return c.WebAddresses[0].Address
}

// CurrentCityState returns the current city and state.
// The Address block wins; the Location block is consulted only when Address is absent.
func (c ContactInformation) CurrentCityState() (city, state string) {
	if c.Address != nil {
		return c.Address.City, c.Address.Region
	}
	if c.Location != nil {
		if len(c.Location.Regions) > 0 {
			state = c.Location.Regions[0]
		}
		return c.Location.Municipality, state
	}
	return "", ""
}

// CandidateName holds the name parts
type CandidateName struct {
	FormattedName string `json:"FormattedName,omitempty"`
	GivenName     string `json:"GivenName,omitempty"`
	MiddleName    string `json:"MiddleName,omitempty"`
	FamilyName    string `json:"FamilyName,omitempty"`
}

// Telephone is a single phone number
type Telephone struct {
	Raw          string `json:"Raw,omitempty"`
	Normalized   string `json:"Normalized,omitempty"`
	AreaCityCode string `json:"AreaCityCode,omitempty"`
}

// WebAddress is a single URL with its classified type (e.g. "LinkedIn")
type WebAddress struct {
	Address string `json:"Address,omitempty"`
	Type    string `json:"Type,omitempty"`
}

// Address is the postal address block
type Address struct {
	City   string `json:"City,omitempty"`
	Region string `json:"Region,omitempty"`
}

// Location is the structured location block
type Location struct {
	CountryCode  string   `json:"CountryCode,omitempty"`
	Regions      []string `json:"Regions,omitempty"`
	Municipality string   `json:"Municipality,omitempty"`
}

// PartialDate is a date as the parser reports it, possibly year-only ("2019") or year-month
type PartialDate struct {
	Date          string `json:"Date,omitempty"`
	IsCurrentDate bool   `json:"IsCurrentDate,omitempty"`
}

// dateOf returns the date string of an optional date, "" when absent
func dateOf(d *PartialDate) string {
	if d == nil {
		return ""
	}
	return d.Date
}

// Education is the education block
type Education struct {
	EducationDetails []EducationDetail `json:"EducationDetails,omitempty"`
}

// EducationDetail is a single education entry
type EducationDetail struct {
	SchoolName *NormalizedText `json:"SchoolName,omitempty"`
	Degree     *Degree         `json:"Degree,omitempty"`
	Majors     []string        `json:"Majors,omitempty"`
	EndDate    *PartialDate    `json:"EndDate,omitempty"`
}

// EndDateString returns the end date string, "" when absent. This is the sort key.
func (e EducationDetail) EndDateString() string {
	return dateOf(e.EndDate)
}

// DegreeName returns the raw degree name, "" when absent.
func (e EducationDetail) DegreeName() string {
	if e.Degree == nil || e.Degree.Name == nil {
		return ""
	}
	return e.Degree.Name.Raw
}

// Institution returns the normalized school name, "" when absent.
func (e EducationDetail) Institution() string {
	if e.SchoolName == nil {
		return ""
	}
	return e.SchoolName.Normalized
}

// Degree holds the degree name and its classified type
type Degree struct {
	Name *NormalizedText `json:"Name,omitempty"`
	Type string          `json:"Type,omitempty"`
}

// NormalizedText is a raw string with the parser's normalized form
type NormalizedText struct {
	Raw        string `json:"Raw,omitempty"`
	Normalized string `json:"Normalized,omitempty"`
}

// EmploymentHistory is the employment block
type EmploymentHistory struct {
	Positions []Position `json:"Positions,omitempty"`
}

// Position is a single job
type Position struct {
	Employer  *Employer       `json:"Employer,omitempty"`
	JobTitle  *NormalizedText `json:"JobTitle,omitempty"`
	StartDate *PartialDate    `json:"StartDate,omitempty"`
	EndDate   *PartialDate    `json:"EndDate,omitempty"`
	IsCurrent bool            `json:"IsCurrent,omitempty"`
}

// StartDateString returns the start date string, "" when absent. This is the sort key.
func (p Position) StartDateString() string {
	return dateOf(p.StartDate)
}

// EndDateString returns the end date string, "" when absent.
func (p Position) EndDateString() string {
	return dateOf(p.EndDate)
}

// Title returns the raw job title, "" when absent.
func (p Position) Title() string {
	if p.JobTitle == nil {
		return ""
	}
	return p.JobTitle.Raw
}

// EmployerName returns the normalized employer name, "" when absent.
func (p Position) EmployerName() string {
	if p.Employer == nil || p.Employer.Name == nil {
		return ""
	}
	return p.Employer.Name.Normalized
}

// Employer holds the employer name
type Employer struct {
	Name *NormalizedText `json:"Name,omitempty"`
}

// Skills is the skills block
type Skills struct {
	Raw []Skill `json:"Raw,omitempty"`
}

// Skill is a single skill label
type Skill struct {
	Name string `json:"Name"`
}
