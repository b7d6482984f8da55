package normalize

import (
	"slices"
	"strings"

	"github.com/jonathan/resume-tabulator/internal/areacode"
	"github.com/jonathan/resume-tabulator/internal/types"
)

const (
	educationSlots  = 3
	employmentSlots = 4
)

// AreaCodeResolver maps a telephone area code to a city and state.
type AreaCodeResolver interface {
	Lookup(areaCode string) (areacode.Location, bool)
}

// Normalizer flattens parsed resumes. It holds no per-document state and is
// safe to reuse across a batch.
type Normalizer struct {
	areaCodes AreaCodeResolver
	flags     FlagSpec
}

// New creates a Normalizer. A nil resolver leaves the area-code column empty.
func New(areaCodes AreaCodeResolver, flags FlagSpec) *Normalizer {
	return &Normalizer{areaCodes: areaCodes, flags: flags}
}

// FlagSpec returns the taxonomy used for skill flags.
func (n *Normalizer) FlagSpec() FlagSpec {
	return n.flags
}

// Normalize builds the export record for one parsed resume. documentID is the
// originating file name. The input is only read; sub-collections are sorted on copies.
func (n *Normalizer) Normalize(data *types.ResumeData, documentID string) (*types.NormalizedRecord, error) {
	if data == nil {
		return nil, &NormalizationError{DocumentID: documentID, Message: "resume data is missing"}
	}

	education := SortEducation(data.EducationDetails())
	positions := SortPositions(data.Positions())

	contact := data.Contact()
	name := contact.Name()
	phone := contact.FirstTelephone()
	city, state := contact.CurrentCityState()

	rec := &types.NormalizedRecord{
		Name:             strings.Join([]string{name.FamilyName, name.GivenName, name.MiddleName}, "-"),
		LastName:         name.FamilyName,
		FirstName:        name.GivenName,
		SourceFile:       documentID,
		LinkedIn:         contact.FirstWebAddress(),
		Summary:          data.ProfessionalSummary,
		Phone:            phone.Normalized,
		AreaCodeLocation: n.locate(phone.AreaCityCode),
		CurrentCity:      city,
		CurrentState:     state,
		OtherDegrees:     YesNo(HasMoreThan(education, educationSlots)),
		Flags:            MatchSkills(SkillSet(data.SkillNames()), n.flags),
	}

	for i := 0; i < educationSlots; i++ {
		if e, ok := Nth(education, i); ok {
			rec.Education[i] = educationSlot(e)
		}
	}
	for i := 0; i < employmentSlots; i++ {
		if p, ok := Nth(positions, i); ok {
			rec.Employment[i] = employmentSlot(p)
		}
	}

	return rec, nil
}

func (n *Normalizer) locate(areaCode string) string {
	if n.areaCodes == nil || areaCode == "" {
		return ""
	}
	loc, ok := n.areaCodes.Lookup(areaCode)
	if !ok {
		return ""
	}
	return loc.String()
}

func educationSlot(e types.EducationDetail) types.EducationSlot {
	return types.EducationSlot{
		Degree:      e.DegreeName(),
		Year:        Year(e.EndDateString()),
		Field:       strings.Join(e.Majors, ", "),
		Institution: e.Institution(),
	}
}

func employmentSlot(p types.Position) types.EmploymentSlot {
	return types.EmploymentSlot{
		Title:   p.Title(),
		Company: p.EmployerName(),
		Years:   FormatYearRange(p.StartDateString(), p.EndDateString(), p.IsCurrent),
	}
}

// SortEducation returns a copy of entries ordered by end date ascending.
// Missing end dates compare as "" and come first. Dates are compared as raw
// strings, which orders correctly only for the parser's ISO-style "YYYY-MM-DD"
// prefixes. Ties keep document order.
func SortEducation(entries []types.EducationDetail) []types.EducationDetail {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b types.EducationDetail) int {
		return strings.Compare(a.EndDateString(), b.EndDateString())
	})
	return sorted
}

// SortPositions returns a copy of positions ordered by start date descending,
// most recent first. Missing start dates compare as "" and therefore come last.
// Same raw string comparison as SortEducation; ties keep document order.
func SortPositions(positions []types.Position) []types.Position {
	sorted := slices.Clone(positions)
	slices.SortStableFunc(sorted, func(a, b types.Position) int {
		return strings.Compare(b.StartDateString(), a.StartDateString())
	})
	return sorted
}
