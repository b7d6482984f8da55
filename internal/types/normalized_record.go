package types

// Flag values used for boolean columns
const (
	Yes = "y"
	No  = "n"
)

// Column names of the fixed part of the export, in order.
const (
	ColName             = "Name in special format"
	ColLastName         = "last name"
	ColFirstName        = "first name"
	ColSourceFile       = "original resume filename"
	ColLinkedIn         = "LinkedIn address"
	ColSummary          = "Self-made title"
	ColPhone            = "phone"
	ColAreaCodeLocation = "areacode location"
	ColCurrentCity      = "current city"
	ColCurrentState     = "current state"
	ColOtherDegrees     = "other degrees"
)

// EducationColumns names the four columns of each education slot, earliest first.
var EducationColumns = [3][4]string{
	{"earliest degree typically Bachelors degree", "earliest degree year", "earliest degree field", "earliest degree institution"},
	{"second degree typically masters degree", "second degree year", "second degree field", "second degree institution"},
	{"third degree typically PhD or doctor of philosophy or other doctoral level", "third degree year", "third degree field", "third degree institution"},
}

// EmploymentColumns names the three columns of each employment slot, most recent first.
var EmploymentColumns = [4][3]string{
	{"most recent job title", "most recent job company", "most recent job years"},
	{"previous job title", "previous job company", "previous job years"},
	{"next previous job title", "next previous job company", "next previous job years"},
	{"2nd next previous job title", "2nd next previous job company", "2nd next previous job years"},
}

// EducationSlot is one selected education entry. All fields are "" when the slot is empty.
type EducationSlot struct {
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
}

// EmploymentSlot is one selected position. All fields are "" when the slot is empty.
type EmploymentSlot struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Years   string `json:"years"`
}

// Flag is the evaluated value of one skill category
type Flag struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// NormalizedRecord is the flat, fixed-schema row produced for one document.
// It is built once by the normalizer and never mutated afterwards.
type NormalizedRecord struct {
	Name             string `json:"name"`
	LastName         string `json:"last_name"`
	FirstName        string `json:"first_name"`
	SourceFile       string `json:"source_file"`
	LinkedIn         string `json:"linkedin"`
	Summary          string `json:"summary"`
	Phone            string `json:"phone"`
	AreaCodeLocation string `json:"areacode_location"`
	CurrentCity      string `json:"current_city"`
	CurrentState     string `json:"current_state"`

	Education    [3]EducationSlot `json:"education"`
	OtherDegrees string           `json:"other_degrees"`

	Employment [4]EmploymentSlot `json:"employment"`

	Flags []Flag `json:"flags"`
}

// Header returns the column names of the record in export order.
func (r *NormalizedRecord) Header() []string {
	header := []string{
		ColName, ColLastName, ColFirstName, ColSourceFile,
		ColLinkedIn, ColSummary, ColPhone, ColAreaCodeLocation, ColCurrentCity, ColCurrentState,
	}
	for _, cols := range EducationColumns {
		header = append(header, cols[:]...)
	}
	header = append(header, ColOtherDegrees)
	for _, cols := range EmploymentColumns {
		header = append(header, cols[:]...)
	}
	for _, f := range r.Flags {
		header = append(header, f.Column)
	}
	return header
}

// Row returns the record values aligned with Header.
func (r *NormalizedRecord) Row() []string {
	row := []string{
		r.Name, r.LastName, r.FirstName, r.SourceFile,
		r.LinkedIn, r.Summary, r.Phone, r.AreaCodeLocation, r.CurrentCity, r.CurrentState,
	}
	for _, e := range r.Education {
		row = append(row, e.Degree, e.Year, e.Field, e.Institution)
	}
	row = append(row, r.OtherDegrees)
	for _, e := range r.Employment {
		row = append(row, e.Title, e.Company, e.Years)
	}
	for _, f := range r.Flags {
		row = append(row, f.Value)
	}
	return row
}
