package student

import (
	"net/url"
	"strconv"
)

// SearchType selects the field a CD student search matches against.
type SearchType string

const (
	SearchByNationalID  SearchType = "nationalID"
	SearchBySeatNumber  SearchType = "seatNumber"
	SearchByStudentName SearchType = "studentName"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 500
)

type Pagination struct {
	Page    int `json:"page" validate:"gte=0"`
	PerPage int `json:"perPage" validate:"gte=1,lte=500"`
}

// WithDefaults fills an unset page size.
func (p Pagination) WithDefaults() Pagination {
	if p.PerPage == 0 {
		p.PerPage = DefaultPerPage
	}
	return p
}

func (p Pagination) addTo(v url.Values) {
	p = p.WithDefaults()
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("perPage", strconv.Itoa(p.PerPage))
}

type CDStudentQuery struct {
	SelectedYear string     `json:"selectedYear" validate:"required,notblank"`
	SearchType   SearchType `json:"searchType" validate:"omitempty,oneof=nationalID seatNumber studentName"`
	SearchField  string     `json:"searchField"`
	Pagination
}

func (q CDStudentQuery) Values() url.Values {
	v := url.Values{}
	v.Set("selectedYear", q.SelectedYear)
	if q.SearchType != "" {
		v.Set("searchType", string(q.SearchType))
	}
	v.Set("searchField", q.SearchField)
	q.Pagination.addTo(v)
	return v
}

// CDStudentKey identifies a CD student within a certificate year.
type CDStudentKey struct {
	SelectedYear string `json:"selectedYear" validate:"required,notblank"`
	NationalID   string `json:"nationalId,omitempty"`
	SeatNumber   int    `json:"seatNumber,omitempty"`
}

func (k CDStudentKey) Values() url.Values {
	v := url.Values{}
	v.Set("selectedYear", k.SelectedYear)
	v.Set("nationalId", k.NationalID)
	v.Set("seatNumber", strconv.Itoa(k.SeatNumber))
	return v
}

// Query filters council students lists. Empty fields are not sent.
type Query struct {
	SelectedStudentType string `json:"selectedStudentType,omitempty"`
	Certificate         string `json:"certificate,omitempty"`
	Faculty             string `json:"faculty,omitempty"`
	NationalID          string `json:"nationalID,omitempty"`
	Passport            string `json:"passport,omitempty"`
	Region              string `json:"region,omitempty"`
	SeatNumber          string `json:"seatNumber,omitempty"`
	Semester            string `json:"semester,omitempty"`
	Stage               string `json:"stage,omitempty"`
	StudentName         string `json:"studentName,omitempty"`
	University          string `json:"university,omitempty"`
	UniversityYear      string `json:"universityYear,omitempty"`
	GSYear              string `json:"gsYear,omitempty"`
	StudentStatus       string `json:"studentStatus,omitempty"`
	Pagination
}

func (q Query) Values() url.Values {
	v := url.Values{}
	for k, val := range map[string]string{
		"selectedStudentType": q.SelectedStudentType,
		"certificate":         q.Certificate,
		"faculty":             q.Faculty,
		"nationalID":          q.NationalID,
		"passport":            q.Passport,
		"region":              q.Region,
		"seatNumber":          q.SeatNumber,
		"semester":            q.Semester,
		"stage":               q.Stage,
		"studentName":         q.StudentName,
		"university":          q.University,
		"universityYear":      q.UniversityYear,
		"gsYear":              q.GSYear,
		"studentStatus":       q.StudentStatus,
	} {
		if val != "" {
			v.Set(k, val)
		}
	}
	q.Pagination.addTo(v)
	return v
}

// ReportQuery holds report filters (year, university, registrationTypes...). Multi valued
// filters repeat their key.
type ReportQuery url.Values

func (q ReportQuery) Values() url.Values {
	return url.Values(q)
}
