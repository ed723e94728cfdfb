package session

// Storage keys of the persisted session fields.
const (
	KeyAccessToken      = "accessToken"
	KeyUserData         = "userData"
	KeyAppCategories    = "appCategories"
	KeyUserApplications = "userApplications"
)

// ApplicationID identifies an independently permissioned feature module.
type ApplicationID int

const (
	UploadCDFile ApplicationID = iota + 1
	InquireCDStudent
	StudentInfo
	MilitaryEducation
	ReviewGraduates
	GraduateInfo
	TransferStudents
	NumberAcceptedStudents
	ReviewInitiallyAccepted
	AcceptedStudentNames
	UniversityStatusStatistics
	TransferStudentsStatistics
	DefineUniversities
	DefineFaculties
	DefineCertificates
	DefineCertificateGroups
)

var applicationNames = map[ApplicationID]string{
	UploadCDFile:               "uploadCDFile",
	InquireCDStudent:           "inquireCDStudent",
	StudentInfo:                "studentInfo",
	MilitaryEducation:          "militaryEducation",
	ReviewGraduates:            "reviewGraduates",
	GraduateInfo:               "graduateInfo",
	TransferStudents:           "transferStudents",
	NumberAcceptedStudents:     "numberAcceptedStudents",
	ReviewInitiallyAccepted:    "reviewInitiallyAccepted",
	AcceptedStudentNames:       "acceptedStudentNames",
	UniversityStatusStatistics: "universityStatusStatistics",
	TransferStudentsStatistics: "transferStudentsStatistics",
	DefineUniversities:         "defineUniversities",
	DefineFaculties:            "defineFaculties",
	DefineCertificates:         "defineCertificates",
	DefineCertificateGroups:    "defineCertificateGroups",
}

func (id ApplicationID) String() string {
	if name, ok := applicationNames[id]; ok {
		return name
	}
	return "unknown"
}

// Right is an ordinal capability granted per application. It is not a bit flag.
type Right int

const (
	RightView Right = iota + 1
	RightAdd
	RightEdit
	RightDelete
)

func (r Right) String() string {
	switch r {
	case RightView:
		return "VIEW"
	case RightAdd:
		return "ADD"
	case RightEdit:
		return "EDIT"
	case RightDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// Profile is the user record returned on login. The client treats it as opaque.
type Profile struct {
	Username string `json:"username,omitempty"`
	Fullname string `json:"fullname,omitempty"`
	NID      int64  `json:"nid,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (p Profile) IsZero() bool {
	return p == Profile{}
}

type AppCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	DisplayName string `json:"displayName"`
}

// Application is a grant: an application the user may open, with the rights held on it.
type Application struct {
	ID          ApplicationID `json:"id"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	DisplayName string        `json:"displayName"`
	CategoryID  int           `json:"categoryId"`
	Rights      []Right       `json:"rights"`
}

func (app Application) HasRight(right Right) bool {
	for _, r := range app.Rights {
		if r == right {
			return true
		}
	}
	return false
}

type Permissions struct {
	AppCategories    []AppCategory `json:"appCategories"`
	UserApplications []Application `json:"userApplications"`
}

// LoginPayload is the payload of a successful login response.
type LoginPayload struct {
	AccessToken     string      `json:"accessToken"`
	UserData        Profile     `json:"userData"`
	UserPermissions Permissions `json:"userPermissions"`
}

// Session is a point in time copy of the store's state.
type Session struct {
	AccessToken      string        `json:"accessToken"`
	UserData         Profile       `json:"userData"`
	AppCategories    []AppCategory `json:"appCategories"`
	UserApplications []Application `json:"userApplications"`
}

func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}
