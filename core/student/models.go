package student

import "encoding/json"

// Record is a loosely typed backend row (CD student data, education details, report rows).
// The client passes those through to the UI untouched.
type Record map[string]interface{}

type (
	Student struct {
		ID         int    `json:"id,omitempty"`
		NID        int64  `json:"studentNID,omitempty"`
		Passport   string `json:"studentPassport,omitempty"`
		Name       string `json:"studentName,omitempty"`
		Phone      string `json:"studentPhone,omitempty"`
		Mail       string `json:"studentMail,omitempty"`
		Address    string `json:"studentAddress,omitempty"`
		BirthDate  string `json:"studentBirthDate,omitempty"`
		GenderID   int    `json:"studentGender_id,omitempty"`
		StatusID   int    `json:"studentStatus_id,omitempty"`
		StatusName string `json:"studentStatus__name,omitempty"`
		UniqueID   string `json:"uniqueId,omitempty"`
		Withdrawal string `json:"withdrawalDate,omitempty"`
		Notes      string `json:"notes,omitempty"`
	}

	ImposedCourse struct {
		StudentID  int    `json:"student_id,omitempty"`
		CourseID   int    `json:"imposedCourse_id,omitempty"`
		CourseName string `json:"imposedCourse__name,omitempty"`
		Completed  bool   `json:"completed"`
	}

	// Data is the editable aggregate of a council student.
	Data struct {
		Student        Student         `json:"student"`
		SecondaryEdu   Record          `json:"studentSecondaryEdu,omitempty"`
		UniversityEdu  Record          `json:"studentUniversityEdu,omitempty"`
		ImposedCourses []ImposedCourse `json:"studentImposedCourses,omitempty"`
	}

	Signature struct {
		ID   int    `json:"signatureId,omitempty"`
		Name string `json:"signatureName,omitempty"`
		Date string `json:"signatureDate,omitempty"`
	}

	// View is a student as shown on the detail screens.
	View struct {
		Student        Student         `json:"student"`
		SecondaryEdu   Record          `json:"studentSecondaryEdu"`
		UniversityEdu  Record          `json:"studentUniversityEdu"`
		ImposedCourses []ImposedCourse `json:"studentImposedCourses"`
		MilitaryEdu    Record          `json:"studentMilitaryEdu"`
		Signature      Signature       `json:"signature"`
		Attachments    []UploadedFile  `json:"attachments,omitempty"`
	}

	TransactionChange struct {
		From string `json:"from"`
		To   string `json:"to"`
	}

	Transaction struct {
		ID        int                 `json:"id,omitempty"`
		CreatedAt string              `json:"createdAt,omitempty"`
		CreatedBy string              `json:"createdBy,omitempty"`
		TypeID    int                 `json:"transactionType_id,omitempty"`
		TypeName  string              `json:"transactionType__name,omitempty"`
		Changes   []TransactionChange `json:"transactionChanges,omitempty"`
	}

	History struct {
		Student      Student       `json:"student"`
		Transactions []Transaction `json:"transactions"`
	}

	UploadedFile struct {
		Filename     string `json:"filename"`
		AttachmentID string `json:"attachmentId,omitempty"`
		Mimetype     string `json:"mimetype,omitempty"`
		Size         int64  `json:"size,omitempty"`
		Message      string `json:"message,omitempty"`
	}

	FileActionResult struct {
		Success []UploadedFile `json:"success"`
		Failed  []UploadedFile `json:"failed"`
	}

	// TransferRequest moves a student to another faculty.
	TransferRequest struct {
		ID            int     `json:"Id" validate:"required"`
		FacultyID     int     `json:"faculty_id" validate:"required"`
		TransferDate  string  `json:"transfer_date" validate:"required"`
		EquivalentHrs float64 `json:"equivalent_hours"`
		TransferLevel int     `json:"transfer_level"`
		FulfillmentID int     `json:"fulfillment_id"`
	}

	FacultyTransferReport struct {
		CanTransfer      bool `json:"can_transfer"`
		AllowedCount     int  `json:"allowed_transfer_count"`
		TransferredCount int  `json:"transferred_students_count"`
		AvailableCount   int  `json:"available_transfer_count"`
	}

	// Report is tabular report data: columns plus one record per row.
	Report struct {
		Columns    json.RawMessage `json:"columns"`
		ReportData []Record        `json:"reportData"`
	}

	// Page is one page of a listing.
	Page struct {
		StudentsList []Record `json:"studentsList"`
		TotalRecords int      `json:"totalRecords"`
	}
)

// Filters are the lookup lists (years, universities, faculties...) feeding the search forms.
type Filters map[string]json.RawMessage
