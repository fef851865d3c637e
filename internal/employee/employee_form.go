package employee

// Field identifies one editable attribute of the employee form.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldDepartment
	FieldRole
	FieldStatus
)

var FormFields = []Field{FieldName, FieldEmail, FieldDepartment, FieldRole, FieldStatus}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldDepartment:
		return "department"
	case FieldRole:
		return "role"
	case FieldStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Choices returns the allowed values of an enumerated field as published
// by the options endpoint, or nil for free text.
func (f Field) Choices(opts OptionsResponse) []string {
	switch f {
	case FieldDepartment:
		return opts.Departments
	case FieldRole:
		return opts.Roles
	case FieldStatus:
		return opts.Statuses
	default:
		return nil
	}
}

func DefaultOptions() OptionsResponse {
	return OptionsResponse{
		Departments: Departments,
		Roles:       Roles,
		Statuses:    Statuses,
	}
}

// Draft is the in-progress form state of a create or edit.
type Draft struct {
	Name       string
	Email      string
	Department string
	Role       string
	Status     string
}

func NewDraft() Draft {
	return Draft{Status: StatusActive}
}

func DraftFrom(e EmployeeResponse) Draft {
	return Draft{
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Role:       e.Role,
		Status:     e.Status,
	}
}

func (d *Draft) Set(f Field, value string) {
	switch f {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldDepartment:
		d.Department = value
	case FieldRole:
		d.Role = value
	case FieldStatus:
		d.Status = value
	}
}

func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldDepartment:
		return d.Department
	case FieldRole:
		return d.Role
	case FieldStatus:
		return d.Status
	default:
		return ""
	}
}

func (d Draft) CreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		Name:       d.Name,
		Email:      d.Email,
		Department: d.Department,
		Role:       d.Role,
		Status:     d.Status,
	}
}

func (d Draft) UpdateRequest() UpdateEmployeeRequest {
	return UpdateEmployeeRequest{
		Name:       d.Name,
		Email:      d.Email,
		Department: d.Department,
		Role:       d.Role,
		Status:     d.Status,
	}
}

// SearchFields lists the attributes a directory search matches against, in
// the same order the server ORs them.
func (e EmployeeResponse) SearchFields() []string {
	return []string{e.Name, e.Email, e.Department, e.Role}
}

func (e EmployeeResponse) Key() string {
	return e.ID
}
