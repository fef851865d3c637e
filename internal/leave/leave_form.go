package leave

// Field identifies one editable attribute of the leave request form.
type Field int

const (
	FieldEmployeeID Field = iota
	FieldEmployeeName
	FieldType
	FieldStartDate
	FieldEndDate
)

var FormFields = []Field{FieldEmployeeID, FieldEmployeeName, FieldType, FieldStartDate, FieldEndDate}

func (f Field) String() string {
	switch f {
	case FieldEmployeeID:
		return "employee_id"
	case FieldEmployeeName:
		return "employee_name"
	case FieldType:
		return "type"
	case FieldStartDate:
		return "start_date"
	case FieldEndDate:
		return "end_date"
	default:
		return "unknown"
	}
}

type Draft struct {
	EmployeeID   string
	EmployeeName string
	Type         string
	StartDate    string
	EndDate      string
}

func NewDraft() Draft {
	return Draft{}
}

func (d *Draft) Set(f Field, value string) {
	switch f {
	case FieldEmployeeID:
		d.EmployeeID = value
	case FieldEmployeeName:
		d.EmployeeName = value
	case FieldType:
		d.Type = value
	case FieldStartDate:
		d.StartDate = value
	case FieldEndDate:
		d.EndDate = value
	}
}

func (d Draft) Get(f Field) string {
	switch f {
	case FieldEmployeeID:
		return d.EmployeeID
	case FieldEmployeeName:
		return d.EmployeeName
	case FieldType:
		return d.Type
	case FieldStartDate:
		return d.StartDate
	case FieldEndDate:
		return d.EndDate
	default:
		return ""
	}
}

func (d Draft) CreateRequest() CreateLeaveRequest {
	return CreateLeaveRequest{
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		Type:         d.Type,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
	}
}

// SearchFields lists the attributes a leave search matches against.
func (l LeaveResponse) SearchFields() []string {
	return []string{l.EmployeeName, l.Type}
}

func (l LeaveResponse) Key() string {
	return l.ID
}
