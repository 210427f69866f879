package Models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DriveLogStatus is the lifecycle state of a drive log. It is stored as a
// plain string column.
type DriveLogStatus string

const (
	DriveLogInProgress DriveLogStatus = "in_progress"
	DriveLogCompleted  DriveLogStatus = "completed"
)

// DriveLogStatuses lists every valid status, in lifecycle order.
var DriveLogStatuses = []DriveLogStatus{DriveLogInProgress, DriveLogCompleted}

// ParseDriveLogStatus converts a stored string into a status.
func ParseDriveLogStatus(s string) (DriveLogStatus, error) {
	switch DriveLogStatus(s) {
	case DriveLogInProgress, DriveLogCompleted:
		return DriveLogStatus(s), nil
	}
	return "", &StoreError{Op: "parse drive log status", Err: fmt.Errorf("unknown status %q", s)}
}

func (s DriveLogStatus) String() string {
	return string(s)
}

// Label is the human readable form used in views.
func (s DriveLogStatus) Label() string {
	switch s {
	case DriveLogInProgress:
		return "In progress"
	case DriveLogCompleted:
		return "Completed"
	}
	return string(s)
}

// Value implements driver.Valuer.
func (s DriveLogStatus) Value() (driver.Value, error) {
	if _, err := ParseDriveLogStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

// Scan implements sql.Scanner. Unknown strings are rejected.
func (s *DriveLogStatus) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return &StoreError{Op: "scan drive log status", Err: fmt.Errorf("status is NULL")}
	default:
		return &StoreError{Op: "scan drive log status", Err: fmt.Errorf("unsupported type %T", value)}
	}
	parsed, err := ParseDriveLogStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DriveLog is one driving session between two odometer readings.
// EndKm is nil exactly while the drive is in progress.
type DriveLog struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at" gorm:"index:idx_drive_logs_status_created,priority:2"`
	UpdatedAt time.Time      `json:"updated_at"`
	Date      datatypes.Date `json:"date" gorm:"not null"`
	StartKm   int            `json:"start_km" gorm:"not null"`
	EndKm     *int           `json:"end_km"`
	Status    DriveLogStatus `json:"status" gorm:"type:varchar(20);not null;index:idx_drive_logs_status_created,priority:1"`
	JobSiteID int64          `json:"job_site_id" gorm:"not null;index"`
}

func (DriveLog) TableName() string {
	return "drive_logs"
}

// InProgress reports whether the drive has not been ended yet.
func (d DriveLog) InProgress() bool {
	return d.Status == DriveLogInProgress
}

// Distance returns end minus start, or zero while in progress.
func (d DriveLog) Distance() int {
	if d.EndKm == nil {
		return 0
	}
	return *d.EndKm - d.StartKm
}

// DateString formats the calendar date as YYYY-MM-DD.
func (d DriveLog) DateString() string {
	return time.Time(d.Date).Format(DateLayout)
}

// DriveLogWithJobSite is a drive log joined with the name and address of
// its job site. The job site fields are computed on every read.
type DriveLogWithJobSite struct {
	DriveLog
	JobSiteName    string `json:"job_site_name"`
	JobSiteAddress string `json:"job_site_address"`
}

// DateLayout is the format used for drive dates in forms and exports.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD form value into a calendar date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}
