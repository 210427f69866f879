package Models

import "time"

// JobSite is a named, addressed location that drive logs point at.
// ID is zero until the row has been persisted.
type JobSite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Address   string    `json:"address" gorm:"type:varchar(255);not null"`

	// Back-reference only. Deleting a site that still has drive logs is
	// rejected by the store.
	DriveLogs []DriveLog `json:"-" gorm:"foreignKey:JobSiteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (JobSite) TableName() string {
	return "job_sites"
}

// Persisted reports whether the site has been written to the store.
func (j JobSite) Persisted() bool {
	return j.ID != 0
}
