package dbschema

import (
	"time"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/job"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Job{})
}

// Job represents the persisted job board schema.
type Job struct {
	BaseModel
	Title       string `gorm:"type:varchar(255);not null"`
	Company     string `gorm:"type:varchar(255);not null"`
	Location    string `gorm:"type:varchar(255);index"`
	Type        string `gorm:"type:varchar(32);not null;index"`
	Description string `gorm:"type:text"`
	ApplyURL    string `gorm:"type:varchar(512)"`
	PostedBy    uint   `gorm:"not null;index"`
	Poster      User   `gorm:"foreignKey:PostedBy"`
	Deadline    *time.Time
}

// NewSchemaJob converts a domain job into a schema instance.
func NewSchemaJob(j *job.Job) *Job {
	if j == nil {
		return nil
	}

	return &Job{
		BaseModel: BaseModel{
			ID:        j.ID,
			CreatedAt: j.CreatedAt,
			UpdatedAt: j.UpdatedAt,
		},
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Type:        string(j.Type),
		Description: j.Description,
		ApplyURL:    j.ApplyURL,
		PostedBy:    j.PostedBy,
		Deadline:    j.Deadline,
	}
}

// EtoD converts a schema job back to the domain representation.
func (j *Job) EtoD() *job.Job {
	if j == nil {
		return nil
	}

	return &job.Job{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Type:        job.Type(j.Type),
		Description: j.Description,
		ApplyURL:    j.ApplyURL,
		PostedBy:    j.PostedBy,
		Deadline:    j.Deadline,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}
