package dbschema

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/resource"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(ResourceCategory{})
	database.RegisterSchemaForAutoMigrate(Resource{})
}

// ResourceCategory represents the persisted category schema.
type ResourceCategory struct {
	BaseModel
	Name string `gorm:"type:varchar(128);not null;uniqueIndex:ux_resource_categories_name"`
}

// EtoD converts a schema category back to the domain representation.
func (c *ResourceCategory) EtoD() *resource.Category {
	if c == nil {
		return nil
	}

	return &resource.Category{
		ID:   c.ID,
		Name: c.Name,
	}
}

// Resource represents the persisted resource schema. Tags are stored as a
// jsonb array.
type Resource struct {
	BaseModel
	Title       string           `gorm:"type:varchar(255);not null"`
	Description string           `gorm:"type:text"`
	CategoryID  uint             `gorm:"not null;index"`
	Category    ResourceCategory `gorm:"foreignKey:CategoryID"`
	FileURL     string           `gorm:"type:varchar(512);not null"`
	Tags        datatypes.JSON   `gorm:"type:jsonb"`
	UploadedBy  uint             `gorm:"not null;index"`
	Uploader    User             `gorm:"foreignKey:UploadedBy"`
	Downloads   int64            `gorm:"not null;default:0"`
}

// NewSchemaResource converts a domain resource into a schema instance.
func NewSchemaResource(r *resource.Resource) (*Resource, error) {
	if r == nil {
		return nil, nil
	}

	var tags datatypes.JSON
	if len(r.Tags) > 0 {
		data, err := json.Marshal(r.Tags)
		if err != nil {
			return nil, err
		}
		tags = data
	}

	return &Resource{
		BaseModel: BaseModel{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		FileURL:     r.FileURL,
		Tags:        tags,
		UploadedBy:  r.UploadedBy,
		Downloads:   r.Downloads,
	}, nil
}

// EtoD converts a schema resource back to the domain representation.
func (r *Resource) EtoD() (*resource.Resource, error) {
	if r == nil {
		return nil, nil
	}

	var tags []string
	if len(r.Tags) > 0 {
		if err := json.Unmarshal(r.Tags, &tags); err != nil {
			return nil, err
		}
	}

	return &resource.Resource{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		FileURL:     r.FileURL,
		Tags:        tags,
		UploadedBy:  r.UploadedBy,
		Downloads:   r.Downloads,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}
