package model

import (
	"time"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// Generation represents the database model for headshot generations
type Generation struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        uint64    `gorm:"not null"`
	Gender        string    `gorm:"not null;size:16"`
	Background    string    `gorm:"not null;size:16"`
	InputImageURL string    `gorm:"column:input_image_url;not null;type:text"`
	ImageURL      *string   `gorm:"column:image_url;type:text"`
	Status        string    `gorm:"not null;size:32;default:PENDING_PAYMENT;index"`
	RetryCount    int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Generation
func (Generation) TableName() string {
	return "generations"
}

// ToEntity converts the model to a domain generation
func (g *Generation) ToEntity() *entity.Generation {
	return &entity.Generation{
		ID:     g.ID,
		UserID: g.UserID,
		Options: entity.GenerationOptions{
			Gender:        entity.Gender(g.Gender),
			Background:    entity.Background(g.Background),
			InputImageURL: g.InputImageURL,
		},
		ImageURL:   g.ImageURL,
		Status:     entity.GenerationStatus(g.Status),
		RetryCount: g.RetryCount,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// GenerationFromEntity builds a model from a domain generation
func GenerationFromEntity(g *entity.Generation) *Generation {
	return &Generation{
		ID:            g.ID,
		UserID:        g.UserID,
		Gender:        string(g.Options.Gender),
		Background:    string(g.Options.Background),
		InputImageURL: g.Options.InputImageURL,
		ImageURL:      g.ImageURL,
		Status:        string(g.Status),
		RetryCount:    g.RetryCount,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}
