package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Placeholders written when an accountant registers before filling the profile.
const (
	DefaultSpecialty    = "Especialidade a definir"
	DefaultLocation     = "Localização a definir"
	DefaultDescription  = "Descrição a ser preenchida"
	DefaultResponseTime = "4 horas"
)

// Accountant is the professional-facing profile owned by one user.
// Score and RatingCount are derived from the ratings table and only written
// together with a rating insert.
type Accountant struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	Name         string                      `gorm:"type:varchar(100);not null" json:"name"`
	Specialty    string                      `gorm:"type:varchar(200);not null" json:"specialty"`
	Score        float64                     `gorm:"not null;default:0" json:"score"`
	RatingCount  int64                       `gorm:"not null;default:0" json:"rating_count"`
	Photo        string                      `gorm:"type:varchar(300)" json:"photo"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	ResponseTime string                      `gorm:"type:varchar(50)" json:"response_time"`
	Location     string                      `gorm:"type:varchar(100)" json:"location"`
	Description  string                      `gorm:"type:text" json:"description"`
	Verified     bool                        `gorm:"not null;default:false" json:"verified"`
	Active       bool                        `gorm:"not null;default:true" json:"active"`
	Experience   string                      `gorm:"type:varchar(100)" json:"experience"`
	Education    string                      `gorm:"type:varchar(200)" json:"education"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Accountant) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// NewPlaceholderAccountant builds the minimal profile created at registration.
func NewPlaceholderAccountant(u *User) *Accountant {
	return &Accountant{
		UserID:       u.ID,
		Name:         u.Name,
		Specialty:    DefaultSpecialty,
		Photo:        u.Photo,
		Tags:         datatypes.JSONSlice[string]{},
		ResponseTime: DefaultResponseTime,
		Location:     DefaultLocation,
		Description:  DefaultDescription,
		Active:       true,
	}
}

// TagList returns the decoded tags, never nil.
func (a *Accountant) TagList() []string {
	if len(a.Tags) == 0 {
		return []string{}
	}
	return []string(a.Tags)
}
