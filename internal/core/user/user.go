package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Email     string    `gorm:"type:varchar(200);uniqueIndex;not null" validate:"required,email,max=200"`
	Nickname  string    `gorm:"type:varchar(30);not null" validate:"required,min=1,max=30"`
	Password  string    `gorm:"type:varchar(100);not null" validate:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

// Validate checks the struct tags before a user is persisted.
func (u *User) Validate() error {
	return validate.Struct(u)
}
