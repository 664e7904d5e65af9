package registry

import (
	"strings"
	"time"
)

// AllRoles is the filter selection meaning "no filtering".
const AllRoles = "Todos"

// Record is one registered person. Records are never modified after
// creation; removal is the only lifecycle transition.
type Record struct {
	ID        string
	Name      string
	Surname   string
	BirthDate string
	Email     string
	Contact   string
	Phone     string
	Role      string
	CreatedAt time.Time
}

// FullName joins name and surname for display.
func (r Record) FullName() string {
	return strings.TrimSpace(r.Name + " " + r.Surname)
}

// Fields is raw form input.
type Fields struct {
	Name      string `yaml:"name" validate:"required"`
	Surname   string `yaml:"surname"`
	BirthDate string `yaml:"birth_date"`
	Email     string `yaml:"email" validate:"required,contains=@"`
	Contact   string `yaml:"contact"`
	Phone     string `yaml:"phone"`
	Role      string `yaml:"role" validate:"required"`
}

// Normalize trims every field except BirthDate, which is kept verbatim.
func (f Fields) Normalize() Fields {
	return Fields{
		Name:      strings.TrimSpace(f.Name),
		Surname:   strings.TrimSpace(f.Surname),
		BirthDate: f.BirthDate,
		Email:     strings.TrimSpace(f.Email),
		Contact:   strings.TrimSpace(f.Contact),
		Phone:     strings.TrimSpace(f.Phone),
		Role:      strings.TrimSpace(f.Role),
	}
}
