package domain

import "github.com/shopspring/decimal"

// Student is an enrolled payer. ID is fixed once assigned.
type Student struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	RollNumber  string           `json:"rollNumber"`
	Course      string           `json:"course"`
	Year        string           `json:"year"`
	Branch      string           `json:"branch"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	Outstanding *decimal.Decimal `json:"outstanding,omitempty"`
}

// StudentInput is the admin form for a new student.
type StudentInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	RollNumber string `json:"rollNumber" validate:"required"`
	Course     string `json:"course" validate:"required"`
	Year       string `json:"year"`
	Branch     string `json:"branch"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// ToStudent builds a Student with the given id.
func (in StudentInput) ToStudent(id string) Student {
	return Student{
		ID:         id,
		Name:       in.Name,
		Email:      in.Email,
		RollNumber: in.RollNumber,
		Course:     in.Course,
		Year:       in.Year,
		Branch:     in.Branch,
		Phone:      in.Phone,
		Address:    in.Address,
	}
}

// StudentPatch carries the fields an admin edit changes. Nil fields are left alone.
type StudentPatch struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	RollNumber *string `json:"rollNumber,omitempty"`
	Course     *string `json:"course,omitempty"`
	Year       *string `json:"year,omitempty"`
	Branch     *string `json:"branch,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
}

// Apply returns s with the patch applied. The id never changes.
func (p StudentPatch) Apply(s Student) Student {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.Name, p.Name)
	set(&s.Email, p.Email)
	set(&s.RollNumber, p.RollNumber)
	set(&s.Course, p.Course)
	set(&s.Year, p.Year)
	set(&s.Branch, p.Branch)
	set(&s.Phone, p.Phone)
	set(&s.Address, p.Address)
	return s
}
