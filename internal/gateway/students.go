package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

func (c *Client) ListStudents(ctx context.Context) ([]domain.Student, error) {
	var rows []backendStudent
	if err := c.do(ctx, "list_students", http.MethodGet, "/students", nil, nil, &rows); err != nil {
		return nil, err
	}

	students := make([]domain.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, normalizeStudent(row))
	}
	return students, nil
}

func (c *Client) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	var row backendStudent
	if err := c.do(ctx, "get_student", http.MethodGet, "/students/"+url.PathEscape(id), nil, nil, &row); err != nil {
		return nil, err
	}
	s := normalizeStudent(row)
	return &s, nil
}

// CreateStudent registers a student. Fields the backend does not echo back
// are carried over from the input.
func (c *Client) CreateStudent(ctx context.Context, in domain.StudentInput) (*domain.Student, error) {
	payload := studentPayload{
		Name:    in.Name,
		Regno:   in.RollNumber,
		Course:  in.Course,
		Year:    in.Year,
		Branch:  in.Branch,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	}

	var row backendStudent
	if err := c.do(ctx, "create_student", http.MethodPost, "/students", nil, payload, &row); err != nil {
		return nil, err
	}

	created := in.ToStudent(row.ID.String())
	merged := normalizeStudent(row)
	if merged.Name != "" {
		created.Name = merged.Name
	}
	if merged.Email != "" {
		created.Email = merged.Email
	}
	if merged.RollNumber != "" {
		created.RollNumber = merged.RollNumber
	}
	if merged.Course != "" {
		created.Course = merged.Course
	}
	if merged.Phone != "" {
		created.Phone = merged.Phone
	}
	return &created, nil
}

// UpdateStudent replaces the backend record for id with s.
func (c *Client) UpdateStudent(ctx context.Context, id string, s domain.Student) (*domain.Student, error) {
	payload := studentPayload{
		Name:    s.Name,
		Regno:   s.RollNumber,
		Course:  s.Course,
		Year:    s.Year,
		Branch:  s.Branch,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
	}

	var row backendStudent
	if err := c.do(ctx, "update_student", http.MethodPut, "/students/"+url.PathEscape(id), nil, payload, &row); err != nil {
		return nil, err
	}
	updated := normalizeStudent(row)
	if updated.ID == "" {
		updated.ID = id
	}
	return &updated, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.do(ctx, "delete_student", http.MethodDelete, "/students/"+url.PathEscape(id), nil, nil, nil)
}
