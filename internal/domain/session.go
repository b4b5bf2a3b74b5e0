package domain

import "fmt"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is an authenticated identity as reported by the fee backend.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is either a StudentSession or an AdminSession.
type Session interface {
	Role() string
	Subject() string
	DisplayName() string
	BackendToken() string
	session()
}

type StudentSession struct {
	StudentID string
	Name      string
	Email     string
	Token     string
}

func (s StudentSession) Role() string { return RoleStudent }
func (s StudentSession) Subject() string { return s.StudentID }
func (s StudentSession) DisplayName() string { return s.Name }
func (s StudentSession) BackendToken() string { return s.Token }
func (StudentSession) session() {}

type AdminSession struct {
	AdminID string
	Name    string
	Email   string
	Token   string
}

func (s AdminSession) Role() string { return RoleAdmin }
func (s AdminSession) Subject() string { return s.AdminID }
func (s AdminSession) DisplayName() string { return s.Name }
func (s AdminSession) BackendToken() string { return s.Token }
func (AdminSession) session() {}

// NewSession picks the session variant for u's role.
func NewSession(u User, token string) (Session, error) {
	switch u.Role {
	case RoleStudent:
		return StudentSession{StudentID: u.ID, Name: u.Name, Email: u.Email, Token: token}, nil
	case RoleAdmin:
		return AdminSession{AdminID: u.ID, Name: u.Name, Email: u.Email, Token: token}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", u.Role)
	}
}

// LoginResult is handed back to the client after a successful login.
type LoginResult struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}
