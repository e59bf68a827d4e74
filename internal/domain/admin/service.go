package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/apperr"
)

var validRoles = map[string]bool{
	"admin": true, "doctor": true, "receptionist": true, "pharmacist": true,
}

type Service struct {
	users UserRepository
	staff StaffRepository
}

func NewService(users UserRepository, staff StaffRepository) *Service {
	return &Service{users: users, staff: staff}
}

// hashPassword is a stand-in scheme, not real password hashing.
func hashPassword(password string) string {
	return password + "notreallyhashed"
}

// -- User --

func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*User, error) {
	if username == "" {
		return nil, &apperr.ValidationError{Msg: "username is required"}
	}
	if password == "" {
		return nil, &apperr.ValidationError{Msg: "password is required"}
	}
	if role == "" {
		role = "receptionist"
	}
	if !validRoles[role] {
		return nil, &apperr.ValidationError{Msg: "invalid role: " + role}
	}
	u := &User{Username: username, HashedPassword: hashPassword(password), Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *Service) UpdateUser(ctx context.Context, u *User) error {
	if u.Username == "" {
		return &apperr.ValidationError{Msg: "username is required"}
	}
	if u.Role != "" && !validRoles[u.Role] {
		return &apperr.ValidationError{Msg: "invalid role: " + u.Role}
	}
	return s.users.Update(ctx, u)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}

// -- Staff --

func (s *Service) CreateStaff(ctx context.Context, st *Staff) error {
	if st.Name == "" {
		return &apperr.ValidationError{Msg: "name is required"}
	}
	if st.Email == "" {
		return &apperr.ValidationError{Msg: "email is required"}
	}
	if st.UserID != nil {
		if _, err := s.users.GetByID(ctx, *st.UserID); err != nil {
			return err
		}
	}
	return s.staff.Create(ctx, st)
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) UpdateStaff(ctx context.Context, st *Staff) error {
	if st.Name == "" {
		return &apperr.ValidationError{Msg: "name is required"}
	}
	return s.staff.Update(ctx, st)
}

func (s *Service) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return s.staff.Delete(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	return s.staff.List(ctx, limit, offset)
}
