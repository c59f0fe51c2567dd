package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelar-dev/taskcast-be/internal/models"
)

// ErrNotFound is returned when a requested record does not exist, or
// is owned by someone else. Callers must not be able to tell the two
// apart.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned for any authentication failure.
// It never says which factor was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserExists is returned when a registration collides with an
// existing username or email.
var ErrUserExists = errors.New("username or email already taken")

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(email, username, firstName, lastName, password string, role models.Role) (models.User, error)
	Authenticate(username, password string) (models.User, error)
	GetByID(id int64) (models.User, error)
	ChangePassword(id int64, currentPassword, newPassword string) error
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user, hashing their password with bcrypt.
func (s *UserService) Register(email, username, firstName, lastName, password string, role models.Role) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO users(email, username, first_name, last_name, hashed_pass, is_active, role) VALUES(?, ?, ?, ?, ?, 1, ?)",
		email, username, firstName, lastName, string(hashedPassword), string(role),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, ErrUserExists
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		ID:        id,
		Email:     email,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
		Role:      role,
	}, nil
}

// Authenticate verifies a username/password pair against the stored
// bcrypt hash.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	user, err := s.getByUsername(username)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPass), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user.HashedPass = ""
	return user, nil
}

// GetByID retrieves a single user by id, without the password hash.
func (s *UserService) GetByID(id int64) (models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, email, username, first_name, last_name, is_active, role FROM users WHERE id = ?", id)

	var user models.User
	var role string
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName, &user.IsActive, &role)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.Role = models.ParseRole(role)
	return user, nil
}

// ChangePassword verifies the current password, then hashes and
// stores the new one.
func (s *UserService) ChangePassword(id int64, currentPassword, newPassword string) error {
	var hashed string
	if err := s.db.QueryRow("SELECT hashed_pass FROM users WHERE id = ?", id).Scan(&hashed); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET hashed_pass = ? WHERE id = ?", string(hashedPassword), id)
	return err
}

func (s *UserService) getByUsername(username string) (models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, email, username, first_name, last_name, hashed_pass, is_active, role FROM users WHERE username = ?", username)

	var user models.User
	var role string
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName, &user.HashedPass, &user.IsActive, &role)
	if err != nil {
		return models.User{}, err
	}
	user.Role = models.ParseRole(role)
	return user, nil
}
