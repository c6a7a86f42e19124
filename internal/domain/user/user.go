package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
)

// User is a directory identity. Accounts are provisioned by the identity
// provider; this service only reads them and maintains the manager link.
type User struct {
	id         uint
	email      string
	firstName  string
	lastName   string
	department string
	role       vo.Role
	isActive   bool
	managerID  *uint
	createdAt  time.Time
}

func NewUser(email, firstName, lastName, department string, role vo.Role) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(email) > 255 {
		return nil, fmt.Errorf("email exceeds maximum length of 255 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %s", email)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		email:      email,
		firstName:  strings.TrimSpace(firstName),
		lastName:   strings.TrimSpace(lastName),
		department: strings.TrimSpace(department),
		role:       role,
		isActive:   true,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructUser(
	id uint,
	email, firstName, lastName, department string,
	role vo.Role,
	isActive bool,
	managerID *uint,
	createdAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return &User{
		id:         id,
		email:      email,
		firstName:  firstName,
		lastName:   lastName,
		department: department,
		role:       role,
		isActive:   isActive,
		managerID:  managerID,
		createdAt:  createdAt,
	}, nil
}

// NormalizeEmail lowercases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) ID() uint { return u.id }
func (u *User) Email() string { return u.email }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string { return u.lastName }
func (u *User) Department() string { return u.department }
func (u *User) Role() vo.Role { return u.role }
func (u *User) IsActive() bool { return u.isActive }
func (u *User) ManagerID() *uint { return u.managerID }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// DisplayName is "First Last", falling back to the email when both are empty.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.firstName + " " + u.lastName)
	if name == "" {
		return u.email
	}
	return name
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) Deactivate() {
	u.isActive = false
}

// AssignManager sets or clears (nil) the manager link. Cycle detection across
// the hierarchy is done by the caller with WouldCreateCycle.
func (u *User) AssignManager(managerID *uint) error {
	if managerID != nil && *managerID == u.id {
		return ErrSelfManaged
	}
	u.managerID = managerID
	return nil
}
