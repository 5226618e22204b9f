package users

import (
	"strings"
	"time"

	"github.com/jrsteele09/go-student-jobs/portalmodel"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `json:"id,omitempty"`          // Unique identifier for the user
	Email        string    `json:"email,omitempty"`       // Login name, stored lower case
	Username     string    `json:"username,omitempty"`    // Display name chosen at registration
	PasswordHash string    `json:"-"`                     // Hashed version of the user's password - never serialize
	DateJoined   time.Time `json:"date_joined,omitempty"` // Date and time when the user registered
	LastLogin    time.Time `json:"last_login,omitempty"`  // Last time the user logged in
	Admin        bool      `json:"admin,omitempty"`       // May import jobs from the feed

	Profile portalmodel.Profile `json:"profile"`
	CV      portalmodel.CV      `json:"cv"`
}

// NewStudent returns a user with the profile defaults new registrations get.
func NewStudent(email, username string) *User {
	return &User{
		Email:    NormaliseEmail(email),
		Username: username,
		Profile: portalmodel.Profile{
			Skills:            []portalmodel.Skill{},
			PreferredJobType:  portalmodel.JobTypeGraduate,
			PreferredLocation: "Not Specified",
			Course:            "Not Specified",
		},
		CV: portalmodel.CV{
			Name:       username,
			Education:  []portalmodel.Education{},
			Experience: []portalmodel.Experience{},
		},
	}
}

// NormaliseEmail is the key users are looked up by.
func NormaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// SetPassword replaces the stored hash with one for password.
func (u *User) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword checks a password against the user's hash
func (u *User) CheckPassword(password string) bool {
	return u.PasswordHash != "" && CheckPasswordHash(password, u.PasswordHash)
}

// Clone returns a deep copy of u so repositories never share mutable state
// with their callers.
func (u *User) Clone() *User {
	out := *u
	out.Profile.Skills = append([]portalmodel.Skill{}, u.Profile.Skills...)
	out.CV.Education = append([]portalmodel.Education{}, u.CV.Education...)
	out.CV.Experience = append([]portalmodel.Experience{}, u.CV.Experience...)
	return &out
}
