package models

import (
	"errors"
	"time"

	emailverifier "github.com/AfterShip/email-verifier"
	"gorm.io/gorm"
)

func init() {
	registerModel(&User{})
}

type User struct {
	gorm.Model
	Name         string
	Email        string  `gorm:"unique;not null"`
	Username     *string `gorm:"uniqueIndex"`
	PhoneNumber  *string `gorm:"uniqueIndex"`
	Image        string
	PasswordHash string
	ResetOTP     string
	OTPCreatedAt *time.Time
	IsActive     bool `gorm:"default:true;"`
	IsStaff      bool `gorm:"default:false;"`
	LastLogin    *time.Time
	Posts        []Post
	Followers    []Follow `gorm:"foreignKey:FollowingID"`
	Following    []Follow `gorm:"foreignKey:FollowerID"`
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	var email string
	var changed bool

	switch dest := tx.Statement.Dest.(type) {
	case *User:
		email = dest.Email
		changed = tx.Statement.Changed("Email")
	case map[string]interface{}:
		if e, ok := dest["email"]; ok {
			if emailStr, ok := e.(string); ok {
				email = emailStr
				changed = true
			}
		}
	default:
		return errors.New("unsupported destination type")
	}

	if changed && email != "" {
		verify, err := getEmailVerifier().Verify(email)
		if err != nil {
			return err
		}
		if !verify.Syntax.Valid {
			return errors.New("email is invalid")
		}
	}

	return nil
}

func getEmailVerifier() *emailverifier.Verifier {
	verifier := emailverifier.NewVerifier()

	verifier.DisableSMTPCheck()
	verifier.DisableGravatarCheck()
	verifier.DisableDomainSuggest()
	verifier.DisableAutoUpdateDisposable()

	return verifier
}
