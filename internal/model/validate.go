package model

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

// requiredID rejects the zero UUID; validation.Required treats the
// fixed-size array as always present.
func requiredID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
}

// maxPasswordBytes is bcrypt's input limit; longer passwords are rejected
// by the hasher rather than truncated.
const maxPasswordBytes = 72

// passwordBytes bounds the UTF-8 length, not the rune count.
func passwordBytes(value interface{}) error {
	s, _ := value.(string)
	if len(s) > maxPasswordBytes {
		return fmt.Errorf("must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

var (
	genderRule         = validation.In(GenderMale, GenderFemale, GenderOther)
	repositoryTypeRule = validation.In(RepositoryPublic, RepositoryPrivate)
)

// Validate checks a registration payload.
func (r UserRegistration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 200), is.Email),
		validation.Field(&r.Phone, validation.Length(0, 30)),
		validation.Field(&r.BirthDate, validation.Required),
		validation.Field(&r.Gender, validation.Required, genderRule),
		validation.Field(&r.Password, validation.Required, validation.RuneLength(8, 0), validation.By(passwordBytes)),
	)
}

// Validate checks a profile update payload.
func (u UserUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.By(requiredID)),
		validation.Field(&u.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&u.Email, validation.Required, validation.Length(3, 200), is.Email),
		validation.Field(&u.Phone, validation.Length(0, 30)),
		validation.Field(&u.BirthDate, validation.Required),
		validation.Field(&u.Gender, validation.Required, genderRule),
	)
}

// Validate checks a content item.
func (c ContentItem) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 255)),
	)
}

// Validate checks a repository registration payload.
func (r RepositoryRegistration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Type, validation.Required, repositoryTypeRule),
		validation.Field(&r.Contents),
	)
}

// Validate checks a repository update payload.
func (r RepositoryUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.By(requiredID)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Type, validation.Required, repositoryTypeRule),
	)
}

// Validate checks a reconciliation payload. An empty Contents list is valid
// and removes every content row.
func (s ContentSync) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.By(requiredID)),
		validation.Field(&s.Contents),
	)
}
