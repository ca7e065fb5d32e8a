package model

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the self-declared gender stored on a user profile.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// AccountStatus is the lifecycle state of a UserAccount. Accounts start
// ACTIVE and flip to INACTIVE when disabled; the flip is not reversed.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// UserAccount represents a row in the `user_accounts` table. It is owned
// exclusively by one User and created alongside it.
//
// Fields:
//  ID            – primary key identifier.
//  Token         – random activation token (8 alphanumeric characters).
//  Status        – ACTIVE or INACTIVE.
//  LastEmailSent – when an activation email was last sent (nullable).
//  CreatedAt     – creation timestamp, reported as "member since".
type UserAccount struct {
	ID            uuid.UUID     // user_accounts.id
	Token         string        // user_accounts.token
	Status        AccountStatus // user_accounts.status
	LastEmailSent *time.Time    // user_accounts.last_email_sent (nullable)
	CreatedAt     time.Time     // user_accounts.created_at
}

// User represents a row in the `users` table together with its account.
// Users are never hard-deleted; they are disabled through Account.Status.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique email address, also the token "name" claim.
//  Phone        – free-form phone number.
//  BirthDate    – date of birth.
//  Gender       – MALE, FEMALE or OTHER.
//  PasswordHash – bcrypt hash; never leave the service.
//  RefreshToken – optional refresh token, echoed at login (nullable).
//  Account      – the owned UserAccount.
type User struct {
	ID           uuid.UUID // users.id
	Name         string    // users.name
	Email        string    // users.email
	Phone        string    // users.phone
	BirthDate    time.Time // users.birth_date
	Gender       Gender    // users.gender
	PasswordHash string    // users.password_hash
	RefreshToken string    // users.refresh_token (empty when NULL)
	Account      UserAccount
}

// UserView is the projection returned by the user store. It deliberately
// omits the password hash and account token.
type UserView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	BirthDate   time.Time `json:"birth_date"`
	Gender      Gender    `json:"gender"`
	MemberSince time.Time `json:"member_since"`
}

// UserRegistration is the payload accepted by UserRepo.Register.
type UserRegistration struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	BirthDate time.Time `json:"birth_date"`
	Gender    Gender    `json:"gender"`
	Password  string    `json:"password"`
}

// UserUpdate is the payload accepted by UserRepo.Update.
type UserUpdate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	BirthDate time.Time `json:"birth_date"`
	Gender    Gender    `json:"gender"`
}

// Credentials carries a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
