package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/universe-repo/internal/dbx"
	"github.com/iliyamo/universe-repo/internal/model"
	"github.com/iliyamo/universe-repo/internal/utils"
)

// accountTokenLength is the size of the random activation token stored on
// every new account.
const accountTokenLength = 8

// UserRepo stores users and their accounts.
type UserRepo struct {
	DB    *sql.DB
	cost  int
	now   func() time.Time
	newID func() uuid.UUID
}

// NewUserRepo returns a UserRepo that hashes passwords with the given bcrypt
// cost.
func NewUserRepo(db *sql.DB, bcryptCost int) *UserRepo {
	return &UserRepo{DB: db, cost: bcryptCost, now: time.Now, newID: uuid.New}
}

const userViewQuery = `SELECT u.id,u.name,u.email,u.phone,u.birth_date,u.gender,a.created_at
FROM users u JOIN user_accounts a ON a.id=u.account_id
WHERE u.id=? AND a.status=? LIMIT 1`

// Register creates a user and its ACTIVE account. The email must not be
// used by any other user, active or not.
func (r *UserRepo) Register(ctx context.Context, in model.UserRegistration) (model.UserView, error) {
	// hash outside the transaction; bcrypt is slow
	hash, err := utils.HashPassword(in.Password, r.cost)
	if err != nil {
		return model.UserView{}, err
	}
	token, err := utils.RandomString(accountTokenLength)
	if err != nil {
		return model.UserView{}, err
	}

	var view model.UserView
	err = dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var one int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM users WHERE email=? LIMIT 1", in.Email).Scan(&one)
		if err == nil {
			return ErrEmailInUse
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		accountID, userID := r.newID(), r.newID()
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO user_accounts (id,token,status,created_at) VALUES (?,?,?,?)",
			accountID, token, model.AccountActive, r.now().UTC()); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO users (id,account_id,name,email,phone,birth_date,gender,password_hash) VALUES (?,?,?,?,?,?,?,?)",
			userID, accountID, in.Name, in.Email, in.Phone, in.BirthDate, in.Gender, hash); err != nil {
			if isDuplicateEntry(err) {
				return ErrEmailInUse
			}
			return err
		}
		view, err = getActiveUserView(ctx, tx, userID)
		return err
	})
	return view, err
}

// GetByID returns the view of an ACTIVE user. Inactive and unknown users are
// both reported as ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (model.UserView, error) {
	return getActiveUserView(ctx, r.DB, id)
}

// GetMe is GetByID for the caller's own id.
func (r *UserRepo) GetMe(ctx context.Context, requesterID uuid.UUID) (model.UserView, error) {
	return r.GetByID(ctx, requesterID)
}

// Update overwrites the profile fields of an ACTIVE user. Email uniqueness
// is left to the schema's unique key.
func (r *UserRepo) Update(ctx context.Context, in model.UserUpdate) (model.UserView, error) {
	var view model.UserView
	err := dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := lockActiveUser(ctx, tx, in.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET name=?, email=?, phone=?, birth_date=?, gender=? WHERE id=?",
			in.Name, in.Email, in.Phone, in.BirthDate, in.Gender, in.ID); err != nil {
			if isDuplicateEntry(err) {
				return ErrEmailInUse
			}
			return err
		}
		var err error
		view, err = getActiveUserView(ctx, tx, in.ID)
		return err
	})
	return view, err
}

// Disable flips the user's account to INACTIVE. The user row stays.
func (r *UserRepo) Disable(ctx context.Context, id uuid.UUID) error {
	return dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		accountID, err := lockActiveUser(ctx, tx, id)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE user_accounts SET status=? WHERE id=?", model.AccountInactive, accountID)
		return err
	})
}

// Authenticate returns the ACTIVE user with this email when the password
// matches its bcrypt hash.
func (r *UserRepo) Authenticate(ctx context.Context, c model.Credentials) (model.User, error) {
	if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Password) == "" {
		return model.User{}, ErrEmptyCredentials
	}

	var (
		u       model.User
		refresh sql.NullString
		sent    sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `SELECT u.id,u.name,u.email,u.phone,u.birth_date,u.gender,u.password_hash,u.refresh_token,
a.id,a.token,a.status,a.last_email_sent,a.created_at
FROM users u JOIN user_accounts a ON a.id=u.account_id
WHERE u.email=? AND a.status=? LIMIT 1`, c.Email, model.AccountActive).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.BirthDate, &u.Gender, &u.PasswordHash, &refresh,
			&u.Account.ID, &u.Account.Token, &u.Account.Status, &sent, &u.Account.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, c.Password) {
		return model.User{}, ErrInvalidCredentials
	}
	u.RefreshToken = refresh.String
	if sent.Valid {
		t := sent.Time
		u.Account.LastEmailSent = &t
	}
	return u, nil
}

// lockActiveUser locks the user row and returns its account id.
func lockActiveUser(ctx context.Context, q dbx.DBTX, id uuid.UUID) (uuid.UUID, error) {
	var accountID uuid.UUID
	err := q.QueryRowContext(ctx,
		"SELECT u.account_id FROM users u JOIN user_accounts a ON a.id=u.account_id WHERE u.id=? AND a.status=? FOR UPDATE",
		id, model.AccountActive).Scan(&accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrUserNotFound
	}
	return accountID, err
}

func getActiveUserView(ctx context.Context, q dbx.DBTX, id uuid.UUID) (model.UserView, error) {
	var v model.UserView
	err := q.QueryRowContext(ctx, userViewQuery, id, model.AccountActive).
		Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.BirthDate, &v.Gender, &v.MemberSince)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserView{}, ErrUserNotFound
	}
	return v, err
}
