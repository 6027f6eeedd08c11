// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/account-api/internal/domain"
	"github.com/go-petr/account-api/pkg/dbpkg"
	"github.com/go-petr/account-api/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (name, email, address, phone_number, date_joined)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, name, email, address, phone_number, date_joined
`

// Create inserts the account and then returns it with the assigned id.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Name, arg.Email, arg.Address, arg.PhoneNumber, arg.DateJoined)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Address,
		&a.PhoneNumber,
		&a.DateJoined,
	)

	if err != nil {
		logPqError(l, err)
		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, name, email, address, phone_number, date_joined
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Address,
		&a.PhoneNumber,
		&a.DateJoined,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		logPqError(l, err)

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, name, email, address, phone_number, date_joined
FROM accounts
ORDER BY id
`

// List returns all accounts in insertion order.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		logPqError(l, err)
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Address, &a.PhoneNumber, &a.DateJoined); err != nil {
			logPqError(l, err)
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		logPqError(l, err)
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE accounts
SET name = $1, email = $2, address = $3, phone_number = $4, date_joined = $5
WHERE id = $6
RETURNING id, name, email, address, phone_number, date_joined
`

// Update replaces all mutable fields of the account with the given id
// and returns the updated account.
func (r *RepoPGS) Update(ctx context.Context, id int32, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery,
		arg.Name, arg.Email, arg.Address, arg.PhoneNumber, arg.DateJoined, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Address,
		&a.PhoneNumber,
		&a.DateJoined,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		logPqError(l, err)

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		logPqError(l, err)
		return errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		logPqError(l, err)
		return errorspkg.ErrInternal
	}

	if affected == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// logPqError logs the error with the Postgres error code attached when
// the driver reports one.
func logPqError(l *zerolog.Logger, err error) {
	if pqErr, ok := err.(*pq.Error); ok {
		l.Error().Err(err).Str("pq_code", string(pqErr.Code)).Str("pq_constraint", pqErr.Constraint).Send()
		return
	}

	l.Error().Err(err).Send()
}
