// Package domain provides defenitions of all entities.
package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrAccountNotFound indicates that the account is not found.
var ErrAccountNotFound = errors.New("account not found")

// Account holds contact data for a single customer record.
type Account struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	DateJoined  Date   `json:"date_joined"`
}

// CreateAccountParams holds the mutable account fields accepted on
// creation and full replacement.
type CreateAccountParams struct {
	Name        string
	Email       string
	Address     string
	PhoneNumber string
	DateJoined  Date
}

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day. It marshals to JSON as
// "YYYY-MM-DD" and maps to a Postgres DATE column.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return NewDate(y, m, d)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a %q string", dateLayout)
	}

	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}

	d.Time = t

	return nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		t, err := time.Parse(dateLayout, string(v))
		if err != nil {
			return err
		}

		d.Time = t

		return nil
	}

	return fmt.Errorf("cannot scan %T into Date", src)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}
