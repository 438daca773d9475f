package users

import (
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/records"
)

type User struct {
	UserID       string    `json:"user_id"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func toRecord(u *User) records.Record {
	return records.Record{
		records.FieldUserID: u.UserID,
		"password_hash":     u.PasswordHash,
		"created_at":        u.CreatedAt.UTC().Format(records.TimeLayout),
	}
}

func fromRecord(rec records.Record) (*User, error) {
	u := &User{
		UserID:       rec.String(records.FieldUserID),
		PasswordHash: rec.String("password_hash"),
	}
	if raw := rec.String("created_at"); raw != "" {
		t, err := time.Parse(records.TimeLayout, raw)
		if err != nil {
			return nil, err
		}
		u.CreatedAt = t
	}
	return u, nil
}
