package domain

import "time"

// User is the profile document stored in Firestore, keyed by the Firebase
// Auth UID of the account it shadows. Authentication itself lives in
// Firebase Auth; this document only carries profile fields.
type User struct {
	ID        string `json:"id" firestore:"id"`
	Username  string `json:"username" firestore:"username"`
	Lastname  string `json:"lastname" firestore:"lastname"`
	Birthdate string `json:"birthdate" firestore:"birthdate"`
	Email     string `json:"email" firestore:"email"`
	CreatedAt string `json:"createdAt" firestore:"createdAt"`
	UpdatedAt string `json:"updatedAt" firestore:"updatedAt"`
}

// UserFields holds the optional profile fields supplied at creation time.
type UserFields struct {
	Username  string
	Lastname  string
	Birthdate string
	Email     string
}

// NewUser builds the initial profile document for the given auth UID.
// Both timestamps are stamped with the same instant.
func NewUser(fields UserFields, id string) User {
	now := time.Now().UTC().Format(time.RFC3339)

	return User{
		ID:        id,
		Username:  fields.Username,
		Lastname:  fields.Lastname,
		Birthdate: fields.Birthdate,
		Email:     fields.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
