package model

import "time"

/*

User is an account that authors posts and comments and follows other users.
Identity itself is resolved by the authentication backend; this row only
mirrors the username so that content can reference it.

Id: primary key
CreatedAt: time when the user is first seen
Username: display name, unique across the site

Posts, comments and follows referencing a user are removed with it.
*/
type User struct {
	Id        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
}
