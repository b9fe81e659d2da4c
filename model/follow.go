package model

/*

Follow is a directed subscription edge: User follows Author.

Id: primary key
UserID:
User: the follower, "belongs-to" relation, cascade on delete
AuthorID:
Author: the followed user, "belongs-to" relation, cascade on delete

No unique index on (user_id, author_id). Follow requests go through
get-or-create, concurrent ones may still insert twice.
*/
type Follow struct {
	Id       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"not null;index"`
	User     User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	AuthorID uint `gorm:"not null;index"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}
