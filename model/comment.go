package model

import "time"

// Default ordering for comments, newest first.
const CommentOrder = "comments.created_at desc, comments.id desc"

/*

Comment is authored text attached to a post.

Id: primary key
CreatedAt: time when comment is created, never updated
PostID:
Post: commented post, "belongs-to" relation, cascade on delete
AuthorID:
Author: user who wrote the comment, "belongs-to" relation, cascade on delete
Text: comment body in plain text
*/
type Comment struct {
	Id        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"<-:create" json:"created"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"author"`
	Text      string    `gorm:"not null" json:"text"`
}
