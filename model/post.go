package model

import (
	"time"
)

const (
	// Default ordering for post listings, newest first. Id breaks ties between
	// posts created within the same clock tick.
	PostOrder = "posts.created_at desc, posts.id desc"

	// Folder (or key prefix) images are uploaded to.
	PostImagePrefix = "posts/"
)

/*

Post is an authored text entry, optionally grouped and illustrated.

Id: primary key, also the url identifier
CreatedAt: publication time, assigned on insert and never updated
Text: post body in plain text
AuthorID:
Author: user who wrote the post, "belongs-to" relation, required. Deleting
		the author deletes the post.
GroupID:
Group: optional group, "belongs-to" relation. Deleting the group sets this
		to null.
Image: key of the uploaded image in the media store, empty if none
*/
type Post struct {
	Id        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"pub_date"`
	Text      string    `gorm:"not null" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL;" json:"group"`
	Image     string    `json:"image"`
}

func (p Post) String() string {
	return p.Text
}
