package model

/*

Group is a named category posts can be filed under.

Id: primary key
Title: display name, up to 200 characters
Slug: url identifier, unique
Description: free text

Deleting a group keeps its posts and nulls their group reference.
*/
type Group struct {
	Id          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`
}

func (g Group) String() string {
	return g.Title
}
