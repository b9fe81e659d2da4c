package server

import (
	"time"

	"github.com/Luismorlan/blogmux/media"
	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/paginator"
	. "github.com/Luismorlan/blogmux/utils/log"
	"github.com/jinzhu/copier"
)

// Views are the JSON shapes handlers render. They decouple the response from
// gorm models and resolve image keys into urls.

type UserView struct {
	Id       uint   `json:"id"`
	Username string `json:"username"`
}

type GroupView struct {
	Id          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostView struct {
	Id       uint       `json:"id"`
	Text     string     `json:"text"`
	PubDate  time.Time  `json:"pub_date"`
	Author   UserView   `json:"author"`
	Group    *GroupView `json:"group"`
	Image    string     `json:"image"`
	ImageUrl string     `json:"image_url"`
}

type CommentView struct {
	Id      uint      `json:"id"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Author  UserView  `json:"author"`
}

type PageView struct {
	ObjectList         []PostView `json:"object_list"`
	Number             int        `json:"number"`
	NumPages           int        `json:"num_pages"`
	Count              int64      `json:"count"`
	HasPrevious        bool       `json:"has_previous"`
	HasNext            bool       `json:"has_next"`
	PreviousPageNumber int        `json:"previous_page_number"`
	NextPageNumber     int        `json:"next_page_number"`
}

func newUserView(user *model.User) UserView {
	view := UserView{}
	if err := copier.Copy(&view, user); err != nil {
		Log.WithError(err).WithField("user_id", user.Id).Error("fail to copy user view")
		return UserView{Id: user.Id, Username: user.Username}
	}
	return view
}

func newGroupView(group *model.Group) *GroupView {
	if group == nil {
		return nil
	}
	view := GroupView{}
	if err := copier.Copy(&view, group); err != nil {
		Log.WithError(err).WithField("group_id", group.Id).Error("fail to copy group view")
		return &GroupView{Id: group.Id, Title: group.Title, Slug: group.Slug, Description: group.Description}
	}
	return &view
}

func newPostView(post *model.Post, images media.ImageStore) PostView {
	return PostView{
		Id:       post.Id,
		Text:     post.Text,
		PubDate:  post.CreatedAt,
		Author:   newUserView(&post.Author),
		Group:    newGroupView(post.Group),
		Image:    post.Image,
		ImageUrl: images.GetUrlFromKey(post.Image),
	}
}

func newPostViews(posts []model.Post, images media.ImageStore) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, newPostView(&posts[i], images))
	}
	return views
}

func newCommentViews(comments []model.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, CommentView{
			Id:      comments[i].Id,
			Text:    comments[i].Text,
			Created: comments[i].CreatedAt,
			Author:  newUserView(&comments[i].Author),
		})
	}
	return views
}

func newGroupViews(groups []model.Group) []GroupView {
	views := make([]GroupView, 0, len(groups))
	for i := range groups {
		views = append(views, *newGroupView(&groups[i]))
	}
	return views
}

func newPageView(posts []model.Post, page paginator.Page, images media.ImageStore) PageView {
	return PageView{
		ObjectList:         newPostViews(posts, images),
		Number:             page.Number,
		NumPages:           page.NumPages,
		Count:              page.Count,
		HasPrevious:        page.HasPrevious(),
		HasNext:            page.HasNext(),
		PreviousPageNumber: page.PreviousPageNumber(),
		NextPageNumber:     page.NextPageNumber(),
	}
}
