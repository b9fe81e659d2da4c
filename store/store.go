// Package store is the data-access layer of the blog. Handlers never touch
// gorm directly, every query and mutation they need lives here.
package store

import (
	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/paginator"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Store serves as dependency injection for handlers, add any dependencies
// they require here.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(ErrNotFound, what)
	}
	return errors.Wrap(err, what)
}

func withPostAssociations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Author").Preload("Group")
}

func (s *Store) postQuery() *gorm.DB {
	return s.DB.Model(&model.Post{}).Order(model.PostOrder)
}

// GetOrCreateUser returns the user with the given username, inserting it on
// first sight. Concurrent first sights insert once, the loser reads the
// winner's row.
func (s *Store) GetOrCreateUser(username string) (*model.User, error) {
	if username == "" {
		return nil, errors.New("empty username")
	}
	user, err := s.GetUserByUsername(username)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return user, err
	}
	err = s.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.User{Username: username}).Error
	if err != nil {
		return nil, errors.Wrap(err, "fail to create user "+username)
	}
	return s.GetUserByUsername(username)
}

func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, "user "+username)
	}
	return &user, nil
}

func (s *Store) GetGroupBySlug(slug string) (*model.Group, error) {
	var group model.Group
	if err := s.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, notFound(err, "group "+slug)
	}
	return &group, nil
}

func (s *Store) GetGroup(id uint) (*model.Group, error) {
	var group model.Group
	if err := s.DB.First(&group, id).Error; err != nil {
		return nil, notFound(err, "group")
	}
	return &group, nil
}

// ListGroups returns all groups ordered by title, used to fill the group
// choice of the post form.
func (s *Store) ListGroups() ([]model.Group, error) {
	var groups []model.Group
	err := s.DB.Order("title asc, id asc").Find(&groups).Error
	return groups, errors.Wrap(err, "fail to list groups")
}

func (s *Store) CreateGroup(group *model.Group) error {
	return errors.Wrap(s.DB.Create(group).Error, "fail to create group "+group.Slug)
}

// GetPost loads a post together with its author and group.
func (s *Store) GetPost(id uint) (*model.Post, error) {
	var post model.Post
	if err := withPostAssociations(s.DB).First(&post, id).Error; err != nil {
		return nil, notFound(err, "post")
	}
	return &post, nil
}

// ListPosts pages through every post, newest first.
func (s *Store) ListPosts(rawPage string) ([]model.Post, paginator.Page, error) {
	var posts []model.Post
	page, err := paginator.Fetch(s.postQuery(), rawPage, paginator.PostsPerPage, &posts, withPostAssociations)
	return posts, page, err
}

func (s *Store) ListGroupPosts(group *model.Group, rawPage string) ([]model.Post, paginator.Page, error) {
	var posts []model.Post
	query := s.postQuery().Where("posts.group_id = ?", group.Id)
	page, err := paginator.Fetch(query, rawPage, paginator.PostsPerPage, &posts, withPostAssociations)
	return posts, page, err
}

func (s *Store) ListAuthorPosts(author *model.User, rawPage string) ([]model.Post, paginator.Page, error) {
	var posts []model.Post
	query := s.postQuery().Where("posts.author_id = ?", author.Id)
	page, err := paginator.Fetch(query, rawPage, paginator.PostsPerPage, &posts, withPostAssociations)
	return posts, page, err
}

// ListFollowedPosts pages through posts written by authors user follows. A
// subquery is used so duplicate follow rows never duplicate posts.
func (s *Store) ListFollowedPosts(user *model.User, rawPage string) ([]model.Post, paginator.Page, error) {
	var posts []model.Post
	followed := s.DB.Model(&model.Follow{}).Select("author_id").Where("user_id = ?", user.Id)
	query := s.postQuery().Where("posts.author_id IN (?)", followed)
	page, err := paginator.Fetch(query, rawPage, paginator.PostsPerPage, &posts, withPostAssociations)
	return posts, page, err
}

func (s *Store) CreatePost(post *model.Post) error {
	return createPost(s.DB, post)
}

func createPost(tx *gorm.DB, post *model.Post) error {
	if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
		return errors.Wrap(err, "fail to create post")
	}
	return nil
}

// CreatePostWithImage inserts post, then stores its image through saveImage
// and records the returned key, in one transaction. saveImage only runs once
// the row exists, and no post is left behind when it fails.
func (s *Store) CreatePostWithImage(post *model.Post, saveImage func() (string, error)) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := createPost(tx, post); err != nil {
			return err
		}
		key, err := saveImage()
		if err != nil {
			return errors.Wrap(err, "fail to save post image")
		}
		post.Image = key
		err = tx.Model(&model.Post{Id: post.Id}).Update("image", key).Error
		return errors.Wrap(err, "fail to record post image")
	})
}

// UpdatePost persists the editable columns of post. CreatedAt and the author
// never change. Loaded associations are ignored, GroupID alone decides the
// group.
func (s *Store) UpdatePost(post *model.Post) error {
	err := s.DB.Model(post).
		Omit(clause.Associations).
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	return errors.Wrap(err, "fail to update post")
}

// ListComments returns all comments of a post, newest first.
func (s *Store) ListComments(post *model.Post) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.DB.Preload("Author").
		Where("post_id = ?", post.Id).
		Order(model.CommentOrder).
		Find(&comments).Error
	return comments, errors.Wrap(err, "fail to list comments")
}

func (s *Store) CreateComment(comment *model.Comment) error {
	return errors.Wrap(s.DB.Omit(clause.Associations).Create(comment).Error, "fail to create comment")
}

// IsFollowing reports whether user follows author. A nil user follows no one.
func (s *Store) IsFollowing(user *model.User, author *model.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	var count int64
	err := s.DB.Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", user.Id, author.Id).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "fail to check follow")
}

// Follow makes user follow author, it is a no-op for an existing follow or
// when both are the same user.
func (s *Store) Follow(user *model.User, author *model.User) error {
	if user.Id == author.Id {
		return nil
	}
	var follow model.Follow
	err := s.DB.Where(model.Follow{UserID: user.Id, AuthorID: author.Id}).
		FirstOrCreate(&follow).Error
	return errors.Wrap(err, "fail to follow "+author.Username)
}

// Unfollow removes every follow from user to the author named username. It
// succeeds when there is nothing to remove.
func (s *Store) Unfollow(user *model.User, username string) error {
	authors := s.DB.Model(&model.User{}).Select("id").Where("username = ?", username)
	err := s.DB.Where("user_id = ? AND author_id IN (?)", user.Id, authors).
		Delete(&model.Follow{}).Error
	return errors.Wrap(err, "fail to unfollow "+username)
}

func (s *Store) CountFollows(user *model.User, author *model.User) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", user.Id, author.Id).
		Count(&count).Error
	return count, errors.Wrap(err, "fail to count follows")
}
