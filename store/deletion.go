package store

import (
	"reflect"

	"github.com/Luismorlan/blogmux/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// OnDelete is what happens to a dependent row when the row it references is
// deleted.
type OnDelete int

const (
	// Cascade deletes the dependent row, recursively.
	Cascade OnDelete = iota
	// SetNull keeps the dependent row and nulls its reference.
	SetNull
)

// Relation is a foreign key from Child.ForeignKey to Parent's primary key.
type Relation struct {
	Parent     interface{}
	Child      interface{}
	ForeignKey string
	Policy     OnDelete
}

// Relations lists every reference of the data model with its deletion
// policy. It mirrors the constraint tags on the model so the same behavior
// holds whether or not the database enforces foreign keys.
var Relations = []Relation{
	{Parent: &model.User{}, Child: &model.Post{}, ForeignKey: "author_id", Policy: Cascade},
	{Parent: &model.Group{}, Child: &model.Post{}, ForeignKey: "group_id", Policy: SetNull},
	{Parent: &model.Post{}, Child: &model.Comment{}, ForeignKey: "post_id", Policy: Cascade},
	{Parent: &model.User{}, Child: &model.Comment{}, ForeignKey: "author_id", Policy: Cascade},
	{Parent: &model.User{}, Child: &model.Follow{}, ForeignKey: "user_id", Policy: Cascade},
	{Parent: &model.User{}, Child: &model.Follow{}, ForeignKey: "author_id", Policy: Cascade},
}

func modelType(m interface{}) reflect.Type {
	return reflect.TypeOf(m).Elem()
}

func newModel(t reflect.Type) interface{} {
	return reflect.New(t).Interface()
}

// deleteWithDependents applies every relation whose parent is of parentType
// to the rows ids, then deletes those rows.
func deleteWithDependents(tx *gorm.DB, parentType reflect.Type, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	for _, rel := range Relations {
		if modelType(rel.Parent) != parentType {
			continue
		}
		childType := modelType(rel.Child)
		switch rel.Policy {
		case SetNull:
			err := tx.Model(newModel(childType)).
				Where(rel.ForeignKey+" IN ?", ids).
				Update(rel.ForeignKey, nil).Error
			if err != nil {
				return errors.Wrapf(err, "fail to null %s.%s", childType.Name(), rel.ForeignKey)
			}
		case Cascade:
			var childIds []uint
			err := tx.Model(newModel(childType)).
				Where(rel.ForeignKey+" IN ?", ids).
				Pluck("id", &childIds).Error
			if err != nil {
				return errors.Wrapf(err, "fail to find dependent %s", childType.Name())
			}
			if err := deleteWithDependents(tx, childType, childIds); err != nil {
				return err
			}
		}
	}
	err := tx.Where("id IN ?", ids).Delete(newModel(parentType)).Error
	return errors.Wrapf(err, "fail to delete %s", parentType.Name())
}

func (s *Store) deleteRows(m interface{}, ids ...uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return deleteWithDependents(tx, modelType(m), ids)
	})
}

// DeleteUser deletes a user with its posts, comments and follows.
func (s *Store) DeleteUser(user *model.User) error {
	return s.deleteRows(&model.User{}, user.Id)
}

// DeleteGroup deletes a group, its posts survive without a group.
func (s *Store) DeleteGroup(group *model.Group) error {
	return s.deleteRows(&model.Group{}, group.Id)
}

// DeletePost deletes a post with its comments.
func (s *Store) DeletePost(post *model.Post) error {
	return s.deleteRows(&model.Post{}, post.Id)
}
