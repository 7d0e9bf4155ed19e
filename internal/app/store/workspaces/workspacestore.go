// Package workspacestore persists workspaces (course containers).
package workspacestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/peerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrDuplicateName = errors.New("a workspace with this name already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("workspaces")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Workspace, error) {
	var w models.Workspace
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&w); err != nil {
		return models.Workspace{}, err
	}
	return w, nil
}

func (s *Store) Create(ctx context.Context, w models.Workspace) (models.Workspace, error) {
	now := time.Now().UTC()
	w.ID = primitive.NewObjectID()
	w.NameCI = text.Fold(w.Name)
	if w.Status == "" {
		w.Status = "active"
	}
	w.CreatedAt = now
	w.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, w); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Workspace{}, ErrDuplicateName
		}
		return models.Workspace{}, err
	}
	return w, nil
}
