package store

import (
	"context"
	"errors"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/models"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the credential store operations the auth service
// depends on.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type userRepository struct {
	store *Store
	coll  *mongo.Collection
}

func newUserRepository(s *Store) UserRepository {
	return &userRepository{
		store: s,
		coll:  s.db.Collection("users"),
	}
}

// Create inserts a new user. A duplicate email violates the unique index
// and comes back as a Duplicate error.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	return r.store.run(ctx, "users", "insert", func(ctx context.Context) error {
		_, err := r.coll.InsertOne(ctx, user)
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Duplicate("Email already exists")
		}
		return err
	})
}

// FindByEmail looks a user up by exact email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.store.run(ctx, "users", "get", func(ctx context.Context) error {
		return r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return &user, nil
}

// FindByID looks a user up by hex id.
func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "Invalid _id: %s", id)
	}

	var user models.User
	err = r.store.run(ctx, "users", "get", func(ctx context.Context) error {
		return r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return &user, nil
}
