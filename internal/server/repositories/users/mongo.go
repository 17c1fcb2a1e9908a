package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "users"

type userDocument struct {
	ID               primitive.ObjectID `bson:"_id"`
	Name             string             `bson:"name"`
	Username         string             `bson:"username"`
	PasswordHash     string             `bson:"password"`
	PhoneNumber      string             `bson:"phone_number"`
	Gender           string             `bson:"gender"`
	DateOfBirth      string             `bson:"date_of_birth"`
	MembershipStatus string             `bson:"membership_status"`
	Bio              string             `bson:"bio,omitempty"`
	Address          string             `bson:"address"`
	ProfilePicture   string             `bson:"profile_picture,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func fromUser(u *models.User) *userDocument {
	return &userDocument{
		Name:             u.Name,
		Username:         u.Username,
		PasswordHash:     u.PasswordHash,
		PhoneNumber:      u.PhoneNumber,
		Gender:           u.Gender,
		DateOfBirth:      u.DateOfBirth,
		MembershipStatus: u.MembershipStatus,
		Bio:              u.Bio,
		Address:          u.Address,
		ProfilePicture:   u.ProfilePicture,
	}
}

func (d *userDocument) toUser() *models.User {
	return &models.User{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Username:         d.Username,
		PasswordHash:     d.PasswordHash,
		PhoneNumber:      d.PhoneNumber,
		Gender:           d.Gender,
		DateOfBirth:      d.DateOfBirth,
		MembershipStatus: d.MembershipStatus,
		Bio:              d.Bio,
		Address:          d.Address,
		ProfilePicture:   d.ProfilePicture,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique username index. Uniqueness under
// concurrent signups relies on it.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := fromUser(user)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	doc.UpdatedAt = doc.CreatedAt

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errUsernameTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc.toUser(), nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) (*userDocument, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &doc, nil
}

func (r *MongoRepository) GetUserByLogin(ctx context.Context, username string) (*models.User, error) {
	doc, err := r.findOne(ctx, bson.M{"username": username})
	if err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

func (r *MongoRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errUserNotFound
	}

	doc, err := r.findOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

// GetIdentityByID fetches only the id. A malformed id cannot name a stored
// user and is reported as not found.
func (r *MongoRepository) GetIdentityByID(ctx context.Context, id string) (*models.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errUserNotFound
	}

	doc, err := r.findOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	return &models.Identity{ID: doc.ID.Hex()}, nil
}

func (r *MongoRepository) SetProfilePicture(ctx context.Context, id string, key string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"profile_picture": key, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return errUserNotFound
	}
	return nil
}
