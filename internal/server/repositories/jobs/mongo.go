package jobs

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

const CollectionName = "jobs"

type companyDocument struct {
	Name         string `bson:"name"`
	ContactEmail string `bson:"contactEmail,omitempty"`
	ContactPhone string `bson:"contactPhone,omitempty"`
	Website      string `bson:"website,omitempty"`
	Size         int    `bson:"size,omitempty"`
}

type jobDocument struct {
	ID                  primitive.ObjectID `bson:"_id"`
	Title               string             `bson:"title"`
	Type                string             `bson:"type"`
	Description         string             `bson:"description"`
	Company             companyDocument    `bson:"company"`
	Location            string             `bson:"location,omitempty"`
	Salary              float64            `bson:"salary,omitempty"`
	ExperienceLevel     string             `bson:"experienceLevel,omitempty"`
	PostedDate          *time.Time         `bson:"postedDate,omitempty"`
	Status              string             `bson:"status,omitempty"`
	ApplicationDeadline *time.Time         `bson:"applicationDeadline,omitempty"`
	Requirements        []string           `bson:"requirements,omitempty"`
	OwnerID             string             `bson:"owner_id,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
}

func fromJob(j *models.Job) *jobDocument {
	return &jobDocument{
		Title:       j.Title,
		Type:        j.Type,
		Description: j.Description,
		Company: companyDocument{
			Name:         j.Company.Name,
			ContactEmail: j.Company.ContactEmail,
			ContactPhone: j.Company.ContactPhone,
			Website:      j.Company.Website,
			Size:         j.Company.Size,
		},
		Location:            j.Location,
		Salary:              j.Salary,
		ExperienceLevel:     j.ExperienceLevel,
		PostedDate:          j.PostedDate,
		Status:              j.Status,
		ApplicationDeadline: j.ApplicationDeadline,
		Requirements:        j.Requirements,
		OwnerID:             j.OwnerID,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func (d *jobDocument) toJob() *models.Job {
	return &models.Job{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Type:        d.Type,
		Description: d.Description,
		Company: models.Company{
			Name:         d.Company.Name,
			ContactEmail: d.Company.ContactEmail,
			ContactPhone: d.Company.ContactPhone,
			Website:      d.Company.Website,
			Size:         d.Company.Size,
		},
		Location:            d.Location,
		Salary:              d.Salary,
		ExperienceLevel:     d.ExperienceLevel,
		PostedDate:          d.PostedDate,
		Status:              d.Status,
		ApplicationDeadline: d.ApplicationDeadline,
		Requirements:        d.Requirements,
		OwnerID:             d.OwnerID,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidJobID
	}
	return oid, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Job, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := make([]*models.Job, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toJob())
	}
	return out, nil
}

func (r *MongoRepository) get(ctx context.Context, oid primitive.ObjectID) (*jobDocument, error) {
	var doc jobDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &doc, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := r.get(ctx, oid)
	if err != nil {
		return nil, err
	}
	return doc.toJob(), nil
}

func (r *MongoRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	doc := fromJob(job)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	doc.UpdatedAt = doc.CreatedAt

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toJob(), nil
}

// Update is a read-modify-replace. Concurrent updates of the same job are
// last-writer-wins.
func (r *MongoRepository) Update(ctx context.Context, id string, fn func(job *models.Job) error) (*models.Job, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := r.get(ctx, oid)
	if err != nil {
		return nil, err
	}

	job := doc.toJob()
	if err := fn(job); err != nil {
		return nil, err
	}

	updated := fromJob(job)
	updated.ID = oid
	updated.CreatedAt = doc.CreatedAt
	updated.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, updated)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrJobNotFound
	}
	return updated.toJob(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrJobNotFound
	}
	return nil
}
