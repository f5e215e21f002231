package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

const collectionTeachers = "teachers"

type TeacherRepository struct {
	col *mongo.Collection
	db  *mongo.Database
}

func NewTeacherRepository(db *mongo.Database) *TeacherRepository {
	return &TeacherRepository{col: db.Collection(collectionTeachers), db: db}
}

func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*domain.Teacher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Teacher
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeacherNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeacherRepository) List(ctx context.Context, department string, page ports.PageRequest) ([]domain.Teacher, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if department != "" {
		query["department"] = department
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var teachers []domain.Teacher
	if err := cur.All(ctx, &teachers); err != nil {
		return nil, 0, err
	}
	return teachers, total, nil
}

func (r *TeacherRepository) Create(ctx context.Context, t *domain.Teacher) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionTeachers)
	if err != nil {
		return err
	}
	t.ID = id

	_, err = r.col.InsertOne(ctx, t)
	return err
}

func (r *TeacherRepository) Update(ctx context.Context, t *domain.Teacher) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTeacherNotFound
	}
	return nil
}

func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTeacherNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes for teacher filtering.
func (r *TeacherRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
