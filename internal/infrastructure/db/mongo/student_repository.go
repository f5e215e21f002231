package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

const collectionStudents = "students"

type StudentRepository struct {
	col *mongo.Collection
	db  *mongo.Database
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection(collectionStudents), db: db}
}

func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Student
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) List(ctx context.Context, filter ports.StudentFilter, page ports.PageRequest) ([]domain.Student, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Name != "" {
		pattern := primitiveRegex(filter.Name)
		query["$or"] = bson.A{
			bson.M{"first_name": pattern},
			bson.M{"last_name": pattern},
		}
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.EnrollmentYear != nil {
		query["enrollment_year"] = *filter.EnrollmentYear
	}
	if filter.Status != "" {
		query["status"] = filter.Status
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

	var students []domain.Student
	if err := cur.All(ctx, &students); err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (r *StudentRepository) Create(ctx context.Context, s *domain.Student) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionStudents)
	if err != nil {
		return err
	}
	s.ID = id

	_, err = r.col.InsertOne(ctx, s)
	return err
}

func (r *StudentRepository) Update(ctx context.Context, s *domain.Student) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes for student filtering.
func (r *StudentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "enrollment_year", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// primitiveRegex builds a case-insensitive partial-match regex with the user
// input escaped.
func primitiveRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}
