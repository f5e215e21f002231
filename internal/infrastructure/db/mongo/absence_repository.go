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

const collectionAbsences = "absences"

type AbsenceRepository struct {
	col *mongo.Collection
}

func NewAbsenceRepository(db *mongo.Database) *AbsenceRepository {
	return &AbsenceRepository{col: db.Collection(collectionAbsences)}
}

func (r *AbsenceRepository) Find(ctx context.Context, studentID, courseID int64, date time.Time) (*domain.Absence, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Absence
	err := r.col.FindOne(ctx, absenceKey(studentID, courseID, date)).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAbsenceNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AbsenceRepository) List(ctx context.Context, filter ports.AbsenceFilter, page ports.PageRequest) ([]domain.Absence, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.StudentID != nil {
		query["student_id"] = *filter.StudentID
	}
	if filter.CourseID != nil {
		query["course_id"] = *filter.CourseID
	}
	if filter.Date != nil {
		query["date"] = *filter.Date
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var absences []domain.Absence
	if err := cur.All(ctx, &absences); err != nil {
		return nil, 0, err
	}
	return absences, total, nil
}

func (r *AbsenceRepository) Create(ctx context.Context, a *domain.Absence) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateAbsence
	}
	return err
}

func (r *AbsenceRepository) Delete(ctx context.Context, studentID, courseID int64, date time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, absenceKey(studentID, courseID, date))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrAbsenceNotFound
	}
	return nil
}

// EnsureIndexes enforces the (student, course, date) natural key.
func (r *AbsenceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "course_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "course_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func absenceKey(studentID, courseID int64, date time.Time) bson.M {
	return bson.M{"student_id": studentID, "course_id": courseID, "date": date}
}
