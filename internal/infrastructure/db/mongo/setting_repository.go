package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studentregistry/registry-api/internal/core/domain"
)

const collectionSettings = "settings"

type SettingRepository struct {
	col *mongo.Collection
	db  *mongo.Database
}

func NewSettingRepository(db *mongo.Database) *SettingRepository {
	return &SettingRepository{col: db.Collection(collectionSettings), db: db}
}

func (r *SettingRepository) FindByID(ctx context.Context, id int64) (*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Setting
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) FindByKey(ctx context.Context, key string) (*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Setting
	err := r.col.FindOne(ctx, bson.M{"key": key}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"key": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SettingRepository) List(ctx context.Context) ([]domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var settings []domain.Setting
	if err := cur.All(ctx, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *SettingRepository) Create(ctx context.Context, s *domain.Setting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionSettings)
	if err != nil {
		return err
	}
	s.ID = id

	_, err = r.col.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrSettingExists
	}
	return err
}

func (r *SettingRepository) Update(ctx context.Context, s *domain.Setting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrSettingExists
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSettingNotFound
	}
	return nil
}

func (r *SettingRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSettingNotFound
	}
	return nil
}

func (r *SettingRepository) DeleteByKey(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSettingNotFound
	}
	return nil
}

// EnsureIndexes creates the unique constraint on the setting key.
func (r *SettingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
