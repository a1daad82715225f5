package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nutritrack/internal/model"
)

const mealsCollection = "meals"

type mongoMealRepository struct {
	coll *mongo.Collection
}

// NewMongoMealRepository creates a document store backed meal repository.
func NewMongoMealRepository(db *mongo.Database) MealRepository {
	return &mongoMealRepository{coll: db.Collection(mealsCollection)}
}

// EnsureMealIndexes creates the owner and date index used by listings.
func EnsureMealIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(mealsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create meals owner index: %w", err)
	}
	return nil
}

func (r *mongoMealRepository) Create(ctx context.Context, meal *model.Meal) error {
	now := time.Now().UTC()
	if meal.ID == "" {
		meal.ID = model.NewID()
	}
	meal.CreatedAt, meal.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, meal)
	return translateMongo(err)
}

func (r *mongoMealRepository) FindByIDForOwner(ctx context.Context, ownerID, id string) (*model.Meal, error) {
	var meal model.Meal
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&meal); err != nil {
		return nil, translateMongo(err)
	}
	return &meal, nil
}

func (r *mongoMealRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Meal, error) {
	return r.find(ctx, bson.M{"userId": ownerID})
}

func (r *mongoMealRepository) ListByOwnerBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Meal, error) {
	return r.find(ctx, bson.M{
		"userId": ownerID,
		"date":   bson.M{"$gte": from, "$lt": to},
	})
}

func (r *mongoMealRepository) Update(ctx context.Context, meal *model.Meal) error {
	meal.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": meal.ID, "userId": meal.UserID}, meal)
	if err != nil {
		return translateMongo(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoMealRepository) DeleteForOwner(ctx context.Context, ownerID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return translateMongo(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoMealRepository) find(ctx context.Context, filter bson.M) ([]model.Meal, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, translateMongo(err)
	}
	defer cur.Close(ctx)

	meals := []model.Meal{}
	if err := cur.All(ctx, &meals); err != nil {
		return nil, translateMongo(err)
	}
	return meals, nil
}
