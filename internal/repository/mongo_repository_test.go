package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"nutritrack/internal/model"
)

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &model.User{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}
		require.NoError(mt, repo.Create(context.Background(), user))
		assert.NotEmpty(mt, user.ID)
		assert.Equal(mt, model.RoleUser, user.Role)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), &model.User{Email: "ada@example.com"})
		assert.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		ns := mt.DB.Name() + "." + usersCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "firstName", Value: "Ada"},
			{Key: "lastName", Value: "Lovelace"},
		}))

		user, err := repo.FindByEmail(context.Background(), "ada@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", user.ID)
		assert.Equal(mt, "Ada Lovelace", user.FullName())
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		ns := mt.DB.Name() + "." + usersCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("last login on missing user", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.UpdateLastLogin(context.Background(), "missing", time.Now())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoMealRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list by owner", func(mt *mtest.T) {
		repo := NewMongoMealRepository(mt.DB)
		ns := mt.DB.Name() + "." + mealsCollection
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "m2"},
			{Key: "userId", Value: "u1"},
			{Key: "name", Value: "Soup"},
		})
		last := mtest.CreateCursorResponse(0, ns, mtest.NextBatch, bson.D{
			{Key: "_id", Value: "m1"},
			{Key: "userId", Value: "u1"},
			{Key: "name", Value: "Oats"},
		})
		mt.AddMockResponses(first, last)

		meals, err := repo.ListByOwner(context.Background(), "u1")
		require.NoError(mt, err)
		require.Len(mt, meals, 2)
		assert.Equal(mt, "m2", meals[0].ID)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewMongoMealRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteForOwner(context.Background(), "u1", "m1")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoMealRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.DeleteForOwner(context.Background(), "u1", "m1"))
	})

	mt.Run("update foreign meal", func(mt *mtest.T) {
		repo := NewMongoMealRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.Update(context.Background(), &model.Meal{ID: "m1", UserID: "intruder"})
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
