package service

import (
	"context"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/model"
	"nutritrack/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, changes model.ProfileChanges) (*model.User, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockUploader is a mock implementation of ImageUploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) SaveProfileImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, fh)
	return args.String(0), args.Error(1)
}

func (m *MockUploader) Remove(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// memoryMealRepository is an in-memory MealRepository.
type memoryMealRepository struct {
	mu    sync.Mutex
	meals map[string]model.Meal
	err   error
}

func newMemoryMealRepository() *memoryMealRepository {
	return &memoryMealRepository{meals: map[string]model.Meal{}}
}

func (r *memoryMealRepository) Create(_ context.Context, meal *model.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	now := time.Now().UTC()
	meal.CreatedAt, meal.UpdatedAt = now, now
	r.meals[meal.ID] = *meal
	return nil
}

func (r *memoryMealRepository) FindByIDForOwner(_ context.Context, ownerID, id string) (*model.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	meal, ok := r.meals[id]
	if !ok || meal.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &meal, nil
}

func (r *memoryMealRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Meal, error) {
	return r.ListByOwnerBetween(ctx, ownerID, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (r *memoryMealRepository) ListByOwnerBetween(_ context.Context, ownerID string, from, to time.Time) ([]model.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []model.Meal{}
	for _, m := range r.meals {
		if m.UserID == ownerID && !m.Date.Before(from) && m.Date.Before(to) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memoryMealRepository) Update(_ context.Context, meal *model.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.meals[meal.ID]
	if !ok || stored.UserID != meal.UserID {
		return repository.ErrNotFound
	}
	meal.UpdatedAt = time.Now().UTC()
	r.meals[meal.ID] = *meal
	return nil
}

func (r *memoryMealRepository) DeleteForOwner(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	meal, ok := r.meals[id]
	if !ok || meal.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.meals, id)
	return nil
}
