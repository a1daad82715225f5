package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"nutritrack/internal/config"
)

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{StoreDriver: "sqlite"})
	assert.ErrorContains(t, err, "unsupported store driver")
}

func TestOpenSQL_UnknownDriver(t *testing.T) {
	_, err := OpenSQL("oracle", "dsn")
	assert.ErrorContains(t, err, "unsupported sql driver")
}

func TestStore_CloseNil(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Close(context.Background()))
}
