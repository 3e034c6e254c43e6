package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-copilot-backend/config"
	"job-copilot-backend/internal/repository"
	"job-copilot-backend/internal/repository/memory"
)

func TestOpen(t *testing.T) {
	t.Run("Should open the memory store", func(t *testing.T) {
		s, err := repository.Open(context.Background(), &config.Config{StoreDriver: config.StoreMemory, FeedbackLogToDB: true})
		require.NoError(t, err)
		defer s.Close()

		assert.Nil(t, s.Pool)
		assert.NotNil(t, s.Records)
		assert.IsType(t, &memory.FeedbackRepo{}, s.Feedback)
	})

	t.Run("Should refuse redis without a client", func(t *testing.T) {
		_, err := repository.Open(context.Background(), &config.Config{StoreDriver: config.StoreRedis})
		assert.Error(t, err)
	})
}
