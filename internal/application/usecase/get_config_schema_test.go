package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briwestervelt/formal/internal/application/port/mocks"
	"github.com/briwestervelt/formal/internal/application/usecase"
	"github.com/briwestervelt/formal/internal/domain/entity"
)

func schemaKeys() []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{Key: "logging.level", Type: "string", Default: "info", Section: "Logging"},
		{Key: "device.inbox_size", Type: "int", Default: "128", Section: "Device"},
		{Key: "device.connected", Type: "bool", Default: "true", Section: "Device"},
	}
}

func TestGetConfigSchemaUseCase_Execute(t *testing.T) {
	t.Run("returns keys ordered by section and key", func(t *testing.T) {
		mockProvider := mocks.NewMockConfigSchemaProvider(t)
		mockProvider.EXPECT().GetSchema().Return(schemaKeys())

		uc := usecase.NewGetConfigSchemaUseCase(mockProvider)

		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{})

		require.NoError(t, err)
		require.Len(t, result.Keys, 3)
		assert.Equal(t, "device.connected", result.Keys[0].Key)
		assert.Equal(t, "device.inbox_size", result.Keys[1].Key)
		assert.Equal(t, "logging.level", result.Keys[2].Key)
	})

	t.Run("filters by section", func(t *testing.T) {
		mockProvider := mocks.NewMockConfigSchemaProvider(t)
		mockProvider.EXPECT().GetSchema().Return(schemaKeys())

		uc := usecase.NewGetConfigSchemaUseCase(mockProvider)

		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{Section: "device"})

		require.NoError(t, err)
		assert.Len(t, result.Keys, 2)
	})

	t.Run("returns empty slice when no keys", func(t *testing.T) {
		mockProvider := mocks.NewMockConfigSchemaProvider(t)
		mockProvider.EXPECT().GetSchema().Return([]entity.ConfigKeyInfo{})

		uc := usecase.NewGetConfigSchemaUseCase(mockProvider)

		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{})

		require.NoError(t, err)
		assert.Empty(t, result.Keys)
	})
}
