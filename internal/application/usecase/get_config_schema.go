package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/briwestervelt/formal/internal/application/port"
	"github.com/briwestervelt/formal/internal/domain/entity"
)

// GetConfigSchemaUseCase lists the configuration keys formal understands.
type GetConfigSchemaUseCase struct {
	provider port.ConfigSchemaProvider
}

// NewGetConfigSchemaUseCase creates a new GetConfigSchemaUseCase.
func NewGetConfigSchemaUseCase(provider port.ConfigSchemaProvider) *GetConfigSchemaUseCase {
	return &GetConfigSchemaUseCase{
		provider: provider,
	}
}

// GetConfigSchemaInput contains input parameters for schema retrieval.
type GetConfigSchemaInput struct {
	// Section limits the result to one section, matched case-insensitively.
	Section string
}

// GetConfigSchemaOutput contains the schema information.
type GetConfigSchemaOutput struct {
	Keys []entity.ConfigKeyInfo
}

// Execute returns the configuration keys ordered by section, then key.
func (uc *GetConfigSchemaUseCase) Execute(_ context.Context, input GetConfigSchemaInput) (*GetConfigSchemaOutput, error) {
	all := uc.provider.GetSchema()

	keys := make([]entity.ConfigKeyInfo, 0, len(all))
	for _, k := range all {
		if input.Section != "" && !strings.EqualFold(k.Section, input.Section) {
			continue
		}
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].Section != keys[j].Section {
			return keys[i].Section < keys[j].Section
		}
		return keys[i].Key < keys[j].Key
	})

	return &GetConfigSchemaOutput{
		Keys: keys,
	}, nil
}
