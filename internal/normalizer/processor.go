package normalizer

import (
	"fmt"

	"catalogo/internal/models"
)

// Processor turns a raw table into a validated catalog.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a processor for the given column classification.
func NewProcessor(classes Classification) *Processor {
	return &Processor{
		validator:   NewValidator(classes),
		transformer: NewTransformer(classes),
	}
}

// Process transforms table into a catalog. The table is not modified.
func (p *Processor) Process(table *models.Table) (*models.Catalog, error) {
	if table == nil {
		return nil, ErrNilTable
	}

	catalog := p.transformer.Transform(table)

	if err := p.validator.Validate(table, catalog); err != nil {
		return nil, fmt.Errorf("normalized catalog failed validation: %w", err)
	}

	return catalog, nil
}
