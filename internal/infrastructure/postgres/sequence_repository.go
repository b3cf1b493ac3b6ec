package postgres

import (
	"context"
	"fmt"

	"github.com/pesl98/erp/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador atómico de numeración de documentos sobre
// PostgreSQL. El upsert-incremento toma el row lock de la fila
// (doc_type, year): dos llamadas concurrentes serializan ahí y nunca
// devuelven el mismo valor.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador del contador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente valor de la secuencia (docType, year), empezando en 1.
func (r *SequenceRepo) Next(docType string, year int) (int64, error) {
	query := `
		INSERT INTO document_sequences (doc_type, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var value int64
	if err := r.q.QueryRow(context.Background(), query, docType, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence %s/%d: %w", docType, year, err)
	}
	return value, nil
}
