package invoicing_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/cfdi-api/internal/application/invoicing"
	"github.com/jhoicas/cfdi-api/internal/domain"
	"github.com/jhoicas/cfdi-api/internal/domain/entity"
)

// memRepo implementa repository.InvoiceRepository en memoria con la misma semántica
// de upsert que Postgres: en conflicto sólo cambian total y fecha.
type memRepo struct {
	mu      sync.Mutex
	rows    map[string]entity.Invoice
	upserts int
	inserts int

	// failAfter > 0: a partir del upsert número failAfter+1 devuelve failErr.
	failAfter int
	failErr   error
	listErr   error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]entity.Invoice)}
}

func (r *memRepo) Upsert(_ context.Context, inv *entity.Invoice) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil && r.upserts >= r.failAfter {
		return false, r.failErr
	}
	r.upserts++
	if cur, ok := r.rows[inv.ID]; ok {
		cur.Total = inv.Total
		cur.Date = inv.Date
		r.rows[inv.ID] = cur
		return false, nil
	}
	r.rows[inv.ID] = *inv
	r.inserts++
	return true, nil
}

func (r *memRepo) ListByType(_ context.Context, t entity.InvoiceType) ([]*entity.Invoice, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.rows {
		if inv.Type == t {
			inv := inv
			out = append(out, &inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memRepo) ListAll(ctx context.Context) ([]*entity.Invoice, error) {
	issued, err := r.ListByType(ctx, entity.InvoiceTypeIssued)
	if err != nil {
		return nil, err
	}
	received, _ := r.ListByType(ctx, entity.InvoiceTypeReceived)
	return append(issued, received...), nil
}

func (r *memRepo) ReplaceID(_ context.Context, oldID, newID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[oldID]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, oldID)
	if _, exists := r.rows[newID]; exists {
		return nil
	}
	row.ID = newID
	r.rows[newID] = row
	return nil
}

func (r *memRepo) Ping(context.Context) error { return nil }

var errDown = fmt.Errorf("upsert: %w: connection refused", domain.ErrStorageUnavailable)

// fakeGenerator captura el reporte recibido.
type fakeGenerator struct {
	got *invoicing.InvoiceReport
	err error
}

func (g *fakeGenerator) GenerateInvoiceReport(_ context.Context, rep *invoicing.InvoiceReport) ([]byte, error) {
	g.got = rep
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

var errGenerator = errors.New("maroto: fuente no encontrada")
