package invoicing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-api/internal/application/invoicing"
	"github.com/jhoicas/cfdi-api/internal/domain/cfdi"
	"github.com/jhoicas/cfdi-api/internal/domain/entity"
)

func TestRehash_ActualizaIdentificadoresAntiguos(t *testing.T) {
	repo := newMemRepo()
	seed(repo, "legado-1500.0", entity.InvoiceTypeIssued, "2024-03-01T10:00:00", "1500")
	row := repo.rows["legado-1500.0"]
	want := cfdi.Identify(cfdi.ParamsFromInvoice(&row))
	seed(repo, "x", entity.InvoiceTypeReceived, "2024-03-02T10:00:00", "10")
	current := repo.rows["x"]
	currentID := cfdi.Identify(cfdi.ParamsFromInvoice(&current))
	delete(repo.rows, "x")
	current.ID = currentID
	repo.rows[currentID] = current

	res, err := invoicing.NewRehashUseCase(repo, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 1, res.Changed)
	assert.Contains(t, repo.rows, want)
	assert.NotContains(t, repo.rows, "legado-1500.0")
	assert.Contains(t, repo.rows, currentID)
}

func TestRehash_Idempotente(t *testing.T) {
	repo := newMemRepo()
	seed(repo, "viejo", entity.InvoiceTypeIssued, "2024-03-01T10:00:00", "7")
	uc := invoicing.NewRehashUseCase(repo, nil)

	_, err := uc.Run(context.Background())
	require.NoError(t, err)
	res, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Changed)
}
