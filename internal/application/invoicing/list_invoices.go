package invoicing

import (
	"context"
	"fmt"

	"github.com/jhoicas/cfdi-api/internal/application/dto"
	"github.com/jhoicas/cfdi-api/internal/domain/entity"
	"github.com/jhoicas/cfdi-api/internal/domain/repository"
)

// ListInvoicesUseCase consulta las facturas separadas por clasificación.
type ListInvoicesUseCase struct {
	repo repository.InvoiceRepository
}

// NewListInvoicesUseCase construye el caso de uso.
func NewListInvoicesUseCase(repo repository.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{repo: repo}
}

// List devuelve emitidas y recibidas, cada lista por fecha descendente.
func (uc *ListInvoicesUseCase) List(ctx context.Context) (*dto.InvoiceListResponse, error) {
	issued, received, err := uc.listByType(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceListResponse{
		Issued:   dto.NewInvoiceResponses(issued),
		Received: dto.NewInvoiceResponses(received),
	}, nil
}

func (uc *ListInvoicesUseCase) listByType(ctx context.Context) (issued, received []*entity.Invoice, err error) {
	issued, err = uc.repo.ListByType(ctx, entity.InvoiceTypeIssued)
	if err != nil {
		return nil, nil, fmt.Errorf("listar emitidas: %w", err)
	}
	received, err = uc.repo.ListByType(ctx, entity.InvoiceTypeReceived)
	if err != nil {
		return nil, nil, fmt.Errorf("listar recibidas: %w", err)
	}
	return issued, received, nil
}
