package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cfdi-api/internal/domain/entity"
	"github.com/jhoicas/cfdi-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const tableFacturas = "facturas"

var invoiceColumns = []string{
	"id_factura", "tipo", "rfc_emisor", "rfc_receptor", "total", "fecha", "serie", "folio", "moneda",
}

// upsertSuffix: en conflicto sólo se corrigen total y fecha (reenvíos con monto enmendado).
// xmax = 0 sólo en filas recién insertadas.
const upsertSuffix = `ON CONFLICT (id_factura) DO UPDATE
		SET total = EXCLUDED.total,
		    fecha = EXCLUDED.fecha,
		    updated_at = NOW()
		RETURNING (xmax = 0) AS inserted`

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Upsert inserta la factura o actualiza total y fecha si el id_factura ya existe.
func (r *InvoiceRepo) Upsert(ctx context.Context, inv *entity.Invoice) (bool, error) {
	sql, args, err := buildUpsert(inv)
	if err != nil {
		return false, err
	}
	var inserted bool
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&inserted); err != nil {
		return false, wrapErr("upsert factura "+inv.ID, err)
	}
	return inserted, nil
}

// ListByType devuelve las facturas de un tipo ordenadas por fecha descendente.
func (r *InvoiceRepo) ListByType(ctx context.Context, t entity.InvoiceType) ([]*entity.Invoice, error) {
	sql, args, err := buildListByType(t)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, "listar facturas "+string(t), sql, args...)
}

// ListAll devuelve todas las facturas.
func (r *InvoiceRepo) ListAll(ctx context.Context) ([]*entity.Invoice, error) {
	sql, args, err := psql.Select(invoiceColumns...).From(tableFacturas).OrderBy("id_factura").ToSql()
	if err != nil {
		return nil, err
	}
	return r.list(ctx, "listar facturas", sql, args...)
}

// ReplaceID cambia id_factura de oldID a newID. Si newID ya existe la fila de oldID es un
// duplicado y se elimina.
func (r *InvoiceRepo) ReplaceID(ctx context.Context, oldID, newID string) error {
	if oldID == newID {
		return nil
	}
	return runInTx(ctx, r.q, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM facturas WHERE id_factura = $1)`, newID,
		).Scan(&exists); err != nil {
			return wrapErr("buscar factura "+newID, err)
		}
		var stmt squirrel.Sqlizer
		if exists {
			stmt = psql.Delete(tableFacturas).Where(squirrel.Eq{"id_factura": oldID})
		} else {
			stmt = psql.Update(tableFacturas).
				Set("id_factura", newID).
				Set("updated_at", squirrel.Expr("NOW()")).
				Where(squirrel.Eq{"id_factura": oldID})
		}
		sql, args, err := stmt.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return wrapErr("reemplazar id "+oldID, err)
		}
		return nil
	})
}

// Ping verifica la conexión (sólo disponible sobre el pool).
func (r *InvoiceRepo) Ping(ctx context.Context) error {
	p, ok := r.q.(pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}

func (r *InvoiceRepo) list(ctx context.Context, op, sql string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		var inv entity.Invoice
		var tipo string
		if err := rows.Scan(
			&inv.ID, &tipo, &inv.IssuerRFC, &inv.ReceiverRFC, &inv.Total,
			&inv.Date, &inv.Series, &inv.Folio, &inv.Currency,
		); err != nil {
			return nil, wrapErr("scan factura", err)
		}
		inv.Type = entity.InvoiceType(tipo)
		if !inv.Type.Valid() {
			return nil, fmt.Errorf("scan factura %s: tipo desconocido %q", inv.ID, tipo)
		}
		list = append(list, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return list, nil
}

func buildUpsert(inv *entity.Invoice) (string, []any, error) {
	return psql.Insert(tableFacturas).
		Columns(invoiceColumns...).
		Values(
			inv.ID, string(inv.Type), inv.IssuerRFC, inv.ReceiverRFC, inv.Total,
			inv.Date, inv.Series, inv.Folio, inv.Currency,
		).
		Suffix(upsertSuffix).
		ToSql()
}

func buildListByType(t entity.InvoiceType) (string, []any, error) {
	return psql.Select(invoiceColumns...).
		From(tableFacturas).
		Where(squirrel.Eq{"tipo": string(t)}).
		OrderBy("fecha DESC", "id_factura").
		ToSql()
}
