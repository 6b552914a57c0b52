package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// StockPostingRepository define el puerto de la tabla de reclamos de numeración.
type StockPostingRepository interface {
	// MaxSequence devuelve la secuencia más alta reclamada para el prefijo
	// (ej. "SR-202608") dentro del tenant y tipo de comprobante; 0 si no hay ninguna.
	MaxSequence(tenantID, voucherType, prefix string) (int, error)
	// Claim inserta el reclamo; si otro transaction ya reclamó el mismo número
	// retorna domain.ErrDuplicate para que el secuenciador reintente.
	Claim(posting *entity.StockPosting) error
}
