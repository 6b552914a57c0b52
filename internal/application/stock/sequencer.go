package stock

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// DefaultSequencerAttempts reintentos del reclamo de número antes de rendirse.
const DefaultSequencerAttempts = 5

// VoucherSequencer genera números de comprobante {PREFIJO}-{YYYYMM}-{secuencia de 5 dígitos}
// únicos por (tenant, tipo de comprobante, mes). La unicidad bajo concurrencia no depende
// de un lock global: se lee la secuencia más alta reclamada, se intenta insertar el reclamo
// y si otra transacción ganó el mismo número (violación de UNIQUE) se reintenta con una
// lectura fresca, hasta un tope de intentos.
type VoucherSequencer struct {
	postings    repository.StockPostingRepository
	maxAttempts int
}

// NewVoucherSequencer construye el secuenciador. maxAttempts <= 0 usa el default.
func NewVoucherSequencer(postings repository.StockPostingRepository, maxAttempts int) *VoucherSequencer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSequencerAttempts
	}
	return &VoucherSequencer{postings: postings, maxAttempts: maxAttempts}
}

// Next reclama y devuelve el siguiente número de comprobante para el movimiento.
// Debe llamarse dentro de la misma transacción del movimiento: el reclamo se
// revierte junto con todo lo demás si el request falla.
func (s *VoucherSequencer) Next(tenantID, movementType string, postingDate time.Time) (string, error) {
	voucherType := entity.VoucherTypeFor(movementType)
	prefix := fmt.Sprintf("%s-%s", entity.VoucherPrefixFor(movementType), postingDate.Format("200601"))

	var voucherNo string
	err := retryOnConflict(s.maxAttempts, func() error {
		seq, err := s.postings.MaxSequence(tenantID, voucherType, prefix)
		if err != nil {
			return err
		}
		candidate := fmt.Sprintf("%s-%05d", prefix, seq+1)
		claim := &entity.StockPosting{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			VoucherType: voucherType,
			VoucherNo:   candidate,
			Status:      entity.PostingStatusDraft,
			CreatedAt:   time.Now(),
		}
		if err := s.postings.Claim(claim); err != nil {
			return err
		}
		voucherNo = candidate
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Tope de reintentos agotado: anomalía operativa, no error del caller.
			return "", fmt.Errorf("secuencia %s agotó %d intentos: %w", prefix, s.maxAttempts, domain.ErrSequencingConflict)
		}
		return "", err
	}
	return voucherNo, nil
}

// retryOnConflict ejecuta fn hasta attempts veces mientras falle con domain.ErrDuplicate
// (inserción optimista perdió la carrera de unicidad). Cualquier otro error corta de inmediato.
// Patrón reutilizable para cualquier generador de identificadores monotónicos bajo concurrencia.
func retryOnConflict(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	return err
}
