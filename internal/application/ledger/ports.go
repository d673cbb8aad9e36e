package ledger

import (
	"context"

	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que registro del ledger, balances
// rematerializados y estado del cliente se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		changeRepo repository.InventoryChangeRepository,
		balanceRepo repository.InventoryBalanceRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
