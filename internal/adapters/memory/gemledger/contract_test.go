package gemledger

import (
	"testing"

	"github.com/petorang/superpet-api/internal/adapters/contracttest"
	gemledgerport "github.com/petorang/superpet-api/internal/ports/out/gemledger"
)

func TestContract(t *testing.T) {
	t.Parallel()
	contracttest.RunGemLedger(t, func(t *testing.T) (gemledgerport.Repository, contracttest.CleanupFunc) {
		return NewRepo(), nil
	})
}
