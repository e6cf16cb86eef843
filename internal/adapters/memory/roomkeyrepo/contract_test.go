package roomkeyrepo

import (
	"testing"

	"github.com/petorang/superpet-api/internal/adapters/contracttest"
	memroomrepo "github.com/petorang/superpet-api/internal/adapters/memory/roomrepo"
	roomkeyrepoport "github.com/petorang/superpet-api/internal/ports/out/roomkeyrepo"
	roomrepoport "github.com/petorang/superpet-api/internal/ports/out/roomrepo"
)

func TestContract(t *testing.T) {
	t.Parallel()
	contracttest.RunRoomKeyRepo(t, func(t *testing.T) (roomrepoport.Repository, roomkeyrepoport.Repository, contracttest.CleanupFunc) {
		rooms := memroomrepo.NewRepo()
		return rooms, NewRepo(rooms), nil
	})
}
