package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"gitlab.com/thantzin/agencydesk/internal/kvstore"
	"gitlab.com/thantzin/agencydesk/internal/models"
)

// TestFinanceRepository_CRUDModel drives random add/update/delete sequences
// against the repository and checks it stays in lockstep with a plain
// in-memory model of the collection.
func TestFinanceRepository_CRUDModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		repo := NewFinanceRepository(kvstore.NewMemory())
		model := make(map[string]models.FinanceEntry)
		var order []string

		descGen := rapid.StringMatching(`[a-zA-Z ]{1,20}`)
		amountGen := rapid.Int64Range(1, 100000)

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for range steps {
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0: // add
				e := models.FinanceEntry{
					EntryType:       models.EntryExpense,
					Category:        models.CategoryOthers,
					Amount:          decimal.NewFromInt(amountGen.Draw(rt, "amount")),
					Description:     descGen.Draw(rt, "desc"),
					TransactionDate: "2024-03-15",
				}
				require.NoError(rt, repo.Add(&e))
				model[e.ID] = e
				order = append(order, e.ID)
			case 1: // update an existing or missing id
				id := "missing"
				if len(order) > 0 && rapid.Bool().Draw(rt, "existing") {
					id = order[rapid.IntRange(0, len(order)-1).Draw(rt, "pick")]
				}
				desc := descGen.Draw(rt, "newDesc")
				require.NoError(rt, repo.Update(id, models.FinanceEntryUpdate{Description: &desc}))
				if e, ok := model[id]; ok {
					e.Description = desc
					model[id] = e
				}
			case 2: // delete an existing or missing id
				id := "missing"
				if len(order) > 0 && rapid.Bool().Draw(rt, "existing") {
					id = order[rapid.IntRange(0, len(order)-1).Draw(rt, "pick")]
				}
				require.NoError(rt, repo.Delete(id))
				if _, ok := model[id]; ok {
					delete(model, id)
					for i, oid := range order {
						if oid == id {
							order = append(order[:i], order[i+1:]...)
							break
						}
					}
				}
			}
		}

		list, err := repo.List()
		require.NoError(rt, err)
		require.Len(rt, list, len(order))
		for i, id := range order {
			require.Equal(rt, id, list[i].ID)
			require.Equal(rt, model[id].Description, list[i].Description)
			require.True(rt, model[id].Amount.Equal(list[i].Amount))
		}
	})
}
