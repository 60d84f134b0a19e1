package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitlab.com/thantzin/agencydesk/internal/kvstore"
	"gitlab.com/thantzin/agencydesk/internal/models"
)

func testCustomer() models.Customer {
	return models.Customer{
		FullName:             "Min Thu",
		PassportNumber:       "MC445821",
		MedicalFitnessStatus: models.MedicalPending,
		AgentName:            "Shwe Pyi",
		VisaStatus:           models.VisaPending,
	}
}

func TestCustomerRepository_Add(t *testing.T) {
	t.Run("assigns id and creation time", func(t *testing.T) {
		repo := NewCustomerRepository(kvstore.NewMemory())
		before := time.Now().UTC()

		c := testCustomer()
		require.NoError(t, repo.Add(&c))

		require.NotEmpty(t, c.ID)
		require.False(t, c.CreatedAt.Before(before.Truncate(time.Second)))

		list, err := repo.List()
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, c, list[0])
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		repo := NewCustomerRepository(kvstore.NewMemory())

		first := testCustomer()
		second := testCustomer()
		second.FullName = "Hla Hla"
		require.NoError(t, repo.Add(&first))
		require.NoError(t, repo.Add(&second))

		list, err := repo.List()
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "Min Thu", list[0].FullName)
		require.Equal(t, "Hla Hla", list[1].FullName)
		require.NotEqual(t, list[0].ID, list[1].ID)
	})

	t.Run("rejects invalid record before any write", func(t *testing.T) {
		kv := kvstore.NewMemory()
		repo := NewCustomerRepository(kv)

		c := testCustomer()
		c.FullName = ""
		err := repo.Add(&c)

		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)

		_, ok, err := kv.Get(kvstore.KeyCustomers)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("rejects colliding identity", func(t *testing.T) {
		repo := NewCustomerRepository(kvstore.NewMemory())

		first := testCustomer()
		second := testCustomer()
		stamp := func(rec *models.Customer, id string, now time.Time) {
			rec.ID = id
			rec.CreatedAt = now
		}
		idOf := func(rec models.Customer) string { return rec.ID }

		require.NoError(t, repo.base.add(&first, "fixed-id", stamp, idOf))
		err := repo.base.add(&second, "fixed-id", stamp, idOf)
		require.ErrorIs(t, err, ErrDuplicateID)

		list, err := repo.List()
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("surfaces quota errors", func(t *testing.T) {
		repo := NewCustomerRepository(kvstore.NewMemoryWithQuota(32))

		c := testCustomer()
		err := repo.Add(&c)
		require.ErrorIs(t, err, kvstore.ErrQuotaExceeded)
	})
}

func TestCustomerRepository_List(t *testing.T) {
	t.Run("empty store yields empty list", func(t *testing.T) {
		repo := NewCustomerRepository(kvstore.NewMemory())

		list, err := repo.List()
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("rejects corrupt payload", func(t *testing.T) {
		kv := kvstore.NewMemory()
		require.NoError(t, kv.Set(kvstore.KeyCustomers, "{broken"))

		_, err := NewCustomerRepository(kv).List()
		require.Error(t, err)
	})
}

func TestCustomerRepository_Update(t *testing.T) {
	t.Run("merges changed fields only", func(t *testing.T) {
		repo := NewCustomerRepository(kvstore.NewMemory())

		c := testCustomer()
		require.NoError(t, repo.Add(&c))

		status := models.VisaApproved
		require.NoError(t, repo.Update(c.ID, models.CustomerUpdate{VisaStatus: &status}))

		list, err := repo.List()
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, models.VisaApproved, list[0].VisaStatus)
		require.Equal(t, c.FullName, list[0].FullName)
		require.Equal(t, c.PassportNumber, list[0].PassportNumber)
		require.Equal(t, c.ID, list[0].ID)
		require.True(t, c.CreatedAt.Equal(list[0].CreatedAt))
	})

	t.Run("rejects invalid merged record without writing", func(t *testing.T) {
		kv := kvstore.NewMemory()
		repo := NewCustomerRepository(kv)

		c := testCustomer()
		require.NoError(t, repo.Add(&c))
		before, _, err := kv.Get(kvstore.KeyCustomers)
		require.NoError(t, err)

		blank := ""
		err = repo.Update(c.ID, models.CustomerUpdate{FullName: &blank})
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "fullName", vErr.Field)

		status := models.VisaStatus("Lost")
		err = repo.Update(c.ID, models.CustomerUpdate{VisaStatus: &status})
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "visaStatus", vErr.Field)

		after, _, err := kv.Get(kvstore.KeyCustomers)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("missing id leaves payload byte for byte unchanged", func(t *testing.T) {
		kv := kvstore.NewMemory()
		repo := NewCustomerRepository(kv)

		c := testCustomer()
		require.NoError(t, repo.Add(&c))
		before, _, err := kv.Get(kvstore.KeyCustomers)
		require.NoError(t, err)

		name := "Nobody"
		require.NoError(t, repo.Update("no-such-id", models.CustomerUpdate{FullName: &name}))

		after, _, err := kv.Get(kvstore.KeyCustomers)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})
}

func TestCustomerRepository_Delete(t *testing.T) {
	t.Run("removes only the matching record", func(t *testing.T) {
		repo := NewCustomerRepository(kvstore.NewMemory())

		first := testCustomer()
		second := testCustomer()
		second.FullName = "Hla Hla"
		require.NoError(t, repo.Add(&first))
		require.NoError(t, repo.Add(&second))

		require.NoError(t, repo.Delete(first.ID))

		list, err := repo.List()
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, second.ID, list[0].ID)
	})

	t.Run("missing id is a no-op", func(t *testing.T) {
		repo := NewCustomerRepository(kvstore.NewMemory())

		c := testCustomer()
		require.NoError(t, repo.Add(&c))
		require.NoError(t, repo.Delete("no-such-id"))

		list, err := repo.List()
		require.NoError(t, err)
		require.Len(t, list, 1)
	})
}

func TestCustomerRepository_ReplaceAll(t *testing.T) {
	repo := NewCustomerRepository(kvstore.NewMemory())

	c := testCustomer()
	require.NoError(t, repo.Add(&c))

	imported := testCustomer()
	imported.ID = "imported-1"
	imported.CreatedAt = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ReplaceAll([]models.Customer{imported}))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "imported-1", list[0].ID)

	require.NoError(t, repo.ReplaceAll(nil))
	list, err = repo.List()
	require.NoError(t, err)
	require.Empty(t, list)
}
