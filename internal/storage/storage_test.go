package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maitred/internal/models"
)

func price(v float64) *float64 { return &v }

func calories(v int) *int { return &v }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMenuRoundTrip(t *testing.T) {
	repo := NewMenuRepository(openTestDB(t))

	items := []models.MenuItem{
		{
			Name:            "3 Finger Combo",
			Category:        models.CategoryCombos,
			Price:           price(8.99),
			ComboComponents: []string{"Chicken Fingers", "Fries", "Texas Toast", "Cane's Sauce"},
		},
		{
			Name:       "Sweet Tea",
			Category:   models.CategoryDrinks,
			IceOptions: []string{"Cane's Ice", "No Ice"},
			Sizes: []models.SizeOption{
				{Label: "Small", Price: 1.99, Calories: calories(120)},
				{Label: "Large", Price: 2.99, Calories: calories(190)},
			},
		},
	}
	require.NoError(t, repo.ReplaceAll(items))

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := repo.ListItems()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, items[0], loaded[0])
	assert.Equal(t, items[1], loaded[1])
}

func TestMenuReplaceAllOverwrites(t *testing.T) {
	repo := NewMenuRepository(openTestDB(t))

	require.NoError(t, repo.ReplaceAll([]models.MenuItem{
		{Name: "Fries", Category: models.CategoryExtras, Price: price(1.00)},
	}))
	require.NoError(t, repo.ReplaceAll([]models.MenuItem{
		{Name: "Coleslaw", Category: models.CategoryExtras, Price: price(1.49)},
	}))

	loaded, err := repo.ListItems()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Coleslaw", loaded[0].Name)
}

func TestOrderSaveAndLatest(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))

	first := models.OrderDocument{
		SessionID:  "s1",
		CustomerID: "cus_abc",
		Items: []models.OrderLine{{
			Identity:    models.LineIdentity{Base: "Sweet Tea", Size: "Small", Ice: "Cane's Ice"},
			DisplayName: "Sweet Tea (Small)",
			UnitPrice:   1.99,
			Quantity:    2,
		}},
		Total:     3.98,
		Timestamp: time.Now().UTC().Add(-time.Hour),
	}
	second := first
	second.SessionID = "s2"
	second.Items = []models.OrderLine{{
		Identity:    models.LineIdentity{Base: "Lemonade", Size: "Small", Ice: "Cane's Ice"},
		DisplayName: "Lemonade (Small)",
		UnitPrice:   2.49,
		Quantity:    1,
	}}
	second.Total = 2.49
	second.Timestamp = time.Now().UTC()

	require.NoError(t, repo.Save(first))
	// Ordering is on created_at; keep the inserts from landing on the
	// same timestamp.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Save(second))

	doc, found, err := repo.LatestForCustomer("cus_abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "s2", doc.SessionID)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "Lemonade (Small)", doc.Items[0].DisplayName)
	assert.InDelta(t, 2.49, doc.Total, 0.001)
}

func TestLatestForUnknownCustomer(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))

	_, found, err := repo.LatestForCustomer("cus_nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserCreateAndLookup(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	require.NoError(t, repo.Create("cust@example.com", "hash", "cus_abc"))

	rec, found, err := repo.ByEmail("cust@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "cus_abc", rec.CustomerID)

	_, found, err = repo.ByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadMenuFile(t *testing.T) {
	seed := `
- name: Sweet Tea
  category: Drinks
  iceOptions: ["Cane's Ice", "No Ice"]
  sizes:
    - label: Small
      price: 1.99
      calories: 120
    - label: Large
      price: 2.99
- name: Fries
  category: Extras
  price: 1.00
  calories: 390
`
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	items, err := LoadMenuFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Sweet Tea", items[0].Name)
	require.Len(t, items[0].Sizes, 2)
	assert.Equal(t, 120, *items[0].Sizes[0].Calories)
	assert.Nil(t, items[0].Sizes[1].Calories)
	assert.Equal(t, 390, *items[1].Calories)
}

func TestLoadMenuFileMissing(t *testing.T) {
	_, err := LoadMenuFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
