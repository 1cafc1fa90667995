package estimates

import (
	"fmt"
	"testing"

	"github.com/Leadfive-LLC/estimate-system/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEstimatesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A uniquely named shared-cache DB keeps every pooled connection on the
	// same schema while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  avatar TEXT,
  role TEXT NOT NULL DEFAULT 'ESTIMATOR',
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	clients := `
CREATE TABLE IF NOT EXISTS clients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  address TEXT,
  notes TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  specification TEXT,
  unit TEXT,
  purchase_price REAL,
  markup_rate REAL NOT NULL DEFAULT 1.5,
  unit_price REAL NOT NULL DEFAULT 0,
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	estimates := `
CREATE TABLE IF NOT EXISTS estimates (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  client_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  description TEXT,
  status TEXT NOT NULL DEFAULT 'DRAFT',
  total_amount REAL NOT NULL DEFAULT 0,
  valid_until DATETIME,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	estimateItems := `
CREATE TABLE IF NOT EXISTS estimate_items (
  id TEXT PRIMARY KEY,
  estimate_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  quantity REAL NOT NULL,
  unit_price REAL NOT NULL,
  amount REAL NOT NULL,
  notes TEXT,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`

	for _, stmt := range []string{users, clients, items, estimates, estimateItems} {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func mustCreateUser(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Name:         "Estimator",
		IsActive:     true,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func mustCreateClient(t *testing.T, conn *gorm.DB) *models.Client {
	t.Helper()
	client := &models.Client{
		ID:       uuid.New(),
		Name:     "Yamada Gardens",
		IsActive: true,
	}
	require.NoError(t, conn.Create(client).Error)
	return client
}

func mustCreateItem(t *testing.T, conn *gorm.DB, name string, unitPrice float64) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:         uuid.New(),
		Name:       name,
		Category:   "planting",
		MarkupRate: 1.5,
		UnitPrice:  unitPrice,
		IsActive:   true,
	}
	require.NoError(t, conn.Create(item).Error)
	return item
}
