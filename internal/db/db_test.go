package db

import (
	"path/filepath"
	"testing"

	"github.com/shinyyama/crib-match-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "host and port",
			cfg:  config.Config{DBUser: "crib", DBPassword: "pw", DBHost: "db.local", DBPort: "3307", DBName: "crib"},
			want: "crib:pw@tcp(db.local:3307)/crib?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "cloud sql instance",
			cfg:  config.Config{DBUser: "crib", DBPassword: "pw", DBHost: "ignored", InstanceConnectionName: "proj:region:inst", DBName: "crib"},
			want: "crib:pw@unix(/cloudsql/proj:region:inst)/crib?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "explicit tcp",
			cfg:  config.Config{DBUser: "crib", DBPassword: "pw", DBHost: "tcp(10.0.0.1:3306)", DBName: "crib"},
			want: "crib:pw@tcp(10.0.0.1:3306)/crib?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "socket path",
			cfg:  config.Config{DBUser: "crib", DBPassword: "pw", DBHost: "/var/run/mysqld.sock", DBName: "crib"},
			want: "crib:pw@unix(/var/run/mysqld.sock)/crib?charset=utf8mb4&parseTime=True&loc=Local",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDSN(&tt.cfg))
		})
	}
}

func TestConnectSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "crib.db")}

	conn, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	for _, table := range []string{"renter_preferences", "landlord_preferences", "matches", "user_tokens", "unlocked_features", "chats", "chat_messages"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
