package integration

import (
	"context"
	"testing"
	"time"

	"shopkart/internal/database"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// TestDB holds a MongoDB test container and a client connected to it.
type TestDB struct {
	Container *mongodb.MongoDBContainer
	Client    *mongo.Client
	DB        *mongo.Database
}

// SetupTestDB starts a MongoDB container, connects a client and creates the
// application indexes.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongodb container: %v", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to mongodb: %v", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		t.Fatalf("failed to ping mongodb: %v", err)
	}

	db := client.Database("shopkart_test")
	if err := database.EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("failed to ensure indexes: %v", err)
	}

	return &TestDB{Container: container, Client: client, DB: db}
}

// Cleanup disconnects the client and terminates the container.
func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	if err := tdb.Client.Disconnect(ctx); err != nil {
		t.Logf("failed to disconnect client: %v", err)
	}
	if err := testcontainers.TerminateContainer(tdb.Container); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
