package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pinger checks the primary of db's deployment for the health endpoints.
type Pinger struct {
	DB *mongo.Database
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.DB.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (p Pinger) Close(ctx context.Context) error {
	return p.DB.Client().Disconnect(ctx)
}
