package store

import (
	"context"
	"time"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "reminders"

type reminderDoc struct {
	ID            int64  `bson:"id"`
	UserID        int64  `bson:"user_id"`
	Message       string `bson:"message"`
	FireTimestamp int64  `bson:"fire_timestamp"`
}

func toDoc(r models.Reminder) reminderDoc {
	return reminderDoc{
		ID:            int64(r.ID),
		UserID:        int64(r.UserID),
		Message:       r.Message,
		FireTimestamp: r.FireTimestamp,
	}
}

func (d reminderDoc) reminder() models.Reminder {
	return models.Reminder{
		ID:            uint64(d.ID),
		UserID:        disgord.Snowflake(d.UserID),
		Message:       d.Message,
		FireTimestamp: d.FireTimestamp,
	}
}

type mongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	log    *common.Logger
}

func openMongo(ctx context.Context, uri, database string, log *common.Logger) (Store, error) {
	if database == "" {
		database = "reminderbot"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, wrap("mongodb", "connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, wrap("mongodb", "ping", err)
	}

	coll := client.Database(database).Collection(mongoCollection)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "id", Value: 1}}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, wrap("mongodb", "create indexes", err)
	}

	log.Debug("opened mongodb reminder store, database", database)
	return &mongoStore{client: client, coll: coll, log: log}, nil
}

func (s *mongoStore) Insert(ctx context.Context, r models.Reminder) error {
	_, err := s.coll.InsertOne(ctx, toDoc(r))
	return wrap("mongodb", "insert", err)
}

func (s *mongoStore) DeleteByID(ctx context.Context, id uint64) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"id": int64(id)})
	return wrap("mongodb", "delete by id", err)
}

func (s *mongoStore) DeleteExact(ctx context.Context, r models.Reminder) error {
	d := toDoc(r)
	_, err := s.coll.DeleteMany(ctx, bson.M{
		"id":             d.ID,
		"user_id":        d.UserID,
		"message":        d.Message,
		"fire_timestamp": d.FireTimestamp,
	})
	return wrap("mongodb", "delete exact", err)
}

func (s *mongoStore) ListAll(ctx context.Context) ([]models.Reminder, error) {
	return s.find(ctx, "list all", bson.M{})
}

func (s *mongoStore) ListByUser(ctx context.Context, userID disgord.Snowflake) ([]models.Reminder, error) {
	return s.find(ctx, "list by user", bson.M{"user_id": int64(userID)})
}

func (s *mongoStore) find(ctx context.Context, op string, filter bson.M) ([]models.Reminder, error) {
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, wrap("mongodb", op, err)
	}

	var docs []reminderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrap("mongodb", op, err)
	}

	reminders := make([]models.Reminder, 0, len(docs))
	for _, d := range docs {
		reminders = append(reminders, d.reminder())
	}
	return reminders, nil
}

func (s *mongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
