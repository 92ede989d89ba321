package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

// CountersCollection holds one sequence document per entity collection.
const CountersCollection = "_counters"

// RecordStore keeps each entity in its own collection keyed by an int64 _id.
type RecordStore struct {
	base *BaseRepo
	now  func() time.Time
}

func NewRecordStore(base *BaseRepo) *RecordStore {
	return &RecordStore{base: base, now: time.Now}
}

func (s *RecordStore) FetchAll(ctx context.Context, collection string, fields []string) ([]record.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if p := projection(fields); p != nil {
		opts.SetProjection(p)
	}

	cursor, err := s.coll(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, record.Transport("list "+collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, record.Transport("decode "+collection, err)
	}

	out := make([]record.Record, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDocument(doc))
	}
	return out, nil
}

func (s *RecordStore) FetchByID(ctx context.Context, collection string, id int64, fields []string) (record.Record, error) {
	opts := options.FindOne()
	if p := projection(fields); p != nil {
		opts.SetProjection(p)
	}

	var doc bson.M
	err := s.coll(collection).FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, record.Transport("get "+collection, err)
	}
	return fromDocument(doc), nil
}

func (s *RecordStore) CreateRecords(ctx context.Context, collection string, records []record.Record) ([]record.Result, error) {
	results := make([]record.Result, 0, len(records))
	for _, rec := range records {
		id, err := s.nextID(ctx, collection)
		if err != nil {
			return nil, record.Transport("allocate "+collection+" id", err)
		}

		now := s.now().UTC()
		doc := toDocument(rec)
		doc["_id"] = id
		doc[record.KeyCreatedOn] = now
		doc[record.KeyModifiedOn] = now

		if _, err := s.coll(collection).InsertOne(ctx, doc); err != nil {
			return nil, record.Transport("create "+collection, err)
		}
		results = append(results, record.Result{ID: id, Success: true, Record: fromDocument(doc)})
	}
	return results, nil
}

func (s *RecordStore) UpdateRecords(ctx context.Context, collection string, records []record.Record) ([]record.Result, error) {
	results := make([]record.Result, 0, len(records))
	for _, patch := range records {
		id := patch.ID()
		set := toDocument(patch)
		delete(set, record.KeyCreatedOn)
		set[record.KeyModifiedOn] = s.now().UTC()

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var doc bson.M
		err := s.coll(collection).FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				results = append(results, record.Result{ID: id, Message: record.MsgNotFound})
				continue
			}
			return nil, record.Transport("update "+collection, err)
		}
		results = append(results, record.Result{ID: id, Success: true, Record: fromDocument(doc)})
	}
	return results, nil
}

func (s *RecordStore) DeleteRecords(ctx context.Context, collection string, ids []int64) ([]record.Result, error) {
	results := make([]record.Result, 0, len(ids))
	for _, id := range ids {
		res, err := s.coll(collection).DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return nil, record.Transport("delete "+collection, err)
		}
		if res.DeletedCount == 0 {
			results = append(results, record.Result{ID: id, Message: record.MsgNotFound})
			continue
		}
		results = append(results, record.Result{ID: id, Success: true})
	}
	return results, nil
}

func (s *RecordStore) Ping(ctx context.Context) error {
	db := s.base.GetDatabase()
	if db == nil {
		return record.Transport("ping mongo", errors.New("not connected"))
	}
	if err := db.Client().Ping(ctx, nil); err != nil {
		return record.Transport("ping mongo", err)
	}
	return nil
}

func (s *RecordStore) nextID(ctx context.Context, collection string) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.coll(CountersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (s *RecordStore) coll(name string) *mongo.Collection {
	return s.base.GetDatabase().Collection(name)
}

func projection(fields []string) bson.M {
	if len(fields) == 0 {
		return nil
	}
	p := bson.M{}
	for _, f := range fields {
		if f == record.KeyID {
			continue
		}
		p[f] = 1
	}
	return p
}

func toDocument(r record.Record) bson.M {
	doc := make(bson.M, len(r))
	for k, v := range r {
		if k == record.KeyID || k == "_id" {
			continue
		}
		doc[k] = v
	}
	return doc
}

func fromDocument(doc bson.M) record.Record {
	r := make(record.Record, len(doc))
	for k, v := range doc {
		if k == "_id" {
			id, _ := record.AsInt64(v)
			r[record.KeyID] = id
			continue
		}
		if dt, ok := v.(primitive.DateTime); ok {
			r[k] = dt.Time()
			continue
		}
		r[k] = v
	}
	return r
}
