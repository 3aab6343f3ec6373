package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/milestone-dev/milestone/pkg/cache"
	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/project"
)

const (
	projectsCollection = "projects"
	blobsCollection    = "blobs"
)

// projectDoc is the stored form of a project. The UUID is kept as a string
// _id so documents stay readable in the mongo shell.
type projectDoc struct {
	ID              string `bson:"_id"`
	project.Project `bson:",inline"`
}

type blobDoc struct {
	Name      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toDoc(p *project.Project) projectDoc {
	return projectDoc{ID: p.ID.String(), Project: *p}
}

func fromDoc(d projectDoc) (*project.Project, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse stored id %q: %w", d.ID, err)
	}
	p := d.Project
	p.ID = id
	return &p, nil
}

// MongoStore keeps projects in MongoDB.
type MongoStore struct {
	client   *mongo.Client
	projects *mongo.Collection
	blobs    *mongo.Collection
	now      func() time.Time
}

// NewMongoStore connects to uri and checks the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:   client,
		projects: db.Collection(projectsCollection),
		blobs:    db.Collection(blobsCollection),
		now:      time.Now,
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var doc projectDoc
	err := s.projects.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return fromDoc(doc)
}

func (s *MongoStore) List(ctx context.Context) ([]*project.Project, error) {
	cur, err := s.projects.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	out := make([]*project.Project, 0, len(docs))
	for _, d := range docs {
		p, err := fromDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *MongoStore) Put(ctx context.Context, p *project.Project) error {
	err := s.put(ctx, p)
	emitSave(ctx, "mongo", p.ID, err)
	return err
}

func (s *MongoStore) put(ctx context.Context, p *project.Project) error {
	if err := prepare(p, s.now()); err != nil {
		return err
	}
	p.Revision++
	_, err := s.projects.ReplaceOne(ctx, bson.M{"_id": p.ID.String()}, toDoc(p),
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.projects.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		err = fmt.Errorf("delete project: %w", err)
	} else if res.DeletedCount == 0 {
		err = notFound(id)
	}
	emitDelete(ctx, "mongo", id, err)
	return err
}

// Update retries when another writer changed the document between the read
// and the write.
func (s *MongoStore) Update(ctx context.Context, id uuid.UUID, fn func(p *project.Project) error) (*project.Project, error) {
	var out *project.Project
	err := cache.RetryWithBackoff(ctx, func() error {
		p, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		orig := p.Clone()
		if err := fn(p); err != nil {
			if err == ErrNoChange {
				out = orig
				return nil
			}
			return err
		}
		p.ID = id
		if err := prepare(p, s.now()); err != nil {
			return err
		}

		seen := p.Revision
		p.Revision++
		res, err := s.projects.ReplaceOne(ctx, bson.M{"_id": id.String(), "revision": seen}, toDoc(p))
		if err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		if res.MatchedCount == 0 {
			return cache.Retryable(errors.New(errors.ErrCodeConflict, "project %s was modified concurrently", id))
		}
		out = p
		return nil
	})
	emitSave(ctx, "mongo", id, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) GetBlob(ctx context.Context, name string) ([]byte, error) {
	if err := validBlobName(name); err != nil {
		return nil, err
	}
	var doc blobDoc
	err := s.blobs.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, blobNotFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("find blob: %w", err)
	}
	return doc.Data, nil
}

func (s *MongoStore) PutBlob(ctx context.Context, name string, data []byte) error {
	if err := validBlobName(name); err != nil {
		return err
	}
	doc := blobDoc{Name: name, Data: data, UpdatedAt: s.now().UTC()}
	_, err := s.blobs.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save blob: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
