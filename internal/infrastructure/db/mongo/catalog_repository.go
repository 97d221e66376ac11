package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionPrograms = "programs"

// ProgramCatalogRepository reads the program → sites reference catalog.
// The catalog is maintained by an external import process; this repository
// only ever reads it.
type ProgramCatalogRepository struct {
	col *mongo.Collection
}

func NewProgramCatalogRepository(db *mongo.Database) *ProgramCatalogRepository {
	return &ProgramCatalogRepository{col: db.Collection(collectionPrograms)}
}

type programDoc struct {
	Name  string   `bson:"_id"`
	Sites []string `bson:"sites"`
}

// SitesFor returns the valid sites for a program. An unknown program yields
// an empty set, not an error.
func (r *ProgramCatalogRepository) SitesFor(ctx context.Context, program string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc programDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": program}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.Sites, nil
}
