// Package products handles admin product mutations. Edits are drafts handed
// to a Committer rather than writes into the seeded catalog, so draft state
// never bleeds into the system of record.
package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rmedina/stockroom-backend/internal/catalog"
	pkgerrors "github.com/rmedina/stockroom-backend/pkg/errors"
	"github.com/rmedina/stockroom-backend/pkg/logger"
	"github.com/rmedina/stockroom-backend/pkg/models"
	"github.com/shopspring/decimal"
)

// MutationKind distinguishes draft creates from draft updates.
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
)

// Mutation is a validated product draft awaiting commitment.
type Mutation struct {
	Kind    MutationKind
	Product models.Product
}

// Committer receives validated drafts. Swapping the implementation is how a
// real write path gets wired in.
type Committer interface {
	Commit(ctx context.Context, mutation Mutation) error
}

// LogCommitter acknowledges drafts by recording the intent.
type LogCommitter struct {
	logg *logger.Logger
}

func NewLogCommitter(logg *logger.Logger) *LogCommitter {
	return &LogCommitter{logg: logg}
}

func (c *LogCommitter) Commit(ctx context.Context, mutation Mutation) error {
	if c.logg != nil {
		c.logg.Info(c.logg.WithFields(ctx, map[string]any{
			"kind":       string(mutation.Kind),
			"product_id": mutation.Product.ID,
		}), "products.draft_committed")
	}
	return nil
}

// Input carries the editable product fields.
type Input struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
}

// Service validates drafts and hands them to the committer.
type Service struct {
	catalog   *catalog.Store
	committer Committer
	logg      *logger.Logger
	newID     func() string
}

// NewService wires the product mutation service. A nil committer falls back
// to the logging committer.
func NewService(store *catalog.Store, committer Committer, logg *logger.Logger) *Service {
	if committer == nil {
		committer = NewLogCommitter(logg)
	}
	return &Service{
		catalog:   store,
		committer: committer,
		logg:      logg,
		newID:     newProductID,
	}
}

func newProductID() string {
	return "p" + uuid.NewString()[:8]
}

func validateInput(input Input) error {
	problems := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		problems["name"] = "name is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		problems["description"] = "description is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		problems["category"] = "category is required"
	}
	if input.Price.IsNegative() {
		problems["price"] = "price must not be negative"
	}
	if input.Quantity < 0 {
		problems["quantity"] = "quantity must not be negative"
	}
	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product").WithDetails(problems)
	}
	return nil
}

func draftFromInput(id string, input Input) models.Product {
	return models.Product{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		Quantity:    input.Quantity,
		Image:       input.Image,
	}
}

// Create validates a new product draft and commits it under a fresh ID.
func (s *Service) Create(ctx context.Context, input Input) (models.Product, error) {
	if err := validateInput(input); err != nil {
		return models.Product{}, err
	}
	draft := draftFromInput(s.newID(), input)
	if err := s.committer.Commit(ctx, Mutation{Kind: MutationCreate, Product: draft}); err != nil {
		return models.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "committing product draft")
	}
	return draft, nil
}

// Update validates a draft against an existing product and commits it. The
// target must already exist in the catalog.
func (s *Service) Update(ctx context.Context, id string, input Input) (models.Product, error) {
	if _, ok := s.catalog.Get(id); !ok {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err := validateInput(input); err != nil {
		return models.Product{}, err
	}
	draft := draftFromInput(id, input)
	if err := s.committer.Commit(ctx, Mutation{Kind: MutationUpdate, Product: draft}); err != nil {
		return models.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "committing product draft")
	}
	return draft, nil
}
