// Package catalog runs the CRUD operations for every entity: it loads rows
// through the store, applies the business rules (price rounding, unit price
// snapshots, password hashing), persists, and re-reads the result with its
// relations.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/ashendes/catalog-service/internal/metrics"
	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/store"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Operation names used in metrics and error messages
const (
	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opPatch  = "patch"
	opDelete = "delete"
)

type entity struct {
	key  string // metrics label
	name string // human-readable
}

var (
	brandEntity     = entity{key: "brand", name: "Brand"}
	categoryEntity  = entity{key: "category", name: "Category"}
	userEntity      = entity{key: "user", name: "User"}
	productEntity   = entity{key: "product", name: "Product"}
	orderEntity     = entity{key: "order", name: "Order"}
	orderItemEntity = entity{key: "order_item", name: "Order item"}
)

// Gateway is the part of the store the service needs
type Gateway interface {
	Session(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service implements the catalog operations
type Service struct {
	store      Gateway
	bcryptCost int
	now        func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithBcryptCost sets the cost used to hash user passwords
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithClock replaces the clock used to stamp new orders
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service backed by gw
func NewService(gw Gateway, opts ...Option) *Service {
	s := &Service{
		store:      gw,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// orderDate truncates to microseconds, the precision postgres keeps
func (s *Service) orderDate() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// missing turns store.ErrNotFound into a NotFoundError for e
func missing(e entity, id uint, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: e.name, ID: id}
	}
	return err
}

// finish records the outcome of an operation and maps database rejections
// to WriteError.
func (s *Service) finish(e entity, op string, err error) error {
	var (
		ce   *store.ConstraintError
		nf   *NotFoundError
		verr models.FieldErrors
	)

	switch {
	case err == nil:
		metrics.OperationsTotal.WithLabelValues(e.key, op, "ok").Inc()
		if op == opCreate || op == opDelete {
			log.WithFields(log.Fields{"entity": e.key, "operation": op}).Info("Catalog write committed")
		}
		return nil

	case errors.As(err, &ce):
		metrics.OperationsTotal.WithLabelValues(e.key, op, "rejected").Inc()
		metrics.ConstraintViolations.WithLabelValues(e.key, ce.Kind).Inc()
		log.WithFields(log.Fields{
			"entity":    e.key,
			"operation": op,
			"kind":      ce.Kind,
		}).Warn("Write rejected by database: ", ce.Err)
		return &WriteError{Op: op, Entity: e.name, Err: ce}

	case errors.As(err, &nf):
		metrics.OperationsTotal.WithLabelValues(e.key, op, "not_found").Inc()
		return err

	case errors.As(err, &verr):
		metrics.OperationsTotal.WithLabelValues(e.key, op, "invalid").Inc()
		return err

	default:
		metrics.OperationsTotal.WithLabelValues(e.key, op, "error").Inc()
		log.WithFields(log.Fields{"entity": e.key, "operation": op}).Error("Catalog operation failed: ", err)
		return err
	}
}
