package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"microreg/apierror"
	"microreg/helpers"
	"microreg/registry/domain"
	"microreg/registry/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-playground/validator/v10"
)

// DefaultTTL is the maximum age of a record before a sweep removes it. It tolerates one
// missed heartbeat at the default 10s client interval.
const DefaultTTL = 15 * time.Second

// registration carries the structural rules for register input.
type registration struct {
	Name    string `validate:"required,printascii,max=255,excludesall=/@"`
	Version string `validate:"required,semver"`
	Address string `validate:"required,ip|hostname_rfc1123"`
	Port    int    `validate:"min=1,max=65535"`
}

// Registry implements interfaces.Registry over an in-memory entry store.
//
// A single mutex serializes sweeps, mutations and candidate collection. Logging and
// candidate selection happen after the mutex is released.
type Registry struct {
	ttl          time.Duration
	timeProvider interfaces.TimeProvider
	selector     interfaces.Selector
	validate     *validator.Validate
	logger       log.Logger

	mu     sync.Mutex
	store  *entryStore
	closed bool
}

// NewRegistry creates an empty registry. A non-positive ttl means DefaultTTL.
// Panics on nil timeProvider, selector or logger.
func NewRegistry(ttl time.Duration, timeProvider interfaces.TimeProvider, selector interfaces.Selector, logger log.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		ttl:          ttl,
		timeProvider: helpers.NilPanic(timeProvider, "service.registry.go: time provider is required"),
		selector:     helpers.NilPanic(selector, "service.registry.go: selector is required"),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       log.With(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "registry"),
		store:        newEntryStore(),
	}
}

// TTL returns the configured expiry age.
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

func (r *Registry) Register(name, version, address string, port int) (domain.Key, error) {
	key := domain.Key{Name: name, Version: version, Address: address, Port: port}
	if err := r.validate.Struct(registration(key)); err != nil {
		return key, apierror.NewBadParameterError(validationMessage(err), err)
	}

	now := r.timeProvider.Now()
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return key, errRegistryClosed()
	}
	expired := sweep(r.store, r.ttl, now)
	inserted := r.store.upsert(key, domain.Record{
		Name:     name,
		Version:  version,
		Address:  address,
		Port:     port,
		LastSeen: now,
	})
	r.mu.Unlock()

	r.logExpired(expired)
	if inserted {
		level.Info(r.logger).Log("msg", "added service", "key", key)
	} else {
		level.Debug(r.logger).Log("msg", "updated service", "key", key)
	}
	return key, nil
}

// Unregister does not sweep: it targets a single key directly.
func (r *Registry) Unregister(name, version, address string, port int) domain.Key {
	key := domain.Key{Name: name, Version: version, Address: address, Port: port}

	r.mu.Lock()
	removed := false
	if !r.closed {
		removed = r.store.remove(key)
	}
	r.mu.Unlock()

	level.Info(r.logger).Log("msg", "deleted service", "key", key, "existed", removed)
	return key
}

func (r *Registry) Get(name, constraint string) (domain.Record, error) {
	if name == "" {
		return domain.Record{}, apierror.NewBadParameterError("name is required", nil)
	}
	c, err := parseConstraint(constraint)
	if err != nil {
		return domain.Record{}, apierror.NewBadParameterError(fmt.Sprintf("invalid version constraint %q", constraint), err)
	}

	now := r.timeProvider.Now()
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return domain.Record{}, errRegistryClosed()
	}
	expired := sweep(r.store, r.ttl, now)
	candidates := slices.Collect(match(r.store.all(), name, c))
	r.mu.Unlock()

	r.logExpired(expired)
	record, err := r.selector.Select(candidates)
	if err != nil {
		if apierror.IsEntityNotFoundError(err) {
			return domain.Record{}, apierror.NewMyError(
				apierror.ErrEntityNotFound,
				fmt.Sprintf("no live instance of %s matches %s", name, constraint),
				err,
			)
		}
		return domain.Record{}, fmt.Errorf("select instance of %s: %w", name, err)
	}
	return record, nil
}

func (r *Registry) List() ([]domain.Record, error) {
	now := r.timeProvider.Now()
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, errRegistryClosed()
	}
	expired := sweep(r.store, r.ttl, now)
	records := slices.Collect(r.store.all())
	r.mu.Unlock()

	r.logExpired(expired)
	slices.SortFunc(records, func(a, b domain.Record) int {
		return strings.Compare(a.Key().String(), b.Key().String())
	})
	return records, nil
}

// Len returns the number of stored records without sweeping.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.len()
}

// Close drops every record and rejects further register, get and list calls. Idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.store.reset()
	return nil
}

func (r *Registry) logExpired(expired []domain.Record) {
	for _, record := range expired {
		level.Info(r.logger).Log("msg", "removed expired service", "key", record.Key(), "last_seen", record.LastSeen)
	}
}

func errRegistryClosed() error {
	return apierror.NewInternalServerError("registry is closed", nil)
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return "invalid registration"
	}
	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fmt.Sprintf("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
