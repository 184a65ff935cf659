package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vendoreval/engine/internal/models"
	"github.com/vendoreval/engine/internal/repository"
	appErr "github.com/vendoreval/engine/pkg/errors"
)

// In-memory repository fakes. They mirror the store's behavior closely
// enough for service-level tests: uniqueness surfaces as Conflict, absence
// as NotFound.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return appErr.New(appErr.CodeConflict, "entity already exists")
		}
	}
	u.ID = uuid.New()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id any, dest *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := id.(uuid.UUID)
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	u, ok := f.users[uid]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	*dest = u
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := id.(uuid.UUID)
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	if _, ok := f.users[uid]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	delete(f.users, uid)
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string, dest *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			*dest = u
			return nil
		}
	}
	return appErr.New(appErr.CodeNotFound, "user not found")
}

func (f *fakeUserRepo) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role models.Role) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[uuid.UUID]models.Company
	requests  *fakeRequestRepo // for the delete guard
}

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[uuid.UUID]models.Company{}}
}

func (f *fakeCompanyRepo) Create(_ context.Context, c *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.companies {
		if existing.Name == c.Name {
			return appErr.New(appErr.CodeConflict, "entity already exists")
		}
	}
	c.ID = uuid.New()
	f.companies[c.ID] = *c
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id any, dest *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cid, ok := id.(uuid.UUID)
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	c, ok := f.companies[cid]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	*dest = c
	return nil
}

func (f *fakeCompanyRepo) Update(_ context.Context, c *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.companies {
		if existing.Name == c.Name && id != c.ID {
			return appErr.New(appErr.CodeConflict, "entity already exists")
		}
	}
	f.companies[c.ID] = *c
	return nil
}

func (f *fakeCompanyRepo) Delete(_ context.Context, id any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cid, ok := id.(uuid.UUID)
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	if _, ok := f.companies[cid]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	delete(f.companies, cid)
	return nil
}

func (f *fakeCompanyRepo) List(_ context.Context, _ repository.CompanyFilters) ([]models.Company, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCompanyRepo) DeleteGuarded(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	if _, ok := f.companies[id]; !ok {
		f.mu.Unlock()
		return appErr.New(appErr.CodeNotFound, "company not found")
	}
	f.mu.Unlock()
	if f.requests != nil {
		for _, r := range f.requests.all() {
			if r.CompanyID == id {
				return appErr.New(appErr.CodeConflict, "cannot delete a company with associated requests")
			}
		}
	}
	f.mu.Lock()
	delete(f.companies, id)
	f.mu.Unlock()
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]models.Request
}

var _ repository.RequestRepository = (*fakeRequestRepo)(nil)

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[uuid.UUID]models.Request{}}
}

func (f *fakeRequestRepo) all() []models.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Request, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, r)
	}
	return out
}

func (f *fakeRequestRepo) Create(_ context.Context, r *models.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uuid.New()
	f.requests[r.ID] = *r
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id any, dest *models.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rid, ok := id.(uuid.UUID)
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	r, ok := f.requests[rid]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	*dest = r
	return nil
}

func (f *fakeRequestRepo) Update(_ context.Context, r *models.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests[r.ID] = *r
	return nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rid, ok := id.(uuid.UUID)
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	if _, ok := f.requests[rid]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	delete(f.requests, rid)
	return nil
}

func (f *fakeRequestRepo) List(_ context.Context, _ repository.RequestFilters) ([]models.Request, int64, error) {
	out := f.all()
	return out, int64(len(out)), nil
}
