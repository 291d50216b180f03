package fakecontactrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/jrsteele09/staff-directory/contacts"
	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
)

var _ contacts.Repo = (*FakeContactRepo)(nil)

type FakeContactRepo struct {
	contacts map[int64]contacts.Contact
	nextID   int64
	lock     sync.RWMutex

	// Err, when set, is returned by every operation to simulate a failing store
	Err error
}

func NewFakeContactRepo() *FakeContactRepo {
	return &FakeContactRepo{
		contacts: make(map[int64]contacts.Contact),
	}
}

func (cr *FakeContactRepo) List(_ context.Context, filter contacts.Filter) ([]contacts.Contact, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if cr.Err != nil {
		return nil, cr.Err
	}

	list := make([]contacts.Contact, 0, len(cr.contacts))
	for _, c := range cr.contacts {
		if filter.Matches(c) {
			list = append(list, c)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (cr *FakeContactRepo) Get(_ context.Context, id int64) (*contacts.Contact, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if cr.Err != nil {
		return nil, cr.Err
	}

	c, ok := cr.contacts[id]
	if !ok {
		return nil, direrrors.ErrNotFound
	}
	return &c, nil
}

func (cr *FakeContactRepo) Create(_ context.Context, contact *contacts.Contact) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.Err != nil {
		return cr.Err
	}

	cr.nextID++
	contact.ID = cr.nextID
	cr.contacts[contact.ID] = *contact
	return nil
}

func (cr *FakeContactRepo) Update(_ context.Context, contact *contacts.Contact) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.Err != nil {
		return cr.Err
	}

	existing, ok := cr.contacts[contact.ID]
	if !ok {
		return direrrors.ErrNotFound
	}

	updated := *contact
	updated.CreatedAt = existing.CreatedAt
	cr.contacts[contact.ID] = updated
	return nil
}

func (cr *FakeContactRepo) Delete(_ context.Context, id int64) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.Err != nil {
		return cr.Err
	}

	if _, ok := cr.contacts[id]; !ok {
		return direrrors.ErrNotFound
	}
	delete(cr.contacts, id)
	return nil
}

func (cr *FakeContactRepo) Departments(_ context.Context) ([]string, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if cr.Err != nil {
		return nil, cr.Err
	}

	seen := make(map[string]struct{})
	departments := make([]string, 0)
	for _, c := range cr.contacts {
		if _, ok := seen[c.Department]; ok {
			continue
		}
		seen[c.Department] = struct{}{}
		departments = append(departments, c.Department)
	}
	sort.Strings(departments)
	return departments, nil
}

func (cr *FakeContactRepo) Count(_ context.Context) (int64, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if cr.Err != nil {
		return 0, cr.Err
	}
	return int64(len(cr.contacts)), nil
}
