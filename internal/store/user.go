package store

import "github.com/dukerupert/familyflow/internal/model"

// ListUsers returns every family member in seed order.
func (s *Store) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.users, model.User.Clone)
}

// ListChildren returns users with the child role.
func (s *Store) ListChildren() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterClone(s.users, model.User.IsChild, model.User.Clone)
}

// GetUser returns nil when no user has the id.
func (s *Store) GetUser(id string) *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := s.findUser(id)
	if u == nil {
		return nil
	}
	c := u.Clone()
	return &c
}

func (s *Store) findUser(id string) *model.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) findChild(id string) *model.User {
	u := s.findUser(id)
	if u == nil || !u.IsChild() {
		return nil
	}
	return u
}
