package mockapi

import (
	"encoding/json"
	"sort"
	"sync"
)

// Todo is one record in the JSONPlaceholder /todos shape.
type Todo struct {
	ID        int             `json:"id"`
	UserID    json.RawMessage `json:"userId,omitempty"`
	Title     string          `json:"title"`
	Completed bool            `json:"completed"`
}

// memStore holds todos in memory with sequential integer ids.
type memStore struct {
	mu     sync.Mutex
	todos  map[int]Todo
	nextID int
}

func newMemStore(seed []Todo) *memStore {
	s := &memStore{todos: make(map[int]Todo), nextID: 1}
	for _, t := range seed {
		s.todos[t.ID] = t
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

func (s *memStore) list() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Todo, 0, len(s.todos))
	for _, t := range s.todos {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *memStore) get(id int) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	return t, ok
}

func (s *memStore) insert(t Todo) Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.todos[t.ID] = t
	return t
}

// update runs fn on the stored todo and saves the result.
func (s *memStore) update(id int, fn func(*Todo)) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok {
		return Todo{}, false
	}
	fn(&t)
	t.ID = id
	s.todos[id] = t
	return t, true
}

func (s *memStore) remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[id]; !ok {
		return false
	}
	delete(s.todos, id)
	return true
}
