package core

import "sync"

type registryEntry struct {
	username string
	client   *Client
}

// Registry is the live mapping of username to connection. Entries are
// kept in registration order. Duplicate registrations for the same
// username are permitted; Lookup resolves to the first-registered entry
// (see DESIGN.md). All operations serialize on a single mutex; callers
// never send on a handle while holding it.
type Registry struct {
	mu      sync.Mutex
	entries []registryEntry
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an entry for the username. An existing entry for the
// same username is neither rejected nor replaced.
func (r *Registry) Register(username string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, registryEntry{username: username, client: c})
}

// Deregister removes the first entry matching the username. Absent
// usernames are a no-op, not an error.
func (r *Registry) Deregister(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.username == username {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Remove deletes the entry for this exact connection, so releasing a
// duplicate login never evicts the wrong one. Returns true if removed.
func (r *Registry) Remove(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.client == c {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Lookup returns the first-registered connection for the username.
func (r *Registry) Lookup(username string) (*Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.username == username {
			return e.client, true
		}
	}
	return nil, false
}

// Snapshot returns every currently registered username in registration
// order, one element per live entry. The order is not a contract
// clients may rely on.
func (r *Registry) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]string, len(r.entries))
	for i, e := range r.entries {
		users[i] = e.username
	}
	return users
}

// Clients returns a point-in-time list of registered connections for
// fan-out. Sends happen on the copy, outside the registry lock.
func (r *Registry) Clients() []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	clients := make([]*Client, len(r.entries))
	for i, e := range r.entries {
		clients[i] = e.client
	}
	return clients
}

// view returns usernames and connections from the same locked pass, so
// a presence broadcast reports exactly the set it fans out to.
func (r *Registry) view() ([]string, []*Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]string, len(r.entries))
	clients := make([]*Client, len(r.entries))
	for i, e := range r.entries {
		users[i] = e.username
		clients[i] = e.client
	}
	return users, clients
}
