package engine

// Entity is any durable game object tracked by the Context registry.
type Entity interface {
	EntityID() string
}

// Context is the shared mutable execution environment for one logical
// operation: durable registries for entities, items, and spells, plus a
// transient key/value bag used to pass intermediate values from a Command to
// its Rules within one execution.
//
// Every mutation replaces the affected collection wholesale (copy-on-write at
// the collection level), so a previously taken Snapshot never observes a
// partially-updated map. The Context assumes single-threaded, sequential
// command processing; serializing concurrent Process calls is the caller's
// responsibility.
type Context struct {
	entities  map[string]Entity
	items     map[string]any
	spells    map[string]any
	temporary map[string]any
}

// Snapshot is a point-in-time, shallow-copied read view of a Context.
// The collections are copies; entity contents are shared.
type Snapshot struct {
	Entities  map[string]Entity
	Items     map[string]any
	Spells    map[string]any
	Temporary map[string]any
}

// NewContext creates an empty Context with all collections initialized.
func NewContext() *Context {
	return &Context{
		entities:  make(map[string]Entity),
		items:     make(map[string]any),
		spells:    make(map[string]any),
		temporary: make(map[string]any),
	}
}

// GetEntity returns the entity stored under id, or nil.
func (c *Context) GetEntity(id string) Entity {
	return c.entities[id]
}

// HasEntity reports whether an entity is stored under id.
func (c *Context) HasEntity(id string) bool {
	_, ok := c.entities[id]
	return ok
}

// SetEntity replaces or inserts an entity under id.
func (c *Context) SetEntity(id string, entity Entity) {
	next := make(map[string]Entity, len(c.entities)+1)
	for k, v := range c.entities {
		next[k] = v
	}
	next[id] = entity
	c.entities = next
}

// RemoveEntity deletes the entity stored under id, if any.
// Entities are never destroyed implicitly; this is the only removal path.
func (c *Context) RemoveEntity(id string) {
	if _, ok := c.entities[id]; !ok {
		return
	}
	next := make(map[string]Entity, len(c.entities))
	for k, v := range c.entities {
		if k != id {
			next[k] = v
		}
	}
	c.entities = next
}

// EntityIDs returns the ids of all registered entities.
func (c *Context) EntityIDs() []string {
	ids := make([]string, 0, len(c.entities))
	for id := range c.entities {
		ids = append(ids, id)
	}
	return ids
}

// GetItem returns the item stored under id, or nil.
func (c *Context) GetItem(id string) any {
	return c.items[id]
}

// SetItem replaces or inserts an item under id.
func (c *Context) SetItem(id string, item any) {
	next := make(map[string]any, len(c.items)+1)
	for k, v := range c.items {
		next[k] = v
	}
	next[id] = item
	c.items = next
}

// RemoveItem deletes the item stored under id, if any.
func (c *Context) RemoveItem(id string) {
	if _, ok := c.items[id]; !ok {
		return
	}
	next := make(map[string]any, len(c.items))
	for k, v := range c.items {
		if k != id {
			next[k] = v
		}
	}
	c.items = next
}

// GetSpell returns the spell stored under name, or nil.
func (c *Context) GetSpell(name string) any {
	return c.spells[name]
}

// SetSpell replaces or inserts a spell under name.
func (c *Context) SetSpell(name string, spell any) {
	next := make(map[string]any, len(c.spells)+1)
	for k, v := range c.spells {
		next[k] = v
	}
	next[name] = spell
	c.spells = next
}

// GetTemporary returns the transient value stored under key, or nil.
func (c *Context) GetTemporary(key string) any {
	return c.temporary[key]
}

// SetTemporary stores a transient value under key.
func (c *Context) SetTemporary(key string, value any) {
	next := make(map[string]any, len(c.temporary)+1)
	for k, v := range c.temporary {
		next[k] = v
	}
	next[key] = value
	c.temporary = next
}

// ClearTemporaryKey removes a single transient key.
func (c *Context) ClearTemporaryKey(key string) {
	if _, ok := c.temporary[key]; !ok {
		return
	}
	next := make(map[string]any, len(c.temporary))
	for k, v := range c.temporary {
		if k != key {
			next[k] = v
		}
	}
	c.temporary = next
}

// ClearTemporary wipes the entire transient bag. The bag is not cleared
// automatically between commands unless the chain is configured to do so;
// stale keys are a known hazard the callers manage.
func (c *Context) ClearTemporary() {
	c.temporary = make(map[string]any)
}

// CreateSnapshot returns a shallow-copied read view of all four collections.
// The returned maps share no references with the live store.
func (c *Context) CreateSnapshot() Snapshot {
	snap := Snapshot{
		Entities:  make(map[string]Entity, len(c.entities)),
		Items:     make(map[string]any, len(c.items)),
		Spells:    make(map[string]any, len(c.spells)),
		Temporary: make(map[string]any, len(c.temporary)),
	}
	for k, v := range c.entities {
		snap.Entities[k] = v
	}
	for k, v := range c.items {
		snap.Items[k] = v
	}
	for k, v := range c.spells {
		snap.Spells[k] = v
	}
	for k, v := range c.temporary {
		snap.Temporary[k] = v
	}
	return snap
}
