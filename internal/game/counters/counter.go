package counters

// Counter represents a named counter on a permanent or player.
type Counter struct {
	Name  string
	Count int
}

// NewCounter creates a new counter with the given name and count.
func NewCounter(name string, count int) *Counter {
	if count <= 0 {
		count = 1
	}
	return &Counter{
		Name:  name,
		Count: count,
	}
}

// Add adds the specified amount to the counter.
func (c *Counter) Add(amount int) {
	if amount > 0 {
		c.Count += amount
	}
}

// Remove removes the specified amount from the counter.
// Will not allow count to go below 0.
func (c *Counter) Remove(amount int) {
	if amount <= 0 {
		return
	}
	c.Count = max(c.Count-amount, 0)
}

// Counters manages a collection of counters. The zero value is empty and
// ready to use; the map is allocated on the first Add so that objects that
// never receive counters cost nothing.
type Counters struct {
	counters map[string]*Counter
}

// Add adds count counters of the given name, merging with an existing counter.
func (cs *Counters) Add(name string, count int) {
	if count <= 0 {
		return
	}
	if cs.counters == nil {
		cs.counters = make(map[string]*Counter)
	}
	if existing, ok := cs.counters[name]; ok {
		existing.Add(count)
		return
	}
	cs.counters[name] = NewCounter(name, count)
}

// Remove removes up to amount counters of the given name.
// Returns true if any counters were removed.
func (cs *Counters) Remove(name string, amount int) bool {
	if amount <= 0 {
		return false
	}
	counter, ok := cs.counters[name]
	if !ok {
		return false
	}
	counter.Remove(amount)
	if counter.Count == 0 {
		delete(cs.counters, name)
	}
	return true
}

// Count returns the count of counters with the given name.
func (cs *Counters) Count(name string) int {
	if counter, ok := cs.counters[name]; ok {
		return counter.Count
	}
	return 0
}

// Has returns true if there are any counters with the given name.
func (cs *Counters) Has(name string) bool {
	return cs.Count(name) > 0
}

// Copy creates a deep copy of the collection.
func (cs *Counters) Copy() Counters {
	if len(cs.counters) == 0 {
		return Counters{}
	}
	out := Counters{counters: make(map[string]*Counter, len(cs.counters))}
	for name, counter := range cs.counters {
		out.counters[name] = &Counter{Name: counter.Name, Count: counter.Count}
	}
	return out
}
