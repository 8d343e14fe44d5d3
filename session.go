// session.go - the engine/database bootstrap chain (adapted from
// modern_session.go's Dial/DB/C chain; there is no network connection to
// hold open here, so Engine replaces ModernMGO as the top-level handle)

package doclite

import (
	stdlog "log"
	"sync"
)

// Debug mirrors the teacher's DebugConversion flag: when set, creating a
// database or a collection is logged. Nothing else logs. Off by default.
var Debug = false

func logf(format string, args ...interface{}) {
	if Debug {
		stdlog.Printf("doclite: "+format, args...)
	}
}

// Engine is the top-level handle an application opens once and shares;
// it owns every Database it has created.
type Engine struct {
	mu        sync.RWMutex
	databases map[string]*Database
}

// Open returns a ready-to-use Engine. There is no Dial-equivalent
// failure mode - an embedded engine has nothing to connect to - so Open
// cannot fail, unlike the teacher's DialModernMGO.
func Open() *Engine {
	return &Engine{databases: make(map[string]*Database)}
}

// Close is kept for API parity with the teacher's Session.Close; an
// in-process engine has no connection to tear down.
func (e *Engine) Close() {}

// DB returns the named database, creating it on first use.
func (e *Engine) DB(name string) *Database {
	e.mu.Lock()
	defer e.mu.Unlock()
	if db, ok := e.databases[name]; ok {
		return db
	}
	db := newDatabase(name)
	e.databases[name] = db
	logf("created database %q", name)
	return db
}

// Database owns a set of named collections.
type Database struct {
	name string

	mu          sync.RWMutex
	collections map[string]*Collection
}

func newDatabase(name string) *Database {
	return &Database{name: name, collections: make(map[string]*Collection)}
}

func (d *Database) Name() string { return d.name }

// C returns the named collection, creating it empty on first use.
func (d *Database) C(name string) *Collection {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok := d.collections[name]; ok {
		return c
	}
	c := newCollection(name)
	d.collections[name] = c
	logf("created collection %q.%q", d.name, name)
	return c
}

// CollectionNames lists the collections created so far.
func (d *Database) CollectionNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.collections))
	for name := range d.collections {
		names = append(names, name)
	}
	return names
}
