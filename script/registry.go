// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"fmt"
	"sort"
	"sync"

	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
	"github.com/pkg/errors"
)

// ModuleHandler runs the payload of a script addressed to a module.
type ModuleHandler func(senv *setypes.ScriptEnv, payload []byte, to *meter.Address) (*setypes.ScriptEngineOutput, error)

// Module is a native script module.
type Module struct {
	Name    string
	ID      uint32
	Handler ModuleHandler
}

func (m *Module) String() string {
	return fmt.Sprintf("%v#%v", m.Name, m.ID)
}

// Registry maps module ids to modules.
type Registry struct {
	mu      sync.RWMutex
	modules map[uint32]*Module
}

func (r *Registry) Register(mod *Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.modules == nil {
		r.modules = make(map[uint32]*Module)
	}
	if _, ok := r.modules[mod.ID]; ok {
		return errors.Errorf("module %v already registered", mod.ID)
	}
	r.modules[mod.ID] = mod
	return nil
}

func (r *Registry) Find(id uint32) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mod, ok := r.modules[id]
	return mod, ok
}

// Modules returns the registered modules ordered by id.
func (r *Registry) Modules() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Module, 0, len(r.modules))
	for _, mod := range r.modules {
		all = append(all, mod)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
