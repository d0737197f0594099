// Package mods models the desired mod set for a server run: the mods named
// in the configuration file plus the mods of an optional workshop
// collection, and the launch flags derived from them.
package mods

import (
	"fmt"
	"strings"
)

// DirPrefix marks activation entries in the server install directory.
const DirPrefix = "@"

// Entry identifies a single workshop mod. Name doubles as the activation
// directory suffix under the server install directory.
type Entry struct {
	ID   uint64
	Name string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%d)", e.Name, e.ID)
}

// DirName returns the activation directory name for the mod.
func (e Entry) DirName() string {
	return DirPrefix + e.Name
}

// Set is the resolved mod set for one run. Individual entries come from the
// configuration file, Collection entries from the workshop collection page;
// both keep their source order.
type Set struct {
	Individual []Entry
	Collection []Entry
}

func (s Set) Empty() bool {
	return len(s.Individual) == 0 && len(s.Collection) == 0
}

// All returns the individual entries followed by the collection entries,
// which is also the installation order.
func (s Set) All() []Entry {
	all := make([]Entry, 0, len(s.Individual)+len(s.Collection))
	all = append(all, s.Individual...)
	return append(all, s.Collection...)
}

// Validate rejects sets where two entries map onto the same activation
// directory. Activation directories live in one namespace, so a duplicate
// name is a configuration error rather than something to deduplicate.
func (s Set) Validate() error {
	seen := make(map[string]Entry, len(s.Individual)+len(s.Collection))
	for _, e := range s.All() {
		key := strings.ToLower(e.Name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("mods %s and %s both activate as %s", prev, e, e.DirName())
		}
		seen[key] = e
	}
	return nil
}

// ModArg renders the value of the -mod launch flag from the collection
// entries. The second return is false when the flag should be omitted.
func (s Set) ModArg() (string, bool) {
	return joinDirNames(s.Collection)
}

// ServerModArg renders the value of the -serverMod launch flag from the
// individually configured entries.
func (s Set) ServerModArg() (string, bool) {
	return joinDirNames(s.Individual)
}

func joinDirNames(entries []Entry) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.DirName()
	}
	return strings.Join(names, ";"), true
}
